//go:build linux

package fs

import (
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// birthtime_linux.go resolves creation time via statx(STATX_BTIME) where the
// filesystem records a birth time (ext4, xfs, btrfs). Filesystems without
// one fall back to the inode change time. Resolution is whatever the
// filesystem stores; nanoseconds on ext4.

func birthtimeOf(path string, info os.FileInfo) time.Time {
	var stx unix.Statx_t
	err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME, &stx)
	if err == nil && stx.Mask&unix.STATX_BTIME != 0 && stx.Btime.Sec != 0 {
		return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	}

	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
	}
	return info.ModTime()
}
