//go:build darwin

package fs

import (
	"os"
	"syscall"
	"time"
)

// birthtime_darwin.go resolves creation time from the stat birth time,
// which APFS and HFS+ both record at nanosecond resolution.

func birthtimeOf(path string, info os.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Birthtimespec.Unix())
	}
	return info.ModTime()
}
