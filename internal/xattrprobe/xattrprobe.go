// Package xattrprobe checks whether extended attributes work for a
// directory. It performs a real set+get+remove round trip on a temp file,
// since support depends on the mounted filesystem, not just the platform.
package xattrprobe

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/xattr"
)

// Result reports whether xattrs are usable and why.
type Result struct {
	Supported bool   // true if attributes round-trip
	Reason    string // explanation when unsupported
}

const probeAttr = "user.log-roller.probe"

// Probe tests whether extended attributes round-trip on files in dir.
func Probe(dir string) Result {
	st, err := os.Stat(dir)
	if err != nil {
		return Result{false, fmt.Sprintf("stat failed: %v", err)}
	}
	if !st.IsDir() {
		return Result{false, "not a directory"}
	}

	if !xattr.XATTR_SUPPORTED {
		return Result{false, "extended attributes not supported on this platform"}
	}

	tmp := filepath.Join(dir, ".xattrprobe_tmp")
	f, err := os.Create(tmp)
	if err != nil {
		return Result{false, fmt.Sprintf("cannot create temp file: %v", err)}
	}
	f.Close()
	defer os.Remove(tmp)

	want := []byte("1")
	if err := xattr.Set(tmp, probeAttr, want); err != nil {
		return Result{false, fmt.Sprintf("set failed: %v", err)}
	}

	got, err := xattr.Get(tmp, probeAttr)
	if err != nil {
		return Result{false, fmt.Sprintf("get failed: %v", err)}
	}
	if !bytes.Equal(got, want) {
		return Result{false, "attribute value did not round-trip"}
	}

	if err := xattr.Remove(tmp, probeAttr); err != nil {
		return Result{false, fmt.Sprintf("remove failed: %v", err)}
	}

	return Result{true, ""}
}
