// Package fs provides the filesystem helpers used by the rolling logger.
// It extends os.Stat with a per-platform creation time and wraps mutating
// operations with retry on transient errors. Platform-specific details
// (creation-time retrieval) are handled in build-tagged files.
package fs

import (
	"os"
	"time"
)

// FileInfo carries the subset of file metadata the subsystem cares about.
type FileInfo struct {
	Path      string
	Size      int64
	MTime     time.Time
	Birthtime time.Time // creation time; see birthtime_*.go for the source
}

// Stat returns extended metadata for path.
func Stat(path string) (FileInfo, error) {
	st, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}

	return FileInfo{
		Path:      path,
		Size:      st.Size(),
		MTime:     st.ModTime(),
		Birthtime: birthtimeOf(path, st),
	}, nil
}

// MkdirAll creates the directory and any missing parents.
func MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}
