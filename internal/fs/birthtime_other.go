//go:build !linux && !darwin && !windows

package fs

import (
	"os"
	"time"
)

// Platforms without a known creation-time source use the modification time.

func birthtimeOf(path string, info os.FileInfo) time.Time {
	_ = path
	return info.ModTime()
}
