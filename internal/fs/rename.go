package fs

import (
	"os"
)

// wraps os.Rename and os.Remove with retry logic, so archive marking and
// retention sweeps survive transient filesystem errors.

func Rename(oldPath, newPath string) error {
	return retry("rename", func() error {
		return os.Rename(oldPath, newPath)
	})
}

func Remove(path string) error {
	return retry("remove", func() error {
		return os.Remove(path)
	})
}
