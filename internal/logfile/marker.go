package logfile

import (
	"strings"

	"github.com/raoulx24/log-roller/internal/logging"
	"github.com/raoulx24/log-roller/internal/xattrprobe"
)

// ArchiveMarker records the archived flag for a log file without touching
// its content. Implementations must be idempotent: setting the current
// value again succeeds without effect.
type ArchiveMarker interface {
	IsArchived(info *Info) bool
	SetArchived(info *Info, archived bool) error
}

// SelectMarker picks a marker strategy. "xattr" and "filename" force one;
// anything else probes dir and uses extended attributes when they work.
func SelectMarker(mode, dir string, log logging.Logger) ArchiveMarker {
	switch mode {
	case "xattr":
		return NewXattrMarker()
	case "filename":
		return FilenameMarker{}
	default:
		res := xattrprobe.Probe(dir)
		if res.Supported {
			return NewXattrMarker()
		}
		if log != nil {
			log.Warn("extended attributes unavailable, marking archives in file names",
				"dir", dir, "reason", res.Reason)
		}
		return FilenameMarker{}
	}
}

// ArchivedToken is the name component FilenameMarker inserts between the
// base name and the extension: log-AB12CD.txt -> log-AB12CD.archived.txt.
const ArchivedToken = "archived"

// FilenameMarker encodes the archived flag as a token in the file name,
// for filesystems without extended attributes. Marking renames the file.
type FilenameMarker struct{}

func (FilenameMarker) IsArchived(info *Info) bool {
	return hasToken(info.FileName(), ArchivedToken)
}

func (FilenameMarker) SetArchived(info *Info, archived bool) error {
	name := info.FileName()
	newName := removeToken(name, ArchivedToken)
	if archived {
		newName = addToken(newName, ArchivedToken)
	}
	if newName == name {
		return nil
	}
	return info.Rename(newName)
}

// Token helpers operate on dot-separated name components. They tolerate
// names with zero or many dots, never duplicate a token, and removing an
// absent token leaves the name unchanged.

func hasToken(name, token string) bool {
	for _, part := range strings.Split(name, ".") {
		if part == token {
			return true
		}
	}
	return false
}

func addToken(name, token string) string {
	if hasToken(name, token) {
		return name
	}
	parts := strings.Split(name, ".")
	if len(parts) == 1 {
		return name + "." + token
	}
	ext := parts[len(parts)-1]
	parts = append(parts[:len(parts)-1], token, ext)
	return strings.Join(parts, ".")
}

func removeToken(name, token string) string {
	parts := strings.Split(name, ".")
	kept := parts[:0]
	for _, part := range parts {
		if part != token {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, ".")
}
