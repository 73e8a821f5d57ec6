// Package logfile models a single on-disk log file: lazily cached
// filesystem metadata, an age derived from creation time, and an archived
// flag stored out of band through an ArchiveMarker strategy.
//
// Info is not safe for concurrent use. All mutation happens on the
// serialized processing queue that owns the logger state.
package logfile

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/raoulx24/log-roller/internal/fs"
	"github.com/raoulx24/log-roller/internal/logging"
)

// Info wraps a log file path and caches metadata resolved from disk.
// Identity is the path; two Infos for the same path are equal.
type Info struct {
	path   string
	marker ArchiveMarker
	log    logging.Logger

	cached    bool
	size      int64
	birthtime time.Time
	mtime     time.Time
}

// New creates an Info for path. The file does not have to exist yet;
// metadata reads against a missing file return zero values.
func New(path string, marker ArchiveMarker, log logging.Logger) *Info {
	if log == nil {
		log = logging.Nop()
	}
	return &Info{path: path, marker: marker, log: log}
}

// Path returns the file's full path.
func (i *Info) Path() string { return i.path }

// FileName returns the file's base name.
func (i *Info) FileName() string { return filepath.Base(i.path) }

// Size returns the file size in bytes, or zero if the file vanished.
func (i *Info) Size() int64 {
	i.refresh()
	return i.size
}

// CreationTime returns when the file was created, or the zero time if the
// file vanished. See internal/fs for the per-platform source.
func (i *Info) CreationTime() time.Time {
	i.refresh()
	return i.birthtime
}

// ModificationTime returns the file's mtime, or the zero time if the file
// vanished.
func (i *Info) ModificationTime() time.Time {
	i.refresh()
	return i.mtime
}

// Age returns the time elapsed since creation, recomputed on every call.
func (i *Info) Age() time.Duration {
	return time.Since(i.CreationTime())
}

// InvalidateCache drops all cached metadata so the next read re-queries the
// filesystem. Every mutator calls this.
func (i *Info) InvalidateCache() {
	i.cached = false
	i.size = 0
	i.birthtime = time.Time{}
	i.mtime = time.Time{}
}

// refresh populates the metadata cache on first use. A failed stat leaves
// the cache unset so a later call re-queries; callers just see zero values.
func (i *Info) refresh() {
	if i.cached {
		return
	}
	fi, err := fs.Stat(i.path)
	if err != nil {
		return
	}
	i.size = fi.Size
	i.birthtime = fi.Birthtime
	i.mtime = fi.MTime
	i.cached = true
}

// IsArchived reports whether the file carries the archive marker.
func (i *Info) IsArchived() bool {
	return i.marker.IsArchived(i)
}

// SetArchived records or clears the archive marker. Setting the current
// value again is a no-op. Failures are logged and the file is left
// unmarked; rolling continues regardless.
func (i *Info) SetArchived(archived bool) {
	if err := i.marker.SetArchived(i, archived); err != nil {
		i.log.Error("setting archive marker failed",
			"file", i.path, "archived", archived, "error", err)
	}
}

// Rename moves the file to newName within its directory. Renaming to the
// current name is a no-op. On failure the path is left unchanged and the
// error returned for the caller to log.
func (i *Info) Rename(newName string) error {
	if newName == i.FileName() {
		return nil
	}
	newPath := filepath.Join(filepath.Dir(i.path), newName)
	if err := fs.Rename(i.path, newPath); err != nil {
		return fmt.Errorf("renaming %s: %w", i.path, err)
	}
	i.path = newPath
	i.InvalidateCache()
	return nil
}

// Equal reports whether other refers to the same path.
func (i *Info) Equal(other *Info) bool {
	return other != nil && i.path == other.path
}
