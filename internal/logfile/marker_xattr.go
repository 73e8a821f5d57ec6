package logfile

import (
	"errors"

	"github.com/pkg/xattr"
)

// DefaultArchivedAttr is the extended-attribute key carrying the archive
// marker. The user namespace is required on Linux.
const DefaultArchivedAttr = "user.log-roller.archived"

// XattrMarker stores the archived flag in an extended attribute, leaving
// the file name and content untouched.
type XattrMarker struct {
	Attr string
}

// NewXattrMarker creates a marker using DefaultArchivedAttr.
func NewXattrMarker() *XattrMarker {
	return &XattrMarker{Attr: DefaultArchivedAttr}
}

func (m *XattrMarker) IsArchived(info *Info) bool {
	_, err := xattr.Get(info.Path(), m.Attr)
	return err == nil
}

func (m *XattrMarker) SetArchived(info *Info, archived bool) error {
	defer info.InvalidateCache()

	if archived {
		return xattr.Set(info.Path(), m.Attr, []byte("1"))
	}

	err := xattr.Remove(info.Path(), m.Attr)
	if err != nil && !isNoAttr(err) {
		return err
	}
	return nil
}

// Removing an attribute that is not set is a no-op, not an error.
func isNoAttr(err error) bool {
	return errors.Is(err, xattr.ENOATTR)
}
