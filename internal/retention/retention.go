// Package retention owns the logs directory: it enumerates and classifies
// log files, creates new uniquely-named ones, and deletes archived files
// beyond the configured limit. The active (newest, non-archived) file is
// never a deletion candidate.
package retention

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/robfig/cron/v3"

	"github.com/raoulx24/log-roller/internal/fs"
	"github.com/raoulx24/log-roller/internal/logfile"
	"github.com/raoulx24/log-roller/internal/logging"
	"github.com/raoulx24/log-roller/internal/mailbox"
	"github.com/raoulx24/log-roller/internal/serial"
)

// Log file names: log- prefix, six hex characters, optional archived token,
// .txt suffix. Anything else in the directory is ignored.
var logFileName = regexp.MustCompile(`^log-[0-9A-Fa-f]{6}(\.` + logfile.ArchivedToken + `)?\.txt$`)

// Manager enforces the retention policy for one logs directory.
// Mutation of its state runs on the serialized queue shared with the
// rolling logger.
type Manager struct {
	dir    string
	marker logfile.ArchiveMarker
	q      *serial.Queue
	log    logging.Logger

	maxLogFiles int // archived files to keep; guarded by the queue

	sweeps *mailbox.Mailbox[struct{}]
	hooks  Hooks
	cron   *cron.Cron
}

// New creates a manager for dir keeping at most maxLogFiles archived files.
// An empty dir defaults to ./logs.
func New(dir string, maxLogFiles int, marker logfile.ArchiveMarker, q *serial.Queue, log logging.Logger) *Manager {
	if dir == "" {
		dir = "logs"
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Manager{
		dir:         dir,
		marker:      marker,
		q:           q,
		log:         log,
		maxLogFiles: maxLogFiles,
		sweeps:      mailbox.New[struct{}](),
	}
}

// LogsDirectory returns the logs directory, creating it if necessary.
// Creation failures are logged; subsequent operations against the
// directory keep failing until the underlying condition is fixed.
func (m *Manager) LogsDirectory() string {
	if err := fs.MkdirAll(m.dir); err != nil {
		m.log.Error("creating logs directory failed", "dir", m.dir, "error", err)
	}
	return m.dir
}

// IsLogFile reports whether name follows the log file naming convention.
func (m *Manager) IsLogFile(name string) bool {
	return logFileName.MatchString(name)
}

// UnsortedLogFileNames returns the names of all log files in the directory.
func (m *Manager) UnsortedLogFileNames() []string {
	entries, err := os.ReadDir(m.LogsDirectory())
	if err != nil {
		m.log.Error("reading logs directory failed", "dir", m.dir, "error", err)
		return nil
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !m.IsLogFile(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	return names
}

// UnsortedLogFilePaths returns the full paths of all log files.
func (m *Manager) UnsortedLogFilePaths() []string {
	names := m.UnsortedLogFileNames()
	paths := make([]string, 0, len(names))
	for _, n := range names {
		paths = append(paths, filepath.Join(m.dir, n))
	}
	return paths
}

// UnsortedLogFileInfos returns an Info per log file, in directory order.
func (m *Manager) UnsortedLogFileInfos() []*logfile.Info {
	paths := m.UnsortedLogFilePaths()
	infos := make([]*logfile.Info, 0, len(paths))
	for _, p := range paths {
		infos = append(infos, logfile.New(p, m.marker, m.log))
	}
	return infos
}

// SortedLogFileInfos returns all log files ordered newest-creation-first.
func (m *Manager) SortedLogFileInfos() []*logfile.Info {
	infos := m.UnsortedLogFileInfos()
	logfile.SortByCreationTimeDescending(infos)
	return infos
}

// MaximumNumberOfLogFiles returns the archived-file limit. Safe to call
// from any goroutine.
func (m *Manager) MaximumNumberOfLogFiles() int {
	var n int
	m.q.Sync(func() { n = m.maxLogFiles })
	return n
}

// SetMaximumNumberOfLogFiles updates the limit and triggers an
// asynchronous sweep. The update itself is synchronous, so a following
// read observes the new value.
func (m *Manager) SetMaximumNumberOfLogFiles(n int) {
	m.q.Sync(func() { m.maxLogFiles = n })
	m.RequestSweep()
}

// StartSchedule arranges periodic sweeps per the cron spec, for
// deployments where files get archived outside the roll path. An empty
// spec disables scheduling.
func (m *Manager) StartSchedule(spec string) error {
	if spec == "" {
		return nil
	}
	c := cron.New()
	if _, err := c.AddFunc(spec, m.RequestSweep); err != nil {
		return err
	}
	c.Start()
	m.cron = c
	return nil
}

// StopSchedule stops the periodic sweeps, if any were scheduled.
func (m *Manager) StopSchedule() {
	if m.cron != nil {
		m.cron.Stop()
		m.cron = nil
	}
}
