package retention

import (
	"github.com/raoulx24/log-roller/internal/fs"
)

// the deletion pass enforcing the archived-file limit, plus the coalescing
// of sweep requests through the mailbox.

// RequestSweep schedules an asynchronous sweep on the processing queue.
// Requests arriving while one is pending coalesce into a single sweep.
func (m *Manager) RequestSweep() {
	if m.sweeps.Put(struct{}{}) {
		m.q.Async(m.drainSweep)
	}
}

func (m *Manager) drainSweep() {
	if m.sweeps.TryTake() != nil {
		m.deleteOldLogFiles()
	}
}

// DeleteOldLogFiles runs a sweep and blocks until it completes.
func (m *Manager) DeleteOldLogFiles() {
	m.q.Sync(m.deleteOldLogFiles)
}

// deleteOldLogFiles sorts log files newest first, presumes a non-archived
// newest file to be the active one and exempts it, then deletes every
// remaining file past the limit. Per-file failures do not stop the sweep.
func (m *Manager) deleteOldLogFiles() {
	infos := m.SortedLogFileInfos()

	if len(infos) > 0 && !infos[0].IsArchived() {
		infos = infos[1:]
	}

	for idx, fi := range infos {
		if idx < m.maxLogFiles {
			continue
		}
		if err := fs.Remove(fi.Path()); err != nil {
			m.log.Error("deleting old log file failed", "file", fi.Path(), "error", err)
			continue
		}
		m.log.Info("deleted old log file", "file", fi.Path())
	}
}
