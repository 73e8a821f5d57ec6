package retention

// Hooks are optional callbacks an external collaborator (an uploader, say)
// may register to react to archiving. A nil field is simply skipped; a
// registered handler is the capability check.
type Hooks struct {
	// DidArchiveLogFile fires when a file is marked archived outside a roll.
	DidArchiveLogFile func(path string)

	// DidRollAndArchiveLogFile fires when the logger rolls and archives its
	// active file.
	DidRollAndArchiveLogFile func(path string)
}

// SetHooks registers the callbacks. Safe to call from any goroutine.
func (m *Manager) SetHooks(h Hooks) {
	m.q.Sync(func() { m.hooks = h })
}

// NotifyDidArchive reports an archived file and requests a sweep. Must run
// on the processing queue.
func (m *Manager) NotifyDidArchive(path string) {
	if m.hooks.DidArchiveLogFile != nil {
		m.hooks.DidArchiveLogFile(path)
	}
	m.RequestSweep()
}

// NotifyDidRollAndArchive reports a file archived during a roll and
// requests a sweep. Must run on the processing queue.
func (m *Manager) NotifyDidRollAndArchive(path string) {
	if m.hooks.DidRollAndArchiveLogFile != nil {
		m.hooks.DidRollAndArchiveLogFile(path)
	}
	m.RequestSweep()
}
