package retention

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raoulx24/log-roller/internal/logfile"
)

// creates new log files with random hex identifiers, retrying identifier
// generation until no on-disk collision exists.

const createAttempts = 64

// CreateNewLogFile creates an empty, uniquely named log file and returns
// its Info. Adding a file may push the archived count over the limit, so a
// sweep is requested before returning.
func (m *Manager) CreateNewLogFile() (*logfile.Info, error) {
	dir := m.LogsDirectory()

	for attempt := 0; attempt < createAttempts; attempt++ {
		id, err := randomHexID()
		if err != nil {
			return nil, fmt.Errorf("generating log file id: %w", err)
		}

		name := fmt.Sprintf("log-%s.txt", id)
		path := filepath.Join(dir, name)
		if m.idInUse(id) {
			continue
		}

		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err != nil {
			if os.IsExist(err) {
				continue
			}
			return nil, fmt.Errorf("creating log file %s: %w", path, err)
		}
		f.Close()

		m.log.Info("created log file", "file", path)
		m.RequestSweep()
		return logfile.New(path, m.marker, m.log), nil
	}

	return nil, fmt.Errorf("no unused log file name after %d attempts", createAttempts)
}

// idInUse checks the identifier against every existing log file, including
// archived ones carrying the filename token.
func (m *Manager) idInUse(id string) bool {
	prefix := "log-" + id + "."
	for _, name := range m.UnsortedLogFileNames() {
		if len(name) >= len(prefix) && name[:len(prefix)] == prefix {
			return true
		}
	}
	return false
}

// randomHexID returns six uppercase hex characters.
func randomHexID() (string, error) {
	var b [3]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return fmt.Sprintf("%02X%02X%02X", b[0], b[1], b[2]), nil
}
