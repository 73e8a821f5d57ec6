package retention

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/log-roller/internal/logfile"
	"github.com/raoulx24/log-roller/internal/logging"
	"github.com/raoulx24/log-roller/internal/serial"
)

func newManager(t *testing.T, maxLogFiles int) *Manager {
	t.Helper()
	q := serial.New(logging.Nop())
	t.Cleanup(q.Close)
	return New(t.TempDir(), maxLogFiles, logfile.FilenameMarker{}, q, logging.Nop())
}

func TestIsLogFile(t *testing.T) {
	m := newManager(t, 5)

	tests := []struct {
		name string
		want bool
	}{
		{"log-DFFE99.txt", true},
		{"log-abc123.txt", true},
		{"log-AB12CD.archived.txt", true},
		{"notes.txt", false},
		{"log-ZZZZZZ.txt", false},
		{"log-AB12C.txt", false},
		{"log-AB12CD7.txt", false},
		{"log-AB12CD.log", false},
		{"xlog-AB12CD.txt", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, m.IsLogFile(tt.name), tt.name)
	}
}

func TestLogsDirectoryCreatedOnDemand(t *testing.T) {
	q := serial.New(logging.Nop())
	t.Cleanup(q.Close)

	dir := t.TempDir() + "/nested/logs"
	m := New(dir, 5, logfile.FilenameMarker{}, q, logging.Nop())

	got := m.LogsDirectory()
	require.Equal(t, dir, got)

	st, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, st.IsDir())
}

func TestCreateNewLogFile(t *testing.T) {
	m := newManager(t, 5)

	a, err := m.CreateNewLogFile()
	require.NoError(t, err)
	assert.True(t, m.IsLogFile(a.FileName()))

	st, err := os.Stat(a.Path())
	require.NoError(t, err)
	assert.Equal(t, int64(0), st.Size())

	b, err := m.CreateNewLogFile()
	require.NoError(t, err)
	assert.NotEqual(t, a.FileName(), b.FileName())

	assert.Len(t, m.UnsortedLogFileNames(), 2)
}

func TestEnumerationIgnoresForeignFiles(t *testing.T) {
	m := newManager(t, 5)

	_, err := m.CreateNewLogFile()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(m.LogsDirectory()+"/notes.txt", []byte("x"), 0o644))

	assert.Len(t, m.UnsortedLogFileNames(), 1)
	assert.Len(t, m.UnsortedLogFilePaths(), 1)
	assert.Len(t, m.UnsortedLogFileInfos(), 1)
}

// createFiles makes n log files with distinct creation times, oldest first.
func createFiles(t *testing.T, m *Manager, n int) []*logfile.Info {
	t.Helper()
	var infos []*logfile.Info
	for i := 0; i < n; i++ {
		info, err := m.CreateNewLogFile()
		require.NoError(t, err)
		infos = append(infos, info)
		time.Sleep(20 * time.Millisecond)
	}
	return infos
}

func TestSortedLogFileInfosNewestFirst(t *testing.T) {
	m := newManager(t, 10)
	created := createFiles(t, m, 3)

	sorted := m.SortedLogFileInfos()
	require.Len(t, sorted, 3)
	assert.Equal(t, created[2].FileName(), sorted[0].FileName())
	assert.Equal(t, created[0].FileName(), sorted[2].FileName())
}

func TestDeleteOldLogFilesSparesActiveNewest(t *testing.T) {
	m := newManager(t, 10)
	createFiles(t, m, 3)

	sorted := m.SortedLogFileInfos()
	// archive everything but the newest
	for _, info := range sorted[1:] {
		info.SetArchived(true)
	}

	m.SetMaximumNumberOfLogFiles(0)
	m.DeleteOldLogFiles()

	names := m.UnsortedLogFileNames()
	require.Len(t, names, 1, "limit 0 still spares the active file")
	assert.Equal(t, sorted[0].FileName(), names[0])
}

func TestDeleteOldLogFilesCountsArchivedNewestAsCandidate(t *testing.T) {
	m := newManager(t, 10)
	createFiles(t, m, 2)

	for _, info := range m.SortedLogFileInfos() {
		info.SetArchived(true)
	}

	m.SetMaximumNumberOfLogFiles(0)
	m.DeleteOldLogFiles()
	assert.Empty(t, m.UnsortedLogFileNames(), "an archived newest file is not active")
}

func TestSweepKeepsLimitPlusActive(t *testing.T) {
	m := newManager(t, 10)
	createFiles(t, m, 5)

	sorted := m.SortedLogFileInfos()
	for _, info := range sorted[1:] {
		info.SetArchived(true)
	}

	m.SetMaximumNumberOfLogFiles(2)
	require.Equal(t, 2, m.MaximumNumberOfLogFiles())

	m.DeleteOldLogFiles()

	survivors := m.SortedLogFileInfos()
	require.Len(t, survivors, 3, "active file plus two archived")
	assert.False(t, survivors[0].IsArchived())
	assert.True(t, survivors[1].IsArchived())
	assert.True(t, survivors[2].IsArchived())
}

func TestRequestSweepCoalescesAndRuns(t *testing.T) {
	m := newManager(t, 10)
	createFiles(t, m, 2)

	for _, info := range m.SortedLogFileInfos() {
		info.SetArchived(true)
	}

	m.SetMaximumNumberOfLogFiles(0)
	for i := 0; i < 10; i++ {
		m.RequestSweep()
	}
	m.q.Sync(func() {}) // barrier: let queued sweeps finish

	assert.Empty(t, m.UnsortedLogFileNames())
}

func TestHooksFireWhenRegistered(t *testing.T) {
	m := newManager(t, 5)

	var archived, rolled []string
	m.SetHooks(Hooks{
		DidArchiveLogFile:        func(p string) { archived = append(archived, p) },
		DidRollAndArchiveLogFile: func(p string) { rolled = append(rolled, p) },
	})

	m.q.Sync(func() {
		m.NotifyDidArchive("a")
		m.NotifyDidRollAndArchive("b")
	})

	assert.Equal(t, []string{"a"}, archived)
	assert.Equal(t, []string{"b"}, rolled)
}

func TestNotifyWithoutHooksIsSafe(t *testing.T) {
	m := newManager(t, 5)
	m.q.Sync(func() {
		m.NotifyDidArchive("a")
		m.NotifyDidRollAndArchive("b")
	})
}

func TestStartScheduleRejectsBadSpec(t *testing.T) {
	m := newManager(t, 5)
	assert.Error(t, m.StartSchedule("not a cron spec"))
	assert.NoError(t, m.StartSchedule(""))

	require.NoError(t, m.StartSchedule("@hourly"))
	m.StopSchedule()
}
