package xattrprobe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeMissingDirectory(t *testing.T) {
	res := Probe(filepath.Join(t.TempDir(), "nope"))
	assert.False(t, res.Supported)
	assert.NotEmpty(t, res.Reason)
}

func TestProbeFileIsNotADirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	res := Probe(path)
	assert.False(t, res.Supported)
	assert.Equal(t, "not a directory", res.Reason)
}

func TestProbeCleansUp(t *testing.T) {
	dir := t.TempDir()
	res := Probe(dir)
	if !res.Supported {
		t.Logf("xattrs unsupported here: %s", res.Reason)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe must remove its temp file")
}
