package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_WritesLeveledLines(t *testing.T) {
	prev := logFileName
	logFileName = filepath.Join(t.TempDir(), "codex.log")
	t.Cleanup(func() { logFileName = prev })

	Initialize(false)
	InfoLog.Printf("session %s", "INITIAL_SESSION")
	WarningLog.Printf("refresh retry")
	ErrorLog.Printf("open failed")
	Close()

	data, err := os.ReadFile(Path())
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "INFO: ")
	assert.Contains(t, out, "session INITIAL_SESSION")
	assert.Contains(t, out, "WARNING: ")
	assert.Contains(t, out, "ERROR: ")
}

func TestClose_WithoutInitialize(t *testing.T) {
	assert.NotPanics(t, Close)
}
