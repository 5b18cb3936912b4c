package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/avikit/internal/config"
	"github.com/joshuapare/avikit/internal/logging"
	"github.com/joshuapare/avikit/internal/testutil"
)

// writeAVI writes b's file into a temp dir and returns its path.
func writeAVI(t *testing.T, b *testutil.AVIBuilder) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.avi")
	require.NoError(t, os.WriteFile(path, b.Bytes(), 0o644))
	return path
}

// resetGlobals restores flag and config state between tests.
func resetGlobals(t *testing.T) {
	t.Helper()
	verbose, quiet, jsonOut, noColor = false, false, false, true
	configPath, logLevel = "", ""
	cfg = config.Default()
	logger = logging.Discard()
	treeDepth = 0
	framesKeyframes = false
	editOutput, editDelete, editDuplicate, editDropKeyframes = "", nil, nil, false
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(r)
		done <- buf.Bytes()
	}()

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout
	return string(<-done), fnErr
}
