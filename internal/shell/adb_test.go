package shell_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/qidk-tools/qidkmon/internal/errors"
	"github.com/qidk-tools/qidkmon/internal/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestADBEmptyCommand(t *testing.T) {
	adb := shell.NewADB("adb")

	_, err := adb.Execute(context.Background(), "  ")
	require.Error(t, err)
	assert.Equal(t, shell.ErrEmptyCommand, errors.CodeOf(err))
}

func TestADBMissingBinary(t *testing.T) {
	adb := shell.NewADB("/nonexistent/adb", shell.WithSerial("emulator-5554"))

	_, err := adb.Execute(context.Background(), "cat /proc/stat")
	require.Error(t, err)
	assert.Equal(t, shell.ErrDeviceUnreachable, errors.CodeOf(err))
}

func TestADBTimeout(t *testing.T) {
	// A stub binary that hangs stands in for a wedged adb transport.
	path := filepath.Join(t.TempDir(), "adb")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexec sleep 5\n"), 0o755))

	adb := shell.NewADB(path, shell.WithTimeout(50*time.Millisecond))

	start := time.Now()
	_, err := adb.Execute(context.Background(), "cat /proc/stat")
	require.Error(t, err)
	assert.Equal(t, shell.ErrQueryTimeout, errors.CodeOf(err))
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestScriptReplay(t *testing.T) {
	script := shell.NewScript(map[string]string{
		"cat /proc/stat": "cpu  1 2 3 4 5 6 7",
	})

	out, err := script.Execute(context.Background(), "cat /proc/stat")
	require.NoError(t, err)
	assert.Equal(t, "cpu  1 2 3 4 5 6 7", out)

	_, err = script.Execute(context.Background(), "cat /proc/meminfo")
	require.Error(t, err)
	assert.Equal(t, shell.ErrDeviceUnreachable, errors.CodeOf(err))
	assert.Equal(t, []string{"cat /proc/stat", "cat /proc/meminfo"}, script.Calls)
}
