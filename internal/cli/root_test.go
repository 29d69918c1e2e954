package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opsdash/deployctl/internal/logging"
)

// writeTool creates an executable fake tool script and returns its path.
func writeTool(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("POSIX shell assumptions do not hold on Windows")
	}
	path := filepath.Join(t.TempDir(), "faketool")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	return path
}

// runCLI executes the root command with captured output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	logger := logging.NewLogger(io.Discard, logging.LevelError)
	opts := &Options{LogLevel: logging.LevelError}

	cmd := newRootCommand(opts, logger, baseEnv{LogLevel: "error"})
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestDestroyRequiresConfirmation(t *testing.T) {
	_, err := runCLI(t, "destroy", "--workdir", t.TempDir())
	require.Error(t, err)
	require.Contains(t, err.Error(), "--yes")
}

func TestRunRejectsUnknownOperation(t *testing.T) {
	workDir := t.TempDir()
	bin := writeTool(t, `echo "$1" >> ops.log
`)

	_, err := runCLI(t, "run", "teapot", "--workdir", workDir, "--binary", bin)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown operation")

	_, statErr := os.Stat(filepath.Join(workDir, "ops.log"))
	require.True(t, os.IsNotExist(statErr))
}

func TestRunDispatchesPlan(t *testing.T) {
	workDir := t.TempDir()
	bin := writeTool(t, `echo "ran $1"
`)

	out, err := runCLI(t, "run", "plan", "--workdir", workDir, "--binary", bin)
	require.NoError(t, err)
	require.Contains(t, out, "ran plan")
}

func TestStatusReportsAvailability(t *testing.T) {
	bin := writeTool(t, `echo "FakeTool v1.2.3"
`)

	out, err := runCLI(t, "status", "--workdir", t.TempDir(), "--binary", bin, "-o", "json")
	require.NoError(t, err)
	require.Contains(t, out, `"available": true`)
	require.Contains(t, out, "FakeTool v1.2.3")
}

func TestStatusFailsWhenToolMissing(t *testing.T) {
	dir := t.TempDir()
	_, err := runCLI(t, "status", "--workdir", dir, "--binary", filepath.Join(dir, "missing"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "not available")
}

func TestStateShowsResourceCount(t *testing.T) {
	bin := writeTool(t, `echo '{"values":{"root_module":{}}}'
`)

	out, err := runCLI(t, "state", "--workdir", t.TempDir(), "--binary", bin)
	require.NoError(t, err)
	require.Contains(t, out, "0 resources")
}

func TestOutputsMasksSensitiveValues(t *testing.T) {
	script := `echo '{"api_key":{"value":"s3cr3t","type":"string","sensitive":true}}'
`

	out, err := runCLI(t, "outputs", "--workdir", t.TempDir(), "--binary", writeTool(t, script))
	require.NoError(t, err)
	require.Contains(t, out, "(sensitive)")
	require.NotContains(t, out, "s3cr3t")

	out, err = runCLI(t, "outputs", "--workdir", t.TempDir(), "--binary", writeTool(t, script), "--show-sensitive")
	require.NoError(t, err)
	require.Contains(t, out, "s3cr3t")
}

func TestPlanPassesInlineVars(t *testing.T) {
	bin := writeTool(t, `echo "region=$TF_VAR_region"
`)

	out, err := runCLI(t, "plan", "--workdir", t.TempDir(), "--binary", bin, "--vars", "region=eu-west-1")
	require.NoError(t, err)
	require.Contains(t, out, "region=eu-west-1")
}
