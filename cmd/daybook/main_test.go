package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/daybook/models"
)

type cliEnv struct {
	dir string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	t.Setenv("APP_KDF_ITERATIONS", "1000")
	t.Setenv("ADAPTER_ADDRESS", "")
	return &cliEnv{dir: t.TempDir()}
}

// run executes one daybook invocation against the env's files.
func (e *cliEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd(models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123"))

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{
		"--dsn", filepath.Join(e.dir, "daybook.db"),
		"--queue", filepath.Join(e.dir, "queue.db"),
		"--log-file", filepath.Join(e.dir, "daybook.log"),
		"--log-level", "error",
	}, args...))

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// ── version ─────────────────────────────────────────────────────────────────

func TestCLI_Version(t *testing.T) {
	env := newCLIEnv(t)

	out, _, err := env.run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "Build version: 1.2.3\nBuild date: 2026-10-01\nBuild commit: abc123\n", out)
}

// ── account and journal ─────────────────────────────────────────────────────

func TestCLI_JournalFlow(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "", "journal", "list")
	require.ErrorIs(t, err, errNoAccount)

	out, _, err := env.run(t, "Secur3Pass!\nSecur3Pass!\n", "init", "--birth-date", "1990-05-17")
	require.NoError(t, err)
	assert.Contains(t, out, "Account ")
	assert.Contains(t, out, " created.")

	_, _, err = env.run(t, "Secur3Pass!\nSecur3Pass!\n", "init", "--birth-date", "1990-05-17")
	require.Error(t, err)

	out, _, err = env.run(t, "Secur3Pass!\n", "journal", "add", "--date", "2026-10-01", "--mood", "calm", "Day", "one")
	require.NoError(t, err)
	assert.Contains(t, out, "saved for 2026-10-01")

	out, _, err = env.run(t, "Secur3Pass!\n", "journal", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "2026-10-01")
	assert.Contains(t, out, "Day one")
	assert.Contains(t, out, "calm")

	out, _, err = env.run(t, "Secur3Pass!\n", "journal", "list", "--from", "2026-09-01", "--to", "2026-09-30")
	require.NoError(t, err)
	assert.NotContains(t, out, "Day one")

	_, _, err = env.run(t, "WrongPass!\n", "journal", "list")
	require.Error(t, err)
	assert.Equal(t, "invalid passphrase", err.Error())

	// account, default period and entry are queued for the remote endpoint
	out, _, err = env.run(t, "", "sync", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "pending: 3")
	assert.Contains(t, out, "last sync: never")
}

func TestCLI_InitPassphraseMismatch(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "Secur3Pass!\nOther3Pass!\n", "init", "--birth-date", "1990-05-17")
	require.ErrorIs(t, err, errPassphraseMismatch)

	_, _, err = env.run(t, "\n", "init", "--birth-date", "1990-05-17")
	require.ErrorIs(t, err, errEmptyPassphrase)

	_, _, err = env.run(t, "", "init", "--birth-date", "17.05.1990")
	require.Error(t, err)
}

// ── habits and goals ────────────────────────────────────────────────────────

func TestCLI_HabitsAndGoals(t *testing.T) {
	env := newCLIEnv(t)

	_, _, err := env.run(t, "Secur3Pass!\nSecur3Pass!\n", "init", "--birth-date", "1990-05-17")
	require.NoError(t, err)

	out, _, err := env.run(t, "Secur3Pass!\n", "habit", "add", "Read", "daily")
	require.NoError(t, err)
	habitID := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(out), "Habit "), " added.")
	require.NotEmpty(t, habitID)

	out, _, err = env.run(t, "Secur3Pass!\n", "habit", "done", habitID)
	require.NoError(t, err)
	assert.Contains(t, out, "Read daily: current streak 1, longest 1.")

	out, _, err = env.run(t, "Secur3Pass!\n", "habit", "list")
	require.NoError(t, err)
	assert.Contains(t, out, habitID)
	assert.Contains(t, out, "daily")

	out, _, err = env.run(t, "Secur3Pass!\n", "goal", "add", "--milestone", "Plan", "--milestone", "Run", "Marathon")
	require.NoError(t, err)
	assert.Contains(t, out, "with 2 milestones")
	goalID := strings.Fields(out)[1]

	out, _, err = env.run(t, "Secur3Pass!\n", "goal", "progress", goalID, "40")
	require.NoError(t, err)
	assert.Contains(t, out, "Marathon: 40% (active).")

	_, _, err = env.run(t, "Secur3Pass!\n", "goal", "progress", goalID, "forty")
	require.Error(t, err)

	out, _, err = env.run(t, "Secur3Pass!\n", "goal", "list", "--status", "active")
	require.NoError(t, err)
	assert.Contains(t, out, "Marathon")
	assert.Contains(t, out, "[ ] Plan")

	_, _, err = env.run(t, "Secur3Pass!\n", "habit", "done", "missing-id")
	require.Error(t, err)
}

// ── sync ────────────────────────────────────────────────────────────────────

func TestCLI_SyncWithoutRemote(t *testing.T) {
	env := newCLIEnv(t)

	out, _, err := env.run(t, "", "sync", "status", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "pending: 0")
	assert.Contains(t, out, "failed:  0")
	assert.Contains(t, out, "ENTITY")

	_, _, err = env.run(t, "", "sync", "drain")
	require.ErrorIs(t, err, errNoRemote)

	out, _, err = env.run(t, "", "sync", "retry")
	require.NoError(t, err)
	assert.Equal(t, "0 operations requeued.\n", out)

	out, _, err = env.run(t, "", "sync", "clear-failed")
	require.NoError(t, err)
	assert.Equal(t, "0 failed operations removed.\n", out)
}
