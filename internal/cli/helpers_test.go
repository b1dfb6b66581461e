package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// testEnv is a temp-dir config and database for driving the root command.
type testEnv struct {
	configPath string
	dbPath     string
}

// newTestEnv writes a config pinned to UTC so decoded offsets do not depend
// on the machine's TZ.
func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	return newTestEnvWith(t, "UTC", "local")
}

func newTestEnvWith(t *testing.T, location, policy string) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		configPath: filepath.Join(dir, "dsmap.yaml"),
		dbPath:     filepath.Join(dir, "test.db"),
	}

	content := fmt.Sprintf("offset_policy: %s\nlocation: %s\ndatabase: %q\nlog_level: error\n",
		policy, location, env.dbPath)
	require.NoError(t, os.WriteFile(env.configPath, []byte(content), 0o644))
	return env
}

// run executes the root command and returns stdout and stderr.
func (e testEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return e.runContext(t, context.Background(), args...)
}

// runContext is run with a caller-supplied context.
func (e testEnv) runContext(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))

	err := cmd.ExecuteContext(ctx)
	return out.String(), errOut.String(), err
}

// mustRun is run for commands expected to succeed.
func (e testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, errOut, err := e.run(t, args...)
	require.NoError(t, err, "stdout: %s\nstderr: %s", out, errOut)
	return out
}

func assertGolden(t *testing.T, name, actual string) {
	t.Helper()
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, []byte(actual))
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339Nano, s)
	require.NoError(t, err)
	return ts
}
