package shell

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minish-sh/minish/core/config"
	"github.com/minish-sh/minish/core/logger"
)

func newTestShell(t *testing.T, stdin string, audit *logger.Audit) (*Shell, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	cfg, err := config.Default()
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	s := New(cfg, Options{
		Stdin:  io.NopCloser(strings.NewReader(stdin)),
		Stdout: &stdout,
		Stderr: &stderr,
		Audit:  audit,
	})
	return s, &stdout, &stderr
}

func TestDispatchEmpty(t *testing.T) {
	s, stdout, stderr := newTestShell(t, "", nil)

	assert.Equal(t, Continue, s.dispatch(nil))
	assert.Equal(t, Continue, s.dispatch([]string{}))
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestDispatchUnknownCommand(t *testing.T) {
	s, _, stderr := newTestShell(t, "", nil)

	got := s.dispatch([]string{"definitely-not-a-real-binary-xyz"})

	assert.Equal(t, Continue, got)
	assert.Contains(t, stderr.String(), "definitely-not-a-real-binary-xyz")
	assert.Contains(t, stderr.String(), "not found")
}

func TestBuiltinExit(t *testing.T) {
	s, stdout, stderr := newTestShell(t, "", nil)

	assert.Equal(t, Terminate, s.dispatch([]string{"exit"}))
	assert.Equal(t, Terminate, s.dispatch([]string{"exit", "now"}))
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestBuiltinCd(t *testing.T) {
	origWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(origWd))
	})

	t.Run("no argument", func(t *testing.T) {
		s, _, stderr := newTestShell(t, "", nil)

		assert.Equal(t, Continue, s.dispatch([]string{"cd"}))
		assert.Contains(t, stderr.String(), `expected argument to "cd"`)

		wd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, origWd, wd)
	})

	t.Run("missing path", func(t *testing.T) {
		s, _, stderr := newTestShell(t, "", nil)

		assert.Equal(t, Continue, s.dispatch([]string{"cd", "/definitely/not/a/real/path"}))
		assert.NotEmpty(t, stderr.String())

		wd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, origWd, wd)
	})

	t.Run("valid path", func(t *testing.T) {
		tempDir := t.TempDir()
		want, err := filepath.EvalSymlinks(tempDir)
		require.NoError(t, err)

		s, _, stderr := newTestShell(t, "", nil)

		assert.Equal(t, Continue, s.dispatch([]string{"cd", tempDir}))
		assert.Empty(t, stderr.String())

		wd, err := os.Getwd()
		require.NoError(t, err)
		got, err := filepath.EvalSymlinks(wd)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}

func TestLaunchRecordsExitStatus(t *testing.T) {
	var auditBuf bytes.Buffer
	s, _, _ := newTestShell(t, "", logger.NewAudit(&auditBuf))

	assert.Equal(t, Continue, s.dispatch([]string{"false"}))
	assert.Contains(t, auditBuf.String(), `"exit_code":1`)

	auditBuf.Reset()
	assert.Equal(t, Continue, s.dispatch([]string{"true"}))
	assert.Contains(t, auditBuf.String(), `"exit_code":0`)
}

func TestRunStopsOnExit(t *testing.T) {
	s, stdout, _ := newTestShell(t, "help\nexit\necho should-not-run\n", nil)

	require.NoError(t, s.Run())

	assert.Contains(t, stdout.String(), "The following commands are built in:")
	assert.NotContains(t, stdout.String(), "should-not-run")
}

func TestRunStopsOnEOF(t *testing.T) {
	s, stdout, _ := newTestShell(t, "", nil)

	require.NoError(t, s.Run())

	// The MOTD still prints even when input is already closed.
	assert.Contains(t, stdout.String(), "Welcome to minish")
}

func TestPrompt(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Prompt = `\u>`

	t.Setenv("USER", "tester")

	s := New(cfg, Options{
		Stdin:  io.NopCloser(strings.NewReader("")),
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	})

	assert.Equal(t, "tester>", s.prompt())
}

func TestPromptAbbreviatesHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		t.Skip("no home directory")
	}

	origWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(origWd))
	})
	require.NoError(t, os.Chdir(home))

	cfg, cfgErr := config.Default()
	require.NoError(t, cfgErr)
	cfg.Prompt = `\w`

	s := New(cfg, Options{
		Stdin:  io.NopCloser(strings.NewReader("")),
		Stdout: &bytes.Buffer{},
		Stderr: &bytes.Buffer{},
	})

	assert.True(t, strings.HasPrefix(s.prompt(), "~"), "got %q", s.prompt())
}
