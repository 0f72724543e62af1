package generator

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/apidocs/internal/foundation/errors"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func quiet() *slog.Logger { return slog.New(slog.DiscardHandler) }

func TestRunner_Success(t *testing.T) {
	requireShell(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "src")
	require.NoError(t, os.Mkdir(input, 0o755))

	res, err := Runner{
		Command: "sh",
		Args:    []string{"-c", "echo generated; echo note >&2"},
		Inputs:  []string{input},
		Dir:     dir,
		Logger:  quiet(),
	}.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "generated\n", res.Stdout)
	assert.Equal(t, "note\n", res.Stderr)
}

func TestRunner_MissingInputsFailFast(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "ran")
	_, err := Runner{
		Command: "sh",
		Args:    []string{"-c", "touch " + marker},
		Inputs:  []string{filepath.Join(t.TempDir(), "missing")},
		Logger:  quiet(),
	}.Run(context.Background())
	require.Error(t, err)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))
	assert.NoFileExists(t, marker)
}

func TestRunner_CommandFailure(t *testing.T) {
	requireShell(t)
	_, err := Runner{
		Command: "sh",
		Args:    []string{"-c", "echo broken input >&2; exit 3"},
		Logger:  quiet(),
	}.Run(context.Background())
	require.Error(t, err)

	classified, ok := foundationerrors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, foundationerrors.CategoryGenerator, classified.Category())
	assert.Equal(t, "broken input", classified.Context()["stderr"])
	assert.Equal(t, 3, classified.Context()["exit_code"])
}

func TestRunner_CommandNotFound(t *testing.T) {
	_, err := Runner{Command: "apidocs-no-such-generator", Logger: quiet()}.Run(context.Background())
	require.Error(t, err)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryGenerator))
}

func TestRunner_EmptyCommand(t *testing.T) {
	_, err := Runner{Command: "  "}.Run(context.Background())
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", maxStderr+10) + "end"
	got := truncate(long)
	assert.Len(t, got, maxStderr)
	assert.True(t, strings.HasSuffix(got, "end"))
}

func TestTruncate_KeepsRuneBoundary(t *testing.T) {
	got := truncate("é" + strings.Repeat("x", maxStderr-1))
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("x", maxStderr-1), got)
}
