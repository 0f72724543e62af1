package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/apidocs/internal/foundation/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestLoadDir_Layouts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "8.0", "single.json"), `{"name":"Foo","summary":"A foo.","properties":[{"name":"bar"}]}`)
	writeFile(t, filepath.Join(dir, "8.0", "list.json"), `[{"name":"Bar"},{"name":"Baz"}]`)
	writeFile(t, filepath.Join(dir, "8.0", "keyed.yaml"), "Qux:\n  summary: A qux.\n  methods:\n    - name: open\n")
	writeFile(t, filepath.Join(dir, "8.0", "README.md"), "ignored")

	data, err := LoadDir(dir, []string{"8.0", "7.0"})
	require.NoError(t, err)

	require.Contains(t, data, "8.0")
	assert.Len(t, data["8.0"], 4)
	assert.Equal(t, "A foo.", data["8.0"]["Foo"].Summary)
	assert.Equal(t, "bar", data["8.0"]["Foo"].Properties[0].Name)
	assert.Equal(t, "Qux", data["8.0"]["Qux"].Name)
	assert.Equal(t, "open", data["8.0"]["Qux"].Methods[0].Name)

	assert.Empty(t, data["7.0"], "missing version directory loads as empty")
}

func TestLoadDir_SchemaViolation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "1", "bad.json"), `{"name":"Foo","properties":[{"summary":"no name"}]}`)

	_, err := LoadDir(dir, []string{"1"})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))

	classified, ok := ferrors.AsClassified(err)
	require.True(t, ok)
	file, _ := classified.Context().GetString("file")
	assert.Equal(t, filepath.Join(dir, "1", "bad.json"), file)
}

func TestLoadDir_DuplicateType(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "1", "a.json"), `{"name":"Foo"}`)
	writeFile(t, filepath.Join(dir, "1", "b.json"), `{"name":"Foo"}`)

	_, err := LoadDir(dir, []string{"1"})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryMetadata))
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "nope"), []string{"1"})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryMetadata))
}

func TestLoadFile_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.json")
	writeFile(t, path, `{"name":`)

	_, err := LoadFile(path)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryMetadata))
}
