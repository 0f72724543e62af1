package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundationerrors "git.home.luguber.info/inful/apidocs/internal/foundation/errors"
	"git.home.luguber.info/inful/apidocs/internal/site"
)

type fixture struct {
	dir    string
	config string
	out    string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	meta := filepath.Join(dir, "metadata")
	out := filepath.Join(dir, "out")

	write := func(path, content string) {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	write(filepath.Join(meta, "2.0", "types.json"),
		`[{"name":"Foo","summary":"See <Bar.open>.","properties":[{"name":"title"}]},{"name":"Bar","methods":[{"name":"open"}]}]`)
	write(filepath.Join(meta, "1.0", "foo.yaml"), "name: Foo\nsummary: Old.\n")

	cfg := filepath.Join(dir, "apidocs.yaml")
	write(cfg, `version: "1"
site:
  base_path: /api/
  versions: ["2.0", "1.0"]
metadata:
  dir: `+meta+`
output:
  dir: `+out+`
logging:
  level: error
`)
	return fixture{dir: dir, config: cfg, out: out}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli, kong.Name("apidocs"), kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)

	var out bytes.Buffer
	err = ctx.Run(NewGlobal(&out), &cli)
	return out.String(), err
}

func TestBuildCommand(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "--config", f.config, "build", "--precompress", "gzip")
	require.NoError(t, err)
	assert.Contains(t, out, "for 2 versions to "+f.out)

	data, err := os.ReadFile(filepath.Join(f.out, "2.0", "foo.json"))
	require.NoError(t, err)
	var snap site.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	assert.Contains(t, snap.Metadata.Summary, `href="/api/Bar.html#open"`)
	assert.FileExists(t, filepath.Join(f.out, "1.0", "foo.json.gz"))
	assert.FileExists(t, filepath.Join(f.out, "manifest.json"))
}

func TestBuildCommand_OutputOverride(t *testing.T) {
	f := newFixture(t)
	other := filepath.Join(f.dir, "elsewhere")

	out, err := run(t, "--config", f.config, "build", "-o", other)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(other, "links.json"))
	assert.NoDirExists(t, f.out)

	files := 0
	require.NoError(t, filepath.WalkDir(other, func(_ string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			files++
		}
		return err
	}))
	assert.Contains(t, out, fmt.Sprintf("Wrote %d files ", files))
}

func TestResolveCommand(t *testing.T) {
	f := newFixture(t)

	out, err := run(t, "--config", f.config, "resolve", "Foo.title", "1.0/Foo")
	require.NoError(t, err)
	assert.Equal(t, "Foo.title\t/api/Foo.html#title\nFoo\t/api/1.0/Foo.html\n", out)

	out, err = run(t, "--config", f.config, "resolve", "--from", "1.0", "Foo", "Bar.open")
	require.Error(t, err)
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryNotFound))
	assert.Equal(t, "Foo\t/api/1.0/Foo.html\nBar.open\t(unresolved)\n", out)

	_, err = run(t, "--config", f.config, "resolve", "--from", "9.9", "Foo")
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "apidocs.yaml")

	out, err := run(t, "--config", path, "init")
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+path+"\n", out)

	_, err = run(t, "--config", path, "init")
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryConfig))

	_, err = run(t, "--config", path, "init", "--force")
	assert.NoError(t, err)
}

func TestGenerateCommand_MissingCommand(t *testing.T) {
	f := newFixture(t)

	_, err := run(t, "--config", f.config, "generate")
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryValidation))
}

func TestMissingConfig(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "none.yaml"), "build")
	assert.True(t, foundationerrors.HasCategory(err, foundationerrors.CategoryConfig))
}
