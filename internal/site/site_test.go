package site

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apidocs/internal/apimeta"
	"git.home.luguber.info/inful/apidocs/internal/metrics"
	"git.home.luguber.info/inful/apidocs/internal/store"
)

type countingRecorder struct {
	created, hits, misses int
}

func (c *countingRecorder) IncProcessorCreated(string)                            { c.created++ }
func (c *countingRecorder) IncProcessorCacheHit(string)                           { c.hits++ }
func (c *countingRecorder) IncMetadataMiss(string)                                { c.misses++ }
func (c *countingRecorder) IncLinkResolution(metrics.ResultLabel)                 {}
func (c *countingRecorder) ObservePipelineDuration(time.Duration)                 {}
func (c *countingRecorder) ObserveSnapshotWrite(time.Duration, metrics.ResultLabel) {}

func testSite(t *testing.T, versions []string, rec *countingRecorder) *Site {
	t.Helper()
	data := map[string]map[string]apimeta.Type{}
	for _, v := range versions {
		data[v] = map[string]apimeta.Type{
			"Foo": {
				Summary:    "Uses <Bar.baz>.",
				Properties: []apimeta.Member{{Name: "title", Summary: "The title."}, {Name: "MAX"}},
				Methods:    []apimeta.Member{{Name: "open"}},
			},
			"Bar": {
				Properties: []apimeta.Member{{Name: "baz"}},
			},
		}
	}
	s := store.New()
	require.NoError(t, s.Load(versions, data))
	opts := Options{BasePath: "/api/"}
	if rec != nil {
		opts.Recorder = rec
	}
	return New(s, opts)
}

func TestSite_ProcessorCache(t *testing.T) {
	rec := &countingRecorder{}
	s := testSite(t, []string{"8.0", "7.0"}, rec)

	first, ok := s.Processor("Foo", "8.0")
	require.True(t, ok)
	second, ok := s.Processor("Foo", "8.0")
	require.True(t, ok)
	assert.Same(t, first, second)

	byDefault, ok := s.Processor("Foo", apimeta.NullVersion)
	require.True(t, ok)
	assert.Same(t, first, byDefault)

	older, ok := s.Processor("Foo", "7.0")
	require.True(t, ok)
	assert.NotSame(t, first, older)
	assert.Equal(t, "7.0", older.Version())

	_, ok = s.Processor("Missing", "8.0")
	assert.False(t, ok)

	assert.Equal(t, 2, rec.created)
	assert.Equal(t, 2, rec.hits)
}

func TestSite_PageData(t *testing.T) {
	rec := &countingRecorder{}
	s := testSite(t, []string{"8.0"}, rec)

	page := &Page{Path: "foo.md", Type: "Foo", Headers: []apimeta.Header{{Level: 1, Title: "Foo", Slug: "foo"}}}
	ok, err := s.PageData(page)
	require.NoError(t, err)
	require.True(t, ok)

	require.NotNil(t, page.Metadata)
	assert.Equal(t, "Foo", page.Metadata.Name)
	assert.Contains(t, page.Metadata.Summary, `href="/api/Bar.html#baz"`)
	assert.Equal(t, []string{"title"}, apimeta.Names(page.Metadata.Properties))
	assert.Equal(t, []string{"MAX"}, apimeta.Names(page.Metadata.Constants))
	assert.Equal(t, []apimeta.Header{
		{Level: 1, Title: "Foo", Slug: "foo"},
		{Level: 2, Title: "Properties", Slug: "properties"},
		{Level: 3, Title: "title", Slug: "title"},
		{Level: 2, Title: "Methods", Slug: "methods"},
		{Level: 3, Title: "open", Slug: "open"},
		{Level: 2, Title: "Constants", Slug: "constants"},
	}, page.Headers)
}

func TestSite_PageDataSkipsNonAPIPages(t *testing.T) {
	rec := &countingRecorder{}
	s := testSite(t, []string{"8.0"}, rec)

	page := &Page{Path: "guide.md"}
	ok, err := s.PageData(page)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, page.Metadata)

	missing := &Page{Path: "gone.md", Type: "Gone"}
	ok, err = s.PageData(missing)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, missing.Metadata)
	assert.Empty(t, missing.Headers)
	assert.Equal(t, 1, rec.misses)
}

func TestSite_ResolveLinkUsesBasePath(t *testing.T) {
	s := testSite(t, []string{"8.0", "7.0"}, nil)

	target, ok := s.ResolveLink("Foo.title", "7.0")
	require.True(t, ok)
	assert.Equal(t, "/api/7.0/Foo.html#title", target.Path)

	table := s.LinkTable()
	assert.Equal(t, "/api/Bar.html", table["8.0"]["Bar"])
	assert.Equal(t, "/api/7.0/Bar.html", table["7.0"]["Bar"])
}

func TestNew_DefaultsBasePath(t *testing.T) {
	s := New(store.New(), Options{})
	assert.Equal(t, "/", s.BasePath())
}
