// Package site is the entry point of the API reference pipeline. A Site owns
// the metadata store, the link resolver, the markdown renderer and the cache
// of processors keyed by (version, type).
//
// Lifecycle: a Site is created once at startup from loaded metadata. The
// processor cache grows on first reference to each pair and is never
// evicted; its size is bounded by the number of documented types. A watching
// server replaces the whole Site rather than invalidating entries.
package site

import (
	"log/slog"
	"sync"

	"golang.org/x/text/language"

	"git.home.luguber.info/inful/apidocs/internal/apimeta"
	"git.home.luguber.info/inful/apidocs/internal/logfields"
	"git.home.luguber.info/inful/apidocs/internal/markdown"
	"git.home.luguber.info/inful/apidocs/internal/metrics"
	"git.home.luguber.info/inful/apidocs/internal/processor"
	"git.home.luguber.info/inful/apidocs/internal/store"
	"git.home.luguber.info/inful/apidocs/internal/xref"
)

// Options configures a Site.
type Options struct {
	BasePath string
	Locale   language.Tag
	Markdown markdown.Options
	Recorder metrics.Recorder
}

type cacheKey struct {
	version  string
	typeName string
}

// Site serves rendered API metadata for every loaded version.
type Site struct {
	store    *store.Store
	resolver *xref.Resolver
	renderer *markdown.Renderer
	opts     Options
	recorder metrics.Recorder

	mu         sync.Mutex
	processors map[cacheKey]*processor.Processor

	// runMu serializes pipeline runs: processors share the renderer and
	// replace its link rule while they run.
	runMu sync.Mutex
}

// New creates a Site over an already loaded store.
func New(s *store.Store, opts Options) *Site {
	if opts.BasePath == "" {
		opts.BasePath = "/"
	}
	return &Site{
		store:      s,
		resolver:   xref.NewResolver(s),
		renderer:   markdown.New(opts.Markdown),
		opts:       opts,
		recorder:   metrics.OrNoop(opts.Recorder),
		processors: make(map[cacheKey]*processor.Processor),
	}
}

// Load reads the metadata directory for versions and creates a Site over it.
func Load(dir string, versions []string, opts Options) (*Site, error) {
	data, err := store.LoadDir(dir, versions)
	if err != nil {
		return nil, err
	}
	s := store.New()
	if err := s.Load(versions, data); err != nil {
		return nil, err
	}
	return New(s, opts), nil
}

// Store returns the underlying metadata store.
func (s *Site) Store() *store.Store { return s.store }

// BasePath returns the base path resolved links are anchored at.
func (s *Site) BasePath() string { return s.opts.BasePath }

// ResolveLink resolves keyPath in version against the site's base path.
func (s *Site) ResolveLink(keyPath, version string) (apimeta.LinkTarget, bool) {
	return s.resolver.ResolveLink(keyPath, s.opts.BasePath, version)
}

// LinkTable maps every type of every version to its canonical path.
func (s *Site) LinkTable() map[string]map[string]string {
	return s.resolver.LinkTable(s.opts.BasePath)
}

// Processor returns the cached processor for (typeName, version), creating it
// on first use. The null version selects the default version. ok is false
// when no metadata exists for the pair.
func (s *Site) Processor(typeName, version string) (*processor.Processor, bool) {
	if version == apimeta.NullVersion {
		version = s.store.DefaultVersion()
	}
	key := cacheKey{version: version, typeName: typeName}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.processors[key]; ok {
		s.recorder.IncProcessorCacheHit(version)
		return p, true
	}
	meta, ok := s.store.Find(typeName, version)
	if !ok {
		return nil, false
	}
	p := processor.New(meta, version, processor.Options{
		BasePath:    s.opts.BasePath,
		LinkVersion: s.store.LinkVersion(version),
		Locale:      s.opts.Locale,
		Resolver:    s.resolver,
		Renderer:    s.renderer,
		Recorder:    s.recorder,
	})
	s.processors[key] = p
	s.recorder.IncProcessorCreated(version)
	slog.Debug("Created metadata processor", logfields.Version(version), logfields.Type(typeName))
	return p, true
}

// Render returns the processed metadata for (typeName, version). ok is false
// when no metadata exists; err reports a rendering failure.
func (s *Site) Render(typeName, version string) (*processor.Processor, *apimeta.RenderedType, bool, error) {
	p, ok := s.Processor(typeName, version)
	if !ok {
		return nil, nil, false, nil
	}
	s.runMu.Lock()
	defer s.runMu.Unlock()
	rt, err := p.Process()
	return p, rt, true, err
}
