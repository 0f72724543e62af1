// Package processor turns the raw metadata of one (version, type) pair into
// page-ready content: inherited members filtered out, members sorted, every
// textual field rendered to HTML with key-path references resolved,
// constants split from properties, and a navigation outline collected.
package processor

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/apidocs/internal/apimeta"
	foundationerrors "git.home.luguber.info/inful/apidocs/internal/foundation/errors"
	"git.home.luguber.info/inful/apidocs/internal/logfields"
	"git.home.luguber.info/inful/apidocs/internal/markdown"
	"git.home.luguber.info/inful/apidocs/internal/metrics"
)

// MarkdownRenderer converts markdown to HTML and lets callers read and
// replace a named rendering rule.
type MarkdownRenderer interface {
	Render(src string) (string, error)
	Rule(name string) markdown.Rule
	SetRule(name string, rule markdown.Rule) markdown.Rule
}

// LinkResolver resolves key-path references.
type LinkResolver interface {
	ResolveLink(keyPath, basePath, version string) (apimeta.LinkTarget, bool)
}

// Options carries the collaborators shared by all processors of a site.
type Options struct {
	BasePath string
	// LinkVersion is passed to the resolver: the null version unless several
	// versions are declared and this processor's version is not the default.
	LinkVersion string
	Locale      language.Tag
	Resolver    LinkResolver
	Renderer    MarkdownRenderer
	Recorder    metrics.Recorder
}

// Processor is bound to one (version, type) pair and runs the pipeline at
// most once; later calls return the first result.
type Processor struct {
	version string
	source  *apimeta.Type
	opts    Options

	once         sync.Once
	result       *apimeta.RenderedType
	headers      []apimeta.Header
	hasConstants bool
	err          error
}

// New creates a processor for source. The pipeline does not run until Process.
func New(source *apimeta.Type, version string, opts Options) *Processor {
	if opts.Locale == language.Und {
		opts.Locale = language.English
	}
	opts.Recorder = metrics.OrNoop(opts.Recorder)
	return &Processor{version: version, source: source, opts: opts}
}

// Version returns the version the processor is bound to.
func (p *Processor) Version() string { return p.version }

// TypeName returns the name of the type the processor is bound to.
func (p *Processor) TypeName() string { return p.source.Name }

// Process runs the pipeline on first call and returns the rendered metadata.
func (p *Processor) Process() (*apimeta.RenderedType, error) {
	p.once.Do(p.run)
	return p.result, p.err
}

// Headers returns the navigation headers collected by the pipeline.
func (p *Processor) Headers() []apimeta.Header {
	p.once.Do(p.run)
	return slices.Clone(p.headers)
}

// HasConstants reports whether any property was classified as a constant.
func (p *Processor) HasConstants() bool {
	p.once.Do(p.run)
	return p.hasConstants
}

// AppendAdditionalHeaders returns page with the collected headers appended,
// followed by a single "Constants" header when constants were found. Calling
// it twice for the same page duplicates the entries.
func (p *Processor) AppendAdditionalHeaders(page []apimeta.Header) []apimeta.Header {
	out := slices.Concat(page, p.Headers())
	if p.HasConstants() {
		out = append(out, apimeta.Header{Level: 2, Title: apimeta.KindConstants.Title(), Slug: string(apimeta.KindConstants)})
	}
	return out
}

func (p *Processor) run() {
	start := time.Now()
	log := slog.With(logfields.Version(p.version), logfields.Type(p.source.Name))
	defer func() {
		if rec := recover(); rec != nil {
			p.result, p.headers, p.hasConstants = nil, nil, false
			p.err = foundationerrors.RenderError("metadata pipeline panicked").
				Fatal().
				WithContext("type", p.source.Name).
				WithContext("version", p.version).
				WithContext("panic", fmt.Sprint(rec)).
				Build()
			log.Error("Metadata pipeline panicked", logfields.Error(p.err))
		}
	}()

	t := stripProse(*p.source)
	t = filterInherited(t)
	t = sortMembers(t, collate.New(p.opts.Locale))

	var (
		rendered apimeta.RenderedType
		headers  headerCollector
	)
	err := p.withPlainLinks(func() error {
		var err error
		rendered, err = p.render(t, &headers)
		return err
	})
	if err != nil {
		log.Error("Metadata pipeline failed", logfields.Error(err))
		p.err = err
		return
	}

	rendered = splitConstants(rendered)
	p.result = &rendered
	p.headers = headers.headers
	p.hasConstants = headers.hasConstants

	elapsed := time.Since(start)
	p.opts.Recorder.ObservePipelineDuration(elapsed)
	log.Debug("Processed metadata",
		logfields.Count(len(rendered.Properties)+len(rendered.Methods)+len(rendered.Events)+len(rendered.Constants)),
		logfields.Duration(elapsed))
}

// withPlainLinks swaps the navigational link rule for the pass-through rule
// while fn runs. Rendered member HTML is inserted raw into the page, where the
// navigation widget cannot be hosted. The previous rule is always restored.
func (p *Processor) withPlainLinks(fn func() error) error {
	r := p.opts.Renderer
	prev := r.SetRule(markdown.RuleLink, markdown.PassThroughLink)
	defer r.SetRule(markdown.RuleLink, prev)
	return fn()
}

func (p *Processor) render(t apimeta.Type, headers *headerCollector) (apimeta.RenderedType, error) {
	summary, err := p.renderText(t.Summary)
	if err != nil {
		return apimeta.RenderedType{}, err
	}
	rt := apimeta.RenderedType{
		Name:      t.Name,
		Summary:   summary,
		Extends:   t.Extends,
		Since:     t.Since,
		Platforms: t.Platforms,
	}

	for _, kind := range apimeta.MemberKinds {
		members := t.Members(kind)
		out := make([]apimeta.RenderedMember, 0, len(members))
		headers.beginKind()
		for _, m := range members {
			rm, err := p.renderMember(m)
			if err != nil {
				return apimeta.RenderedType{}, err
			}
			out = append(out, rm)
			headers.member(kind, m.Name)
		}
		headers.endKind(kind)

		switch kind {
		case apimeta.KindProperties:
			rt.Properties = out
		case apimeta.KindMethods:
			rt.Methods = out
		case apimeta.KindEvents:
			rt.Events = out
		}
	}
	return rt, nil
}

func (p *Processor) renderMember(m apimeta.Member) (apimeta.RenderedMember, error) {
	rm := apimeta.RenderedMember{
		Name:       m.Name,
		Inherits:   m.Inherits,
		Platforms:  m.Platforms,
		Type:       m.Type,
		Default:    m.Default,
		Permission: m.Permission,
		Since:      m.Since,
	}

	var err error
	if rm.Summary, err = p.renderText(m.Summary); err != nil {
		return rm, err
	}
	if rm.Description, err = p.renderText(m.Description); err != nil {
		return rm, err
	}
	if len(m.Examples) > 0 {
		examples := make([]apimeta.Example, len(m.Examples))
		for i, ex := range m.Examples {
			examples[i] = apimeta.Example{Description: p.rewrite(ex.Description), Code: ex.Code}
		}
		if rm.Examples, err = p.opts.Renderer.Render(examplesMarkdown(examples)); err != nil {
			return rm, err
		}
	}
	if m.Deprecated != nil {
		d := *m.Deprecated
		if d.Notes, err = p.renderText(d.Notes); err != nil {
			return rm, err
		}
		rm.Deprecated = &d
	}
	if m.Returns != nil {
		r := *m.Returns
		if r.Summary, err = p.renderText(r.Summary); err != nil {
			return rm, err
		}
		rm.Returns = &r
	}
	if len(m.Parameters) > 0 {
		rm.Parameters = make([]apimeta.Parameter, len(m.Parameters))
		for i, param := range m.Parameters {
			if param.Summary, err = p.renderText(param.Summary); err != nil {
				return rm, err
			}
			rm.Parameters[i] = param
		}
	}
	return rm, nil
}

// renderText rewrites references in src and renders it. Empty input stays empty.
func (p *Processor) renderText(src string) (string, error) {
	if src == "" {
		return "", nil
	}
	return p.opts.Renderer.Render(p.rewrite(src))
}

func (p *Processor) rewrite(src string) string {
	return markdown.RewriteReferences(src, p.resolve)
}

func (p *Processor) resolve(keyPath string) (apimeta.LinkTarget, bool) {
	if p.opts.Resolver == nil {
		return apimeta.LinkTarget{}, false
	}
	target, ok := p.opts.Resolver.ResolveLink(keyPath, p.opts.BasePath, p.opts.LinkVersion)
	if ok {
		p.opts.Recorder.IncLinkResolution(metrics.ResultResolved)
	} else {
		p.opts.Recorder.IncLinkResolution(metrics.ResultUnresolved)
	}
	return target, ok
}
