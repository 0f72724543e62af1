// Package markdown renders markdown text to HTML with goldmark and rewrites
// inline key-path references into standard markdown links before rendering.
//
// The renderer exposes named rendering rules that can be read and replaced
// at runtime. The only rule today is RuleLink, which by default turns
// site-internal links into a navigational widget.
package markdown

import (
	"bytes"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	ferrors "git.home.luguber.info/inful/apidocs/internal/foundation/errors"
)

// RuleLink is the rule rendering ordinary inline links.
const RuleLink = "link"

// Rule renders one node kind. It has the shape of a goldmark node renderer func.
type Rule = renderer.NodeRendererFunc

var ruleKinds = map[string]ast.NodeKind{
	RuleLink: ast.KindLink,
}

// Options configures the goldmark engine.
type Options struct {
	Extensions []string
	Unsafe     bool
	HardWraps  bool
}

// Renderer converts markdown to HTML. It is safe for concurrent use; rule
// replacement affects every render that starts after it.
type Renderer struct {
	md goldmark.Markdown

	mu    sync.RWMutex
	rules map[string]Rule
}

// New builds a renderer with the navigational link rule installed.
func New(opts Options) *Renderer {
	r := &Renderer{
		rules: map[string]Rule{RuleLink: NavigationLink},
	}

	rendererOptions := []renderer.Option{
		renderer.WithNodeRenderers(util.Prioritized(&ruleDispatcher{r: r}, 100)),
	}
	if opts.Unsafe {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}

	r.md = goldmark.New(
		goldmark.WithExtensions(collectExtensions(opts.Extensions)...),
		goldmark.WithRendererOptions(rendererOptions...),
	)
	return r
}

// Render converts src to HTML.
func (r *Renderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", ferrors.WrapError(err, ferrors.CategoryRender, "render markdown").Build()
	}
	return buf.String(), nil
}

// Rule returns the rule currently installed under name, or nil.
func (r *Renderer) Rule(name string) Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rules[name]
}

// SetRule installs rule under name and returns the rule it replaced. Names
// without a node kind binding are ignored.
func (r *Renderer) SetRule(name string, rule Rule) Rule {
	if _, ok := ruleKinds[name]; !ok {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.rules[name]
	r.rules[name] = rule
	return prev
}

// WithRule installs rule under name for the duration of fn. The previous rule
// is restored on every exit path, including a panic in fn.
func (r *Renderer) WithRule(name string, rule Rule, fn func() error) error {
	prev := r.SetRule(name, rule)
	defer r.SetRule(name, prev)
	return fn()
}

// ruleDispatcher binds each named rule to its node kind and looks the rule up
// at render time so replacements take effect without rebuilding the engine.
type ruleDispatcher struct {
	r *Renderer
}

func (d *ruleDispatcher) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	for name, kind := range ruleKinds {
		reg.Register(kind, func(w util.BufWriter, source []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
			rule := d.r.Rule(name)
			if rule == nil {
				rule = PassThroughLink
			}
			return rule(w, source, n, entering)
		})
	}
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

// ExtensionNames lists the accepted extension names.
func ExtensionNames() []string {
	return slices.Sorted(maps.Keys(extensionRegistry))
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}
	}
	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		extenders = append(extenders, ext)
	}
	return extenders
}
