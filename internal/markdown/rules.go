package markdown

import (
	"regexp"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)

// IsInternalDestination reports whether dest points into the site: an
// absolute path or a relative reference without a scheme. Fragment-only and
// protocol-relative destinations are external.
func IsInternalDestination(dest []byte) bool {
	if len(dest) == 0 || dest[0] == '#' {
		return false
	}
	if len(dest) > 1 && dest[0] == '/' && dest[1] == '/' {
		return false
	}
	return !schemePattern.Match(dest)
}

// NavigationLink renders internal links as a <nav-link to="..."> widget and
// everything else as a plain anchor.
func NavigationLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	if !IsInternalDestination(n.Destination) {
		return PassThroughLink(w, source, node, entering)
	}
	if !entering {
		_, _ = w.WriteString("</nav-link>")
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<nav-link to="`)
	_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	_ = w.WriteByte('"')
	writeTitle(w, n)
	_ = w.WriteByte('>')
	return ast.WalkContinue, nil
}

// PassThroughLink renders every link as a plain <a href> element, matching
// goldmark's default markup. Dangerous URLs are dropped from href.
func PassThroughLink(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	if !entering {
		_, _ = w.WriteString("</a>")
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<a href="`)
	if !html.IsDangerousURL(n.Destination) {
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.Destination, true)))
	}
	_ = w.WriteByte('"')
	writeTitle(w, n)
	if n.Attributes() != nil {
		html.RenderAttributes(w, n, html.LinkAttributeFilter)
	}
	_ = w.WriteByte('>')
	return ast.WalkContinue, nil
}

func writeTitle(w util.BufWriter, n *ast.Link) {
	if n.Title == nil {
		return
	}
	_, _ = w.WriteString(` title="`)
	_, _ = w.Write(util.EscapeHTML(n.Title))
	_ = w.WriteByte('"')
}
