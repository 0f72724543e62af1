package processor

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/apidocs/internal/apimeta"
)

// headerCollector accumulates the navigation outline while members are
// transformed. Constant-named properties set hasConstants instead of adding
// their own header.
type headerCollector struct {
	headers      []apimeta.Header
	hasConstants bool
	groupStart   int
}

func (c *headerCollector) beginKind() {
	c.groupStart = len(c.headers)
}

// member records a header for name, or notes a constant. Only properties are
// checked for constant names.
func (c *headerCollector) member(kind apimeta.MemberKind, name string) {
	if kind == apimeta.KindProperties && apimeta.IsConstantName(name) {
		c.hasConstants = true
		return
	}
	c.headers = append(c.headers, apimeta.Header{Level: 3, Title: name, Slug: strings.ToLower(name)})
}

// endKind prepends the group header when the kind contributed any member header.
func (c *headerCollector) endKind(kind apimeta.MemberKind) {
	if len(c.headers) == c.groupStart {
		return
	}
	group := apimeta.Header{Level: 2, Title: kind.Title(), Slug: string(kind)}
	c.headers = slices.Insert(c.headers, c.groupStart, group)
}
