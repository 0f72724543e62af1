package processor

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"

	"git.home.luguber.info/inful/apidocs/internal/apimeta"
)

// Stage functions are pure: each takes a type and returns a new one, leaving
// the input and the slices it shares untouched.

// stripProse drops the type-level description and examples, which listing
// and member pages do not use.
func stripProse(t apimeta.Type) apimeta.Type {
	t.Description = ""
	t.Examples = nil
	return t
}

// filterInherited keeps the members declared or overridden on t: those with
// no inherits value or one equal to t's own name. Order is preserved.
func filterInherited(t apimeta.Type) apimeta.Type {
	for _, kind := range apimeta.MemberKinds {
		members := t.Members(kind)
		kept := make([]apimeta.Member, 0, len(members))
		for _, m := range members {
			if m.InheritedFrom(t.Name) {
				continue
			}
			kept = append(kept, m)
		}
		t.SetMembers(kind, kept)
	}
	return t
}

// sortMembers orders properties and methods by name with a stable,
// locale-aware comparison. Events keep their source order.
func sortMembers(t apimeta.Type, c *collate.Collator) apimeta.Type {
	byName := func(a, b apimeta.Member) int {
		return c.CompareString(a.Name, b.Name)
	}
	props := slices.Clone(t.Properties)
	slices.SortStableFunc(props, byName)
	methods := slices.Clone(t.Methods)
	slices.SortStableFunc(methods, byName)
	t.Properties = props
	t.Methods = methods
	return t
}

// splitConstants moves properties with constant-style names into Constants.
// Relative order within both lists is kept.
func splitConstants(rt apimeta.RenderedType) apimeta.RenderedType {
	props := make([]apimeta.RenderedMember, 0, len(rt.Properties))
	consts := make([]apimeta.RenderedMember, 0)
	for _, m := range rt.Properties {
		if apimeta.IsConstantName(m.Name) {
			consts = append(consts, m)
			continue
		}
		props = append(props, m)
	}
	rt.Properties = props
	rt.Constants = consts
	return rt
}

// examplesMarkdown collapses a member's examples into one markdown block:
// an "Examples" heading followed by one subsection per example.
func examplesMarkdown(examples []apimeta.Example) string {
	var b strings.Builder
	b.WriteString("#### Examples\n\n")
	for _, ex := range examples {
		b.WriteString("##### ")
		b.WriteString(strings.TrimSpace(ex.Description))
		b.WriteString("\n\n")
		b.WriteString(ex.Code)
		b.WriteString("\n\n")
	}
	return b.String()
}
