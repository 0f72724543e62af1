package markdown

import (
	"regexp"
	"sort"
	"strings"

	"git.home.luguber.info/inful/apidocs/internal/apimeta"
)

// ResolveFunc resolves a key-path to a link target; ok is false when the
// key-path names nothing.
type ResolveFunc func(keyPath string) (apimeta.LinkTarget, bool)

// referencePattern recognizes the two reference forms, in priority order:
//
//	[display](target)   standard link; group 1 is "!" for images
//	<Key.path>          angle-bracket shorthand without "/" or nested brackets
//
// A standard link is matched as a whole, so an angle-bracket destination
// such as [x](<Foo.bar>) is resolved as part of the link, never separately.
var referencePattern = regexp.MustCompile(`(!?)\[([^\]\n]*)\]\(([^()\s]+)\)|<([^/<>\n]+)>`)

// Edit is a byte-range replacement; End is exclusive.
type Edit struct {
	Start       int
	End         int
	Replacement string
}

// ReferenceEdits returns the replacements that turn resolvable references in
// src into standard markdown links. Unresolvable references produce no edit.
func ReferenceEdits(src string, resolve ResolveFunc) []Edit {
	var edits []Edit
	for _, m := range referencePattern.FindAllStringSubmatchIndex(src, -1) {
		var keyPath string
		switch {
		case m[6] >= 0: // standard link
			if m[3] > m[2] {
				continue // image
			}
			keyPath = src[m[6]:m[7]]
			if strings.HasPrefix(keyPath, "<") && strings.HasSuffix(keyPath, ">") {
				keyPath = keyPath[1 : len(keyPath)-1]
			}
		case m[8] >= 0:
			keyPath = src[m[8]:m[9]]
		default:
			continue
		}
		target, ok := resolve(keyPath)
		if !ok {
			continue
		}
		edits = append(edits, Edit{
			Start:       m[0],
			End:         m[1],
			Replacement: "[" + target.Name + "](" + target.Path + ")",
		})
	}
	return edits
}

// ApplyEdits applies non-overlapping edits to src. Edits are applied from the
// end toward the beginning so earlier offsets stay valid.
func ApplyEdits(src string, edits []Edit) string {
	if len(edits) == 0 {
		return src
	}
	sorted := make([]Edit, len(edits))
	copy(sorted, edits)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start > sorted[j].Start })

	out := src
	for _, e := range sorted {
		out = out[:e.Start] + e.Replacement + out[e.End:]
	}
	return out
}

// RewriteReferences rewrites every resolvable reference in src into a
// standard markdown link and leaves everything else untouched.
func RewriteReferences(src string, resolve ResolveFunc) string {
	if resolve == nil || !strings.ContainsAny(src, "<[") {
		return src
	}
	return ApplyEdits(src, ReferenceEdits(src, resolve))
}
