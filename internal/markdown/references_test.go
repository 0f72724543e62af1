package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"git.home.luguber.info/inful/apidocs/internal/apimeta"
)

func fixtureResolve(keyPath string) (apimeta.LinkTarget, bool) {
	targets := map[string]apimeta.LinkTarget{
		"Foo":             {Name: "Foo", Path: "/api/Foo.html"},
		"Foo.bar":         {Name: "Foo.bar", Path: "/api/Foo.html#bar"},
		"7.0/Foo.bar":     {Name: "Foo.bar", Path: "/api/7.0/Foo.html#bar"},
		"Titanium.Buffer": {Name: "Titanium.Buffer", Path: "/api/Titanium.Buffer.html"},
	}
	t, ok := targets[keyPath]
	return t, ok
}

func TestRewriteReferences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "angle shorthand",
			in:   "<Foo.bar>",
			want: "[Foo.bar](/api/Foo.html#bar)",
		},
		{
			name: "unresolvable angle shorthand is untouched",
			in:   "<Unknown.thing>",
			want: "<Unknown.thing>",
		},
		{
			name: "standard link uses resolved name",
			in:   "See [the bar property](Foo.bar).",
			want: "See [Foo.bar](/api/Foo.html#bar).",
		},
		{
			name: "unresolvable standard link is untouched",
			in:   "See [docs](https://example.com/docs).",
			want: "See [docs](https://example.com/docs).",
		},
		{
			name: "standard link with angle destination resolves once",
			in:   "[x](<Foo.bar>)",
			want: "[Foo.bar](/api/Foo.html#bar)",
		},
		{
			name: "unresolvable link keeps inner angle text",
			in:   "[x](<Nope>)",
			want: "[x](<Nope>)",
		},
		{
			name: "version-qualified link target",
			in:   "[old](7.0/Foo.bar)",
			want: "[Foo.bar](/api/7.0/Foo.html#bar)",
		},
		{
			name: "html tags are not references",
			in:   "<b>bold</b> and <br/> and <a href=\"x\">",
			want: "<b>bold</b> and <br/> and <a href=\"x\">",
		},
		{
			name: "images are never rewritten",
			in:   "![Foo](Foo)",
			want: "![Foo](Foo)",
		},
		{
			name: "several references keep surrounding text",
			in:   "Use <Foo> with <Titanium.Buffer>, not <Bar>.",
			want: "Use [Foo](/api/Foo.html) with [Titanium.Buffer](/api/Titanium.Buffer.html), not <Bar>.",
		},
		{
			name: "shorthand containing a slash is ignored",
			in:   "<7.0/Foo.bar>",
			want: "<7.0/Foo.bar>",
		},
		{
			name: "no candidates",
			in:   "plain text",
			want: "plain text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteReferences(tt.in, fixtureResolve))
		})
	}
}

func TestRewriteReferences_NilResolver(t *testing.T) {
	assert.Equal(t, "<Foo>", RewriteReferences("<Foo>", nil))
}

func TestApplyEdits(t *testing.T) {
	src := "abcdef"
	out := ApplyEdits(src, []Edit{
		{Start: 0, End: 1, Replacement: "A"},
		{Start: 4, End: 6, Replacement: "EF!"},
	})
	assert.Equal(t, "AbcdEF!", out)
	assert.Equal(t, "abcdef", src)
}
