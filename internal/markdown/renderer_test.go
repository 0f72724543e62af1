package markdown

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	r := New(Options{})

	html, err := r.Render("Some *emphasis*.")
	require.NoError(t, err)
	assert.Equal(t, "<p>Some <em>emphasis</em>.</p>\n", html)
}

func TestRenderer_NavigationLinkRule(t *testing.T) {
	r := New(Options{})

	html, err := r.Render("[Foo.bar](/api/Foo.html#bar) and [site](https://example.com)")
	require.NoError(t, err)
	assert.Equal(t,
		`<p><nav-link to="/api/Foo.html#bar">Foo.bar</nav-link> and <a href="https://example.com">site</a></p>`+"\n",
		html)
}

func TestRenderer_WithRuleRestores(t *testing.T) {
	r := New(Options{})
	const src = "[Foo](/api/Foo.html)"

	err := r.WithRule(RuleLink, PassThroughLink, func() error {
		html, err := r.Render(src)
		require.NoError(t, err)
		assert.Equal(t, `<p><a href="/api/Foo.html">Foo</a></p>`+"\n", html)
		return nil
	})
	require.NoError(t, err)

	html, err := r.Render(src)
	require.NoError(t, err)
	assert.Equal(t, `<p><nav-link to="/api/Foo.html">Foo</nav-link></p>`+"\n", html)
}

func TestRenderer_WithRuleRestoresOnError(t *testing.T) {
	r := New(Options{})
	boom := errors.New("boom")

	err := r.WithRule(RuleLink, PassThroughLink, func() error { return boom })
	require.ErrorIs(t, err, boom)

	html, err := r.Render("[Foo](/Foo.html)")
	require.NoError(t, err)
	assert.Contains(t, html, "<nav-link")
}

func TestRenderer_WithRuleRestoresOnPanic(t *testing.T) {
	r := New(Options{})

	assert.Panics(t, func() {
		_ = r.WithRule(RuleLink, PassThroughLink, func() error { panic("render failed") })
	})

	html, err := r.Render("[Foo](/Foo.html)")
	require.NoError(t, err)
	assert.Contains(t, html, "<nav-link")
}

func TestRenderer_SetRuleUnknownName(t *testing.T) {
	r := New(Options{})
	assert.Nil(t, r.SetRule("image", PassThroughLink))
	assert.Nil(t, r.Rule("image"))
	assert.NotNil(t, r.Rule(RuleLink))
}

func TestRenderer_PassThroughDropsDangerousURL(t *testing.T) {
	r := New(Options{})
	r.SetRule(RuleLink, PassThroughLink)

	html, err := r.Render("[x](javascript:alert(1))")
	require.NoError(t, err)
	assert.NotContains(t, html, "javascript:")
}

func TestIsInternalDestination(t *testing.T) {
	tests := map[string]bool{
		"/api/Foo.html":       true,
		"Foo.html":            true,
		"../Foo.html#bar":     true,
		"#bar":                false,
		"//cdn.example.com/x": false,
		"https://example.com": false,
		"mailto:a@b.c":        false,
		"":                    false,
	}
	for dest, want := range tests {
		t.Run(dest, func(t *testing.T) {
			assert.Equal(t, want, IsInternalDestination([]byte(dest)))
		})
	}
}

func TestCollectExtensions(t *testing.T) {
	assert.Len(t, collectExtensions(nil), 1)
	assert.Len(t, collectExtensions([]string{"table", "TABLE", "bogus", " footnote "}), 2)
}
