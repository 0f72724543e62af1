package apimeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsConstantName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"MAX_SIZE", true},
		{"ANIMATION_CURVE_EASE_IN", true},
		{"HTTP2", true},
		{"_", true},
		{"title", false},
		{"MaxSize", false},
		{"MAX-SIZE", false},
		{"MAX SIZE", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsConstantName(tt.name))
		})
	}
}

func TestMemberKindTitle(t *testing.T) {
	assert.Equal(t, "Properties", KindProperties.Title())
	assert.Equal(t, "Methods", KindMethods.Title())
	assert.Equal(t, "Events", KindEvents.Title())
	assert.Equal(t, "Constants", KindConstants.Title())
}

func TestFindMember(t *testing.T) {
	typ := Type{
		Name:       "Foo",
		Properties: []Member{{Name: "bar"}},
		Methods:    []Member{{Name: "open"}},
		Events:     []Member{{Name: "click"}},
	}

	m, kind, ok := typ.FindMember("open")
	require.True(t, ok)
	assert.Equal(t, KindMethods, kind)
	assert.Equal(t, "open", m.Name)

	_, _, ok = typ.FindMember("missing")
	assert.False(t, ok)
}

func TestInheritedFrom(t *testing.T) {
	assert.False(t, Member{Name: "a"}.InheritedFrom("Foo"))
	assert.False(t, Member{Name: "a", Inherits: "Foo"}.InheritedFrom("Foo"))
	assert.True(t, Member{Name: "a", Inherits: "Base"}.InheritedFrom("Foo"))
}
