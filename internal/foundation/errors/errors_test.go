package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "apidocs.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())
		assert.True(t, err.IsFatal())

		file, ok := err.Context().GetString("file")
		require.True(t, ok)
		assert.Equal(t, "apidocs.yaml", file)
	})

	t.Run("Wrapped cause is reachable", func(t *testing.T) {
		cause := stderrors.New("unexpected EOF")
		err := WrapError(cause, CategoryMetadata, "decode metadata").Build()

		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "[metadata:error] decode metadata: unexpected EOF")
	})

	t.Run("Category detection through fmt wrapping", func(t *testing.T) {
		inner := GeneratorError("generator exited with status 2").Build()
		outer := fmt.Errorf("generate: %w", inner)

		assert.True(t, HasCategory(outer, CategoryGenerator))
		assert.Equal(t, CategoryGenerator, GetCategory(outer))
		assert.Equal(t, CategoryInternal, GetCategory(stderrors.New("plain")))
	})
}

func TestErrorContext_Merge(t *testing.T) {
	base := ErrorContext{"file": "a.json", "version": "1.0"}
	merged := base.Merge(ErrorContext{"version": "2.0"})

	assert.Equal(t, "a.json", merged["file"])
	assert.Equal(t, "2.0", merged["version"])
	assert.Equal(t, "1.0", base["version"], "merge must not modify the receiver")
}
