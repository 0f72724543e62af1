package errors

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation", err: ValidationError("bad flag").Build(), expected: 2},
		{name: "config", err: ConfigError("bad config").Build(), expected: 7},
		{name: "metadata", err: MetadataError("bad document").Build(), expected: 8},
		{name: "generator", err: GeneratorError("tool failed").Build(), expected: 8},
		{name: "filesystem", err: FileSystemError("write failed").Build(), expected: 11},
		{name: "internal", err: InternalError("boom").Build(), expected: 10},
		{name: "unclassified", err: stderrors.New("plain"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var logs bytes.Buffer
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(&logs, nil)))
	var out bytes.Buffer
	adapter.out = &out

	code := adapter.HandleError(MetadataError("schema violation").WithContext("file", "1.0/ui.json").Build())

	assert.Equal(t, 8, code)
	assert.Equal(t, "Error: schema violation (1.0/ui.json)\n", out.String())
	assert.Contains(t, logs.String(), "category=metadata")
}

func TestHTTPErrorAdapter_WriteError(t *testing.T) {
	adapter := NewHTTPErrorAdapter(nil)

	rec := httptest.NewRecorder()
	adapter.WriteError(rec, NotFoundError("type not found").WithContext("type", "Foo").Build())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"type not found","code":"not_found","details":{"type":"Foo"}}`, rec.Body.String())
}
