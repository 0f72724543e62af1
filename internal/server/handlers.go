package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	foundationerrors "git.home.luguber.info/inful/apidocs/internal/foundation/errors"
	"git.home.luguber.info/inful/apidocs/internal/site"
)

// HealthResponse is the /healthz payload.
type HealthResponse struct {
	Status         string   `json:"status"`
	DefaultVersion string   `json:"default_version"`
	Versions       []string `json:"versions"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	st := s.Site().Store()
	writeJSON(w, HealthResponse{
		Status:         "ok",
		DefaultVersion: st.DefaultVersion(),
		Versions:       st.Versions(),
	})
}

func (s *Server) handleLinks(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, s.Site().LinkTable())
}

// handleMetadata serves the rendered metadata of one type. The type name is
// matched case-insensitively; a missing version segment selects the default.
func (s *Server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	current := s.Site()
	st := current.Store()

	version := chi.URLParam(r, "version")
	if version == "" {
		version = st.DefaultVersion()
	}
	if !st.HasVersion(version) {
		s.adapter.WriteError(w, foundationerrors.NotFoundError("unknown version").
			WithContext("version", version).
			Build())
		return
	}

	typeName := chi.URLParam(r, "type")
	meta, ok := st.FindCaseInsensitive(typeName, version)
	if !ok {
		s.adapter.WriteError(w, foundationerrors.NotFoundError("no metadata for type").
			WithContext("type", typeName).
			WithContext("version", version).
			Build())
		return
	}

	p, rt, _, err := current.Render(meta.Name, version)
	if err != nil {
		s.adapter.WriteError(w, err)
		return
	}
	writeJSON(w, site.Snapshot{
		Version:  version,
		Metadata: rt,
		Headers:  p.AppendAdditionalHeaders(nil),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
