package site

import (
	"log/slog"

	"git.home.luguber.info/inful/apidocs/internal/apimeta"
	"git.home.luguber.info/inful/apidocs/internal/logfields"
)

// Page is the slice of a site page the pipeline reads and extends. Type names
// the documented type; an empty Type marks ordinary content.
type Page struct {
	Path     string
	Type     string
	Version  string
	Headers  []apimeta.Header
	Metadata *apimeta.RenderedType
}

// PageData attaches rendered metadata and navigation headers to page. It
// returns false, leaving page untouched, when page is not an API page or no
// metadata exists for its type; the latter is logged as a warning. Call it at
// most once per page, as headers are appended.
func (s *Site) PageData(page *Page) (bool, error) {
	if page.Type == "" {
		return false, nil
	}
	p, rt, ok, err := s.Render(page.Type, page.Version)
	if !ok {
		version := page.Version
		if version == "" {
			version = s.store.DefaultVersion()
		}
		s.recorder.IncMetadataMiss(version)
		slog.Warn("No metadata for API page, treating as regular content",
			logfields.Type(page.Type), logfields.Version(version), logfields.Path(page.Path))
		return false, nil
	}
	if err != nil {
		return false, err
	}
	page.Metadata = rt
	page.Headers = p.AppendAdditionalHeaders(page.Headers)
	return true, nil
}
