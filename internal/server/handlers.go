package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/halvard/deckard/pkg/deck"
	"github.com/halvard/deckard/pkg/errors"
	"github.com/halvard/deckard/pkg/parse"
	"github.com/halvard/deckard/pkg/pipeline"
	"github.com/halvard/deckard/pkg/render/sink"
)

// slideResponse is the JSON shape for a single rendered slide.
type slideResponse struct {
	Deck      string `json:"deck"`
	Path      string `json:"path"`
	Title     string `json:"title,omitempty"`
	Fragment  int    `json:"fragment"`
	Fragments int    `json:"fragments"`
	HTML      string `json:"html"`
}

// handleListDecks returns the deck library listing.
func (s *Server) handleListDecks(w http.ResponseWriter, r *http.Request) {
	infos, err := s.lib.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, infos)
}

// handleGetDeck exports a whole deck in the requested format
// (?format=json|html|text, default json).
func (s *Server) handleGetDeck(w http.ResponseWriter, r *http.Request) {
	d, err := s.lib.Get(r.Context(), chi.URLParam(r, "deckID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}

	result, err := s.runner.Export(r.Context(), d.Source, pipeline.Options{
		Formats: []string{format},
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// handleGetSlide renders one slide at a fragment position. The slide path
// uses dot-separated child indices, e.g. /decks/mvvm/slides/2.0?fragment=1.
func (s *Server) handleGetSlide(w http.ResponseWriter, r *http.Request) {
	d, err := s.lib.Get(r.Context(), chi.URLParam(r, "deckID"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	doc, err := parse.Parse(d.Source)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeParse, err, "parse deck %s", d.ID))
		return
	}

	path, err := deck.ParsePath(chi.URLParam(r, "slidePath"))
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidPath, err, "invalid slide path"))
		return
	}
	node, err := doc.Resolve(path)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeNotFound, err, "slide not found"))
		return
	}

	fragment := node.FragmentCount()
	if raw := r.URL.Query().Get("fragment"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > node.FragmentCount() {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput,
				"fragment must be in [0,%d]", node.FragmentCount()))
			return
		}
		fragment = n
	}

	html := sink.HTMLFragment(node, fragment)
	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(html)
		return
	}

	writeJSON(w, http.StatusOK, slideResponse{
		Deck:      d.ID,
		Path:      path.String(),
		Title:     node.Title,
		Fragment:  fragment,
		Fragments: node.FragmentCount(),
		HTML:      string(html),
	})
}

// contentType maps export formats onto response content types.
func contentType(format string) string {
	switch format {
	case pipeline.FormatJSON:
		return "application/json"
	case pipeline.FormatHTML:
		return "text/html; charset=utf-8"
	case pipeline.FormatSVG:
		return "image/svg+xml"
	default:
		return "text/plain; charset=utf-8"
	}
}
