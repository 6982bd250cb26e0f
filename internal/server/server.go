// Package server implements the deckard HTTP API.
//
// The server exposes a deck library over REST: listing decks, fetching
// whole-deck exports, and fetching individual slides rendered at a given
// fragment position. It is the web counterpart of the terminal presenter;
// a thin frontend can drive a presentation by walking slide paths.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/halvard/deckard/pkg/errors"
	"github.com/halvard/deckard/pkg/library"
	"github.com/halvard/deckard/pkg/pipeline"
)

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	lib    library.Store
	runner *pipeline.Runner
	log    *log.Logger
}

// New creates and configures the HTTP server.
func New(lib library.Store, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		lib:    lib,
		runner: runner,
		log:    logger,
	}
	s.setupRoutes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.log))

	r.Get("/healthz", s.handleHealth)
	r.Get("/decks", s.handleListDecks)
	r.Get("/decks/{deckID}", s.handleGetDeck)
	r.Get("/decks/{deckID}/slides/{slidePath}", s.handleGetSlide)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps structured error codes onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeDeckNotFound, errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidDeckID, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPath:
		status = http.StatusBadRequest
	case errors.ErrCodeParse:
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}
