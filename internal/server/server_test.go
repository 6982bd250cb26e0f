package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/halvard/deckard/pkg/library"
	"github.com/halvard/deckard/pkg/pipeline"
)

const serverDeck = `* Kickoff

Welcome everyone.

- agenda
- goals

** Logistics

Room and schedule.

* Wrap Up

Questions?
`

func newTestServer(t *testing.T) *Server {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "kickoff.deck"), []byte(serverDeck), 0o644); err != nil {
		t.Fatal(err)
	}
	lib, err := library.NewDirStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	logger := log.NewWithOptions(io.Discard, log.Options{})
	return New(lib, pipeline.NewRunner(nil, nil, logger), logger)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected body %q", rec.Body.String())
	}
}

func TestListDecks(t *testing.T) {
	rec := get(t, newTestServer(t), "/decks")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var infos []library.Info
	if err := json.Unmarshal(rec.Body.Bytes(), &infos); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(infos) != 1 || infos[0].ID != "kickoff" || infos[0].Title != "Kickoff" {
		t.Errorf("unexpected listing %+v", infos)
	}
}

func TestGetDeckDefaultJSON(t *testing.T) {
	rec := get(t, newTestServer(t), "/decks/kickoff")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"Kickoff"`) {
		t.Errorf("export missing title: %s", rec.Body.String())
	}
}

func TestGetDeckFormats(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/decks/kickoff?format=html")
	if rec.Code != http.StatusOK {
		t.Fatalf("html: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<h1>Kickoff</h1>") {
		t.Errorf("html export missing heading: %s", rec.Body.String())
	}

	rec = get(t, s, "/decks/kickoff?format=text")
	if rec.Code != http.StatusOK {
		t.Fatalf("text: expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("unexpected content type %q", ct)
	}

	rec = get(t, s, "/decks/kickoff?format=pdf")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unsupported format: expected 400, got %d", rec.Code)
	}
}

func TestGetDeckNotFound(t *testing.T) {
	rec := get(t, newTestServer(t), "/decks/absent")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if body["code"] == "" || body["error"] == "" {
		t.Errorf("error body incomplete: %+v", body)
	}
}

func TestGetDeckInvalidID(t *testing.T) {
	rec := get(t, newTestServer(t), "/decks/NOT-VALID")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid deck ID, got %d", rec.Code)
	}
}

func TestGetSlide(t *testing.T) {
	rec := get(t, newTestServer(t), "/decks/kickoff/slides/0.0")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var slide slideResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &slide); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if slide.Deck != "kickoff" || slide.Path != "0.0" || slide.Title != "Logistics" {
		t.Errorf("unexpected slide %+v", slide)
	}
	if slide.Fragment != slide.Fragments {
		t.Errorf("default should be fully revealed: %+v", slide)
	}
	if !strings.Contains(slide.HTML, "Room and schedule.") {
		t.Errorf("slide HTML missing body: %q", slide.HTML)
	}
}

func TestGetSlideFragment(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/decks/kickoff/slides/0?fragment=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var slide slideResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &slide); err != nil {
		t.Fatal(err)
	}
	if slide.Fragment != 1 || slide.Fragments != 3 {
		t.Errorf("unexpected fragment counts %+v", slide)
	}
	if strings.Contains(slide.HTML, "agenda") {
		t.Errorf("fragment 1 should not reveal bullets: %q", slide.HTML)
	}

	for _, q := range []string{"fragment=-1", "fragment=99", "fragment=abc"} {
		rec := get(t, s, "/decks/kickoff/slides/0?"+q)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", q, rec.Code)
		}
	}
}

func TestGetSlideHTMLFormat(t *testing.T) {
	rec := get(t, newTestServer(t), "/decks/kickoff/slides/0?format=html")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<h1>Kickoff</h1>") {
		t.Errorf("expected raw fragment, got %q", rec.Body.String())
	}
}

func TestGetSlideBadPath(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/decks/kickoff/slides/abc")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed path: expected 400, got %d", rec.Code)
	}

	rec = get(t, s, "/decks/kickoff/slides/9")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unresolvable path: expected 404, got %d", rec.Code)
	}
}
