package parse

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/halvard/deckard/pkg/deck"
)

func TestParseHeadings(t *testing.T) {
	src := `* Intro

** Details

*** Fine Print

* Closing
`
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.Slides) != 2 {
		t.Fatalf("expected 2 top-level slides, got %d", len(doc.Slides))
	}
	if doc.Slides[0].Title != "Intro" {
		t.Errorf("expected first slide 'Intro', got %q", doc.Slides[0].Title)
	}
	if doc.Title != "Intro" {
		t.Errorf("expected document title 'Intro', got %q", doc.Title)
	}
	child := doc.Slides[0].Children
	if len(child) != 1 || child[0].Title != "Details" {
		t.Fatalf("expected one child 'Details', got %+v", child)
	}
	if child[0].Depth != 1 {
		t.Errorf("expected child depth 1, got %d", child[0].Depth)
	}
	grand := child[0].Children
	if len(grand) != 1 || grand[0].Title != "Fine Print" {
		t.Fatalf("expected grandchild 'Fine Print', got %+v", grand)
	}
	if doc.Slides[1].Title != "Closing" {
		t.Errorf("expected second slide 'Closing', got %q", doc.Slides[1].Title)
	}
}

func TestParseHeadingSiblingAfterDescent(t *testing.T) {
	src := "* A\n** A1\n** A2\n* B\n"
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.Slides) != 2 {
		t.Fatalf("expected 2 slides, got %d", len(doc.Slides))
	}
	if got := len(doc.Slides[0].Children); got != 2 {
		t.Errorf("expected 2 children under A, got %d", got)
	}
}

func TestParseHeadingLevelJump(t *testing.T) {
	_, err := Parse([]byte("* Top\n*** Too Deep\n"))
	if err == nil {
		t.Fatal("expected error for skipped heading level")
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if perr.Line != 2 {
		t.Errorf("expected error at line 2, got %d", perr.Line)
	}
	if !strings.Contains(perr.Msg, "heading nesting jumps") {
		t.Errorf("unexpected message %q", perr.Msg)
	}
}

func TestParseHeadingJumpAtStart(t *testing.T) {
	_, err := Parse([]byte("** No Parent\n"))
	if err == nil {
		t.Fatal("expected error for level 2 heading with no parent")
	}
}

func TestParseParagraphs(t *testing.T) {
	src := `* Slide

First line
continues here.

Second paragraph.
`
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	body := doc.Slides[0].Body
	if len(body) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(body))
	}
	p0, ok := body[0].(deck.Paragraph)
	if !ok {
		t.Fatalf("expected Paragraph, got %T", body[0])
	}
	if p0.Text != "First line continues here." {
		t.Errorf("expected joined paragraph, got %q", p0.Text)
	}
	if p1 := body[1].(deck.Paragraph); p1.Text != "Second paragraph." {
		t.Errorf("unexpected second paragraph %q", p1.Text)
	}
}

func TestParseBullets(t *testing.T) {
	src := `* Slide

- alpha
- beta
  - beta one
  - beta two
- gamma
`
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	list, ok := doc.Slides[0].Body[0].(deck.BulletList)
	if !ok {
		t.Fatalf("expected BulletList, got %T", doc.Slides[0].Body[0])
	}
	if len(list.Items) != 3 {
		t.Fatalf("expected 3 top-level items, got %d", len(list.Items))
	}
	if list.Items[1].Text != "beta" {
		t.Errorf("expected 'beta', got %q", list.Items[1].Text)
	}
	nested := list.Items[1].Children
	if len(nested) != 2 || nested[0].Text != "beta one" {
		t.Fatalf("expected nested items under beta, got %+v", nested)
	}
	if len(list.Items[2].Children) != 0 {
		t.Errorf("gamma should have no children")
	}
}

func TestParseBulletsOverIndentClamps(t *testing.T) {
	src := "* S\n\n- top\n      - deep\n"
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	list := doc.Slides[0].Body[0].(deck.BulletList)
	if len(list.Items) != 1 {
		t.Fatalf("expected 1 top-level item, got %d", len(list.Items))
	}
	if len(list.Items[0].Children) != 1 {
		t.Fatalf("over-indented item should clamp to one level deep, got %+v", list.Items[0])
	}
}

func TestParseQuote(t *testing.T) {
	src := `* Slide

> Stay hungry.
> Stay foolish.
> -- Stewart Brand
`
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	q, ok := doc.Slides[0].Body[0].(deck.Quote)
	if !ok {
		t.Fatalf("expected Quote, got %T", doc.Slides[0].Body[0])
	}
	if q.Text != "Stay hungry.\nStay foolish." {
		t.Errorf("unexpected quote text %q", q.Text)
	}
	if q.Attribution != "Stewart Brand" {
		t.Errorf("unexpected attribution %q", q.Attribution)
	}
}

func TestParseCode(t *testing.T) {
	src := "* Slide\n\n```go\nfmt.Println(\"hi\")\n\nreturn\n```\n"
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	c, ok := doc.Slides[0].Body[0].(deck.Code)
	if !ok {
		t.Fatalf("expected Code, got %T", doc.Slides[0].Body[0])
	}
	if c.Lang != "go" {
		t.Errorf("expected lang go, got %q", c.Lang)
	}
	if c.Text != "fmt.Println(\"hi\")\n\nreturn" {
		t.Errorf("unexpected code body %q", c.Text)
	}
}

func TestParseUnterminatedCode(t *testing.T) {
	_, err := Parse([]byte("* Slide\n\n```go\nno close\n"))
	if err == nil {
		t.Fatal("expected error for unterminated fence")
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if perr.Line != 3 {
		t.Errorf("error should point at the opening fence, got line %d", perr.Line)
	}
	if !strings.Contains(perr.Msg, "unterminated code block") {
		t.Errorf("unexpected message %q", perr.Msg)
	}
}

func TestParseImageAndLink(t *testing.T) {
	src := `* Slide

![diagram](img/arch.png)

[docs](https://example.com/docs)
`
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	body := doc.Slides[0].Body
	img, ok := body[0].(deck.Image)
	if !ok {
		t.Fatalf("expected Image, got %T", body[0])
	}
	if img.Alt != "diagram" || img.Path != "img/arch.png" {
		t.Errorf("unexpected image %+v", img)
	}
	link, ok := body[1].(deck.Link)
	if !ok {
		t.Fatalf("expected Link, got %T", body[1])
	}
	if link.Label != "docs" || link.URL != "https://example.com/docs" {
		t.Errorf("unexpected link %+v", link)
	}
}

func TestParseReferenceLink(t *testing.T) {
	src := `* Slide

[the docs][Docs]

[docs]: https://example.com/docs
`
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	link, ok := doc.Slides[0].Body[0].(deck.Link)
	if !ok {
		t.Fatalf("expected Link, got %T", doc.Slides[0].Body[0])
	}
	if link.URL != "https://example.com/docs" {
		t.Errorf("reference should resolve case-insensitively, got %q", link.URL)
	}
	if len(doc.Slides[0].Body) != 1 {
		t.Errorf("definition line should produce no block, got %d blocks", len(doc.Slides[0].Body))
	}
}

func TestParseUnresolvedReference(t *testing.T) {
	_, err := Parse([]byte("* Slide\n\n[label][nowhere]\n"))
	if err == nil {
		t.Fatal("expected error for unresolved reference")
	}
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if !strings.Contains(perr.Msg, `unresolved link reference "nowhere"`) {
		t.Errorf("unexpected message %q", perr.Msg)
	}
}

func TestParseImplicitSlide(t *testing.T) {
	doc, err := Parse([]byte("orphan text before any heading\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.Slides) != 1 {
		t.Fatalf("expected implicit slide, got %d slides", len(doc.Slides))
	}
	if doc.Slides[0].Title != "" {
		t.Errorf("implicit slide should be untitled, got %q", doc.Slides[0].Title)
	}
	if len(doc.Slides[0].Body) != 1 {
		t.Errorf("expected 1 block, got %d", len(doc.Slides[0].Body))
	}
}

func TestParseCRLF(t *testing.T) {
	doc, err := Parse([]byte("* Slide\r\n\r\nHello.\r\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if p := doc.Slides[0].Body[0].(deck.Paragraph); p.Text != "Hello." {
		t.Errorf("CRLF input should normalize, got %q", p.Text)
	}
}

func TestParseEmpty(t *testing.T) {
	doc, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(doc.Slides) != 0 {
		t.Errorf("empty input should yield no slides, got %d", len(doc.Slides))
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "talk.deck")
	if err := os.WriteFile(path, []byte("* Opening\n\nHello.\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}
	if doc.Source != path {
		t.Errorf("expected Source %q, got %q", path, doc.Source)
	}
	if doc.Title != "Opening" {
		t.Errorf("expected title from first slide, got %q", doc.Title)
	}

	if _, err := ParseFile(filepath.Join(dir, "missing.deck")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestErrorString(t *testing.T) {
	err := &Error{Line: 7, Msg: "bad thing"}
	if got := err.Error(); got != "line 7: bad thing" {
		t.Errorf("unexpected error string %q", got)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	src := `* Intro

Welcome to the talk.

- one
- two
  - two a

> Short quote.
> -- Someone

` + "```go\nreturn nil\n```" + `

![pic](img/pic.png)

[home](https://example.com)

** Nested

More text here.

* Closing

Bye.
`
	doc, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	out := Format(doc)
	doc2, err := Parse(out)
	if err != nil {
		t.Fatalf("formatted output failed to parse: %v\n%s", err, out)
	}

	if len(doc2.Slides) != len(doc.Slides) {
		t.Fatalf("slide count changed after round trip: %d vs %d", len(doc.Slides), len(doc2.Slides))
	}
	if doc2.Slides[0].Title != "Intro" || doc2.Slides[1].Title != "Closing" {
		t.Errorf("titles changed after round trip")
	}
	if len(doc2.Slides[0].Body) != len(doc.Slides[0].Body) {
		t.Fatalf("block count changed: %d vs %d", len(doc.Slides[0].Body), len(doc2.Slides[0].Body))
	}
	list := doc2.Slides[0].Body[1].(deck.BulletList)
	if len(list.Items) != 2 || len(list.Items[1].Children) != 1 {
		t.Errorf("bullet nesting changed after round trip: %+v", list)
	}
	q := doc2.Slides[0].Body[2].(deck.Quote)
	if q.Attribution != "Someone" {
		t.Errorf("attribution lost after round trip: %+v", q)
	}
	if len(doc2.Slides[0].Children) != 1 || doc2.Slides[0].Children[0].Title != "Nested" {
		t.Errorf("nested slide lost after round trip")
	}
}
