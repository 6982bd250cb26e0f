// Package parse converts outline markup into a deck.Document.
//
// The format is line oriented:
//
//	* Slide title            heading, one star per nesting level
//	** Nested slide
//
//	- first point            bullets, two spaces of indent per level
//	  - nested point
//
//	> quoted text            quote block
//	> -- attribution
//
//	```go                    fenced code, verbatim until the closing fence
//	fmt.Println("hi")
//	```
//
//	![diagram](img/arch.png) image reference
//	[docs](https://...)      link
//	[docs][ref]              reference link, resolved against "[ref]: url"
//
// Everything else accumulates into paragraphs separated by blank lines.
// Parsing is a pure function of the input text: no asset files are touched,
// and a referenced image that does not exist is not a parse error.
package parse

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/halvard/deckard/pkg/deck"
)

var (
	headingRe = regexp.MustCompile(`^(\*+)\s+(.*)$`)
	bulletRe  = regexp.MustCompile(`^(\s*)-\s+(.*)$`)
	imageRe   = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)]+)\)\s*$`)
	linkRe    = regexp.MustCompile(`^\[([^\]]*)\]\(([^)]+)\)\s*$`)
	refLinkRe = regexp.MustCompile(`^\[([^\]]*)\]\[([^\]]+)\]\s*$`)
	refDefRe  = regexp.MustCompile(`^\[([^\]]+)\]:\s+(\S+)\s*$`)
	attribRe  = regexp.MustCompile(`^--\s*(.*)$`)
)

// ParseFile reads and parses a deck file. The document Source is set so
// renderers can resolve relative asset paths.
func ParseFile(path string) (*deck.Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(src)
	if err != nil {
		return nil, err
	}
	doc.Source = path
	if doc.Title == "" {
		doc.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return doc, nil
}

// Parse converts outline markup into a Document. It fails with a *Error on
// malformed heading nesting, an unterminated code fence, or a link reference
// with no matching definition.
func Parse(src []byte) (*deck.Document, error) {
	lines := strings.Split(strings.ReplaceAll(string(src), "\r\n", "\n"), "\n")

	p := &parser{
		lines: lines,
		doc:   &deck.Document{},
		refs:  collectRefs(lines),
	}
	if err := p.run(); err != nil {
		return nil, err
	}
	if p.doc.Title == "" && len(p.doc.Slides) > 0 {
		p.doc.Title = p.doc.Slides[0].Title
	}
	return p.doc, nil
}

// collectRefs gathers "[ref]: url" definitions from anywhere in the source.
// Definitions may appear before or after their use sites.
func collectRefs(lines []string) map[string]string {
	refs := make(map[string]string)
	for _, line := range lines {
		if m := refDefRe.FindStringSubmatch(line); m != nil {
			refs[strings.ToLower(m[1])] = m[2]
		}
	}
	return refs
}

type parser struct {
	lines []string
	pos   int // index into lines
	doc   *deck.Document
	refs  map[string]string

	// chain is the stack of open nodes, chain[d] holding the current node
	// at depth d. Blocks attach to the deepest entry.
	chain []*deck.SlideNode

	// para accumulates paragraph lines until a blank line or block boundary.
	para []string
}

func (p *parser) run() error {
	for p.pos < len(p.lines) {
		line := p.lines[p.pos]

		switch {
		case strings.TrimSpace(line) == "":
			p.flushPara()
			p.pos++

		case headingRe.MatchString(line):
			if err := p.heading(line); err != nil {
				return err
			}
			p.pos++

		case strings.HasPrefix(line, "```"):
			if err := p.codeFence(line); err != nil {
				return err
			}

		case strings.HasPrefix(line, ">"):
			p.quote()

		case bulletRe.MatchString(line):
			p.bullets()

		case imageRe.MatchString(line):
			p.flushPara()
			m := imageRe.FindStringSubmatch(line)
			p.appendBlock(deck.Image{Alt: m[1], Path: m[2]})
			p.pos++

		case linkRe.MatchString(line):
			p.flushPara()
			m := linkRe.FindStringSubmatch(line)
			p.appendBlock(deck.Link{Label: m[1], URL: m[2]})
			p.pos++

		case refLinkRe.MatchString(line):
			p.flushPara()
			m := refLinkRe.FindStringSubmatch(line)
			url, ok := p.refs[strings.ToLower(m[2])]
			if !ok {
				return errorf(p.pos+1, "unresolved link reference %q", m[2])
			}
			p.appendBlock(deck.Link{Label: m[1], URL: url})
			p.pos++

		case refDefRe.MatchString(line):
			// Definition lines carry no content of their own.
			p.flushPara()
			p.pos++

		default:
			p.para = append(p.para, strings.TrimSpace(line))
			p.pos++
		}
	}
	p.flushPara()
	return nil
}

// heading opens a new slide node. One star is depth 0; each extra star goes
// one level deeper. Jumping more than one level past the open chain is
// malformed nesting.
func (p *parser) heading(line string) error {
	p.flushPara()

	m := headingRe.FindStringSubmatch(line)
	depth := len(m[1]) - 1
	if depth > len(p.chain) {
		return errorf(p.pos+1, "heading nesting jumps to level %d with no level %d parent", depth+1, depth)
	}

	node := &deck.SlideNode{Title: strings.TrimSpace(m[2]), Depth: depth}
	if depth == 0 {
		p.doc.Slides = append(p.doc.Slides, node)
	} else {
		parent := p.chain[depth-1]
		parent.Children = append(parent.Children, node)
	}
	p.chain = append(p.chain[:depth], node)
	return nil
}

// codeFence consumes a fenced block verbatim. The opening line may carry a
// language tag; the fence must be closed before end of input.
func (p *parser) codeFence(line string) error {
	p.flushPara()

	start := p.pos
	lang := strings.TrimSpace(strings.TrimPrefix(line, "```"))
	p.pos++

	var body []string
	for p.pos < len(p.lines) {
		if strings.TrimSpace(p.lines[p.pos]) == "```" {
			p.pos++
			p.appendBlock(deck.Code{Lang: lang, Text: strings.Join(body, "\n")})
			return nil
		}
		body = append(body, p.lines[p.pos])
		p.pos++
	}
	return errorf(start+1, "unterminated code block")
}

// quote consumes consecutive "> " lines into one Quote block. A trailing
// "> -- name" line becomes the attribution.
func (p *parser) quote() {
	p.flushPara()

	var body []string
	attribution := ""
	for p.pos < len(p.lines) && strings.HasPrefix(p.lines[p.pos], ">") {
		text := strings.TrimPrefix(p.lines[p.pos], ">")
		text = strings.TrimPrefix(text, " ")
		if m := attribRe.FindStringSubmatch(text); m != nil {
			attribution = strings.TrimSpace(m[1])
		} else {
			body = append(body, text)
		}
		p.pos++
	}
	p.appendBlock(deck.Quote{
		Text:        strings.TrimSpace(strings.Join(body, "\n")),
		Attribution: attribution,
	})
}

// bullets consumes a run of "- " lines into one BulletList. Two spaces of
// indentation nest an item under the previous shallower item; over-indented
// lines clamp to one level deeper than their predecessor.
func (p *parser) bullets() {
	p.flushPara()

	type frame struct {
		items *[]deck.BulletItem
		level int
	}

	var root []deck.BulletItem
	stack := []frame{{items: &root, level: 0}}

	for p.pos < len(p.lines) {
		m := bulletRe.FindStringSubmatch(p.lines[p.pos])
		if m == nil {
			break
		}
		level := len(m[1]) / 2
		if max := stack[len(stack)-1].level + 1; level > max {
			level = max
		}

		for len(stack) > 1 && stack[len(stack)-1].level > level {
			stack = stack[:len(stack)-1]
		}
		if len(*stack[len(stack)-1].items) == 0 {
			// An indented item with no preceding parent stays at this level.
			level = stack[len(stack)-1].level
		}
		if stack[len(stack)-1].level < level {
			parentItems := stack[len(stack)-1].items
			last := &(*parentItems)[len(*parentItems)-1]
			stack = append(stack, frame{items: &last.Children, level: level})
		}

		items := stack[len(stack)-1].items
		*items = append(*items, deck.BulletItem{Text: strings.TrimSpace(m[2])})
		p.pos++
	}

	p.appendBlock(deck.BulletList{Items: root})
}

// flushPara closes the pending paragraph, if any.
func (p *parser) flushPara() {
	if len(p.para) == 0 {
		return
	}
	text := strings.TrimSpace(strings.Join(p.para, " "))
	p.para = nil
	if text != "" {
		p.appendBlock(deck.Paragraph{Text: text})
	}
}

// appendBlock attaches a block to the deepest open slide. Content before the
// first heading goes into an implicit untitled slide.
func (p *parser) appendBlock(b deck.Block) {
	if len(p.chain) == 0 {
		node := &deck.SlideNode{}
		p.doc.Slides = append(p.doc.Slides, node)
		p.chain = []*deck.SlideNode{node}
	}
	node := p.chain[len(p.chain)-1]
	node.Body = append(node.Body, b)
}
