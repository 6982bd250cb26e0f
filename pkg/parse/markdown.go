package parse

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/halvard/deckard/pkg/deck"
)

// ParseMarkdown converts a Markdown document into a deck. Heading levels map
// to slide nesting (h1 is a top-level slide), lists become bullet blocks,
// fenced code and blockquotes carry over as-is. Unlike outline markup,
// Markdown is parsed forgivingly: skipped heading levels clamp instead of
// failing, since exported documents frequently jump from h1 to h3.
func ParseMarkdown(src []byte) (*deck.Document, error) {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	doc := &deck.Document{}
	var chain []*deck.SlideNode

	appendBlock := func(b deck.Block) {
		if len(chain) == 0 {
			node := &deck.SlideNode{}
			doc.Slides = append(doc.Slides, node)
			chain = []*deck.SlideNode{node}
		}
		node := chain[len(chain)-1]
		node.Body = append(node.Body, b)
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			depth := node.Level - 1
			if depth > len(chain) {
				depth = len(chain)
			}
			slide := &deck.SlideNode{Title: nodeText(node, src), Depth: depth}
			if depth == 0 {
				doc.Slides = append(doc.Slides, slide)
			} else {
				parent := chain[depth-1]
				parent.Children = append(parent.Children, slide)
			}
			chain = append(chain[:depth], slide)

		case *ast.FencedCodeBlock:
			appendBlock(deck.Code{
				Lang: string(node.Language(src)),
				Text: strings.TrimRight(rawLines(node, src), "\n"),
			})

		case *ast.Blockquote:
			appendBlock(deck.Quote{Text: nodeText(node, src)})

		case *ast.List:
			appendBlock(deck.BulletList{Items: listItems(node, src)})

		case *ast.Paragraph:
			// A paragraph that is a single image becomes an Image block.
			if img, ok := soleImage(node); ok {
				appendBlock(deck.Image{
					Path: string(img.Destination),
					Alt:  nodeText(img, src),
				})
				continue
			}
			if t := nodeText(node, src); t != "" {
				appendBlock(deck.Paragraph{Text: t})
			}

		default:
			if t := nodeText(n, src); t != "" {
				appendBlock(deck.Paragraph{Text: t})
			}
		}
	}

	if len(doc.Slides) > 0 {
		doc.Title = doc.Slides[0].Title
	}
	return doc, nil
}

// listItems converts a goldmark list into bullet items, recursing into
// nested lists.
func listItems(list *ast.List, src []byte) []deck.BulletItem {
	var items []deck.BulletItem
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		item := deck.BulletItem{}
		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			if nested, ok := c.(*ast.List); ok {
				item.Children = append(item.Children, listItems(nested, src)...)
				continue
			}
			t := nodeText(c, src)
			if t == "" {
				continue
			}
			if item.Text != "" {
				item.Text += " "
			}
			item.Text += t
		}
		items = append(items, item)
	}
	return items
}

// soleImage reports whether the paragraph consists of exactly one image.
func soleImage(p *ast.Paragraph) (*ast.Image, bool) {
	img, ok := p.FirstChild().(*ast.Image)
	if !ok || p.FirstChild() != p.LastChild() {
		return nil, false
	}
	return img, true
}

// rawLines returns the verbatim source lines of a block node.
func rawLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}

// nodeText flattens the inline text content of a node.
func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.FirstChild() == nil {
		buf.WriteString(rawLines(n, src))
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
		default:
			buf.WriteString(nodeText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
