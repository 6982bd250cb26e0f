package sink

import (
	"fmt"
	"strings"

	"github.com/halvard/deckard/pkg/deck"
	"github.com/halvard/deckard/pkg/render"
)

// Text serializes a deck as unstyled plain text, one slide per section.
func Text(doc *deck.Document) []byte {
	var b strings.Builder
	doc.Walk(func(n *deck.SlideNode, p deck.Path) {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		writeTextSlide(&b, n, p)
	})
	return []byte(b.String())
}

func writeTextSlide(b *strings.Builder, n *deck.SlideNode, p deck.Path) {
	title := n.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(b, "%s %s [%s]\n", strings.Repeat("#", n.Depth+1), title, p)

	for _, block := range n.Body {
		b.WriteString("\n")
		writeTextBlock(b, block)
	}
}

func writeTextBlock(b *strings.Builder, block deck.Block) {
	switch v := block.(type) {
	case deck.Paragraph:
		b.WriteString(v.Text + "\n")
	case deck.BulletList:
		writeTextItems(b, v.Items, 0)
	case deck.Quote:
		for _, line := range strings.Split(v.Text, "\n") {
			b.WriteString("> " + line + "\n")
		}
		if v.Attribution != "" {
			b.WriteString("> -- " + v.Attribution + "\n")
		}
	case deck.Code:
		lang := v.Lang
		if lang == "" {
			lang = "text"
		}
		fmt.Fprintf(b, "[code:%s]\n%s\n", lang, v.Text)
	case deck.Image:
		fmt.Fprintf(b, "[image: %s]\n", v.Path)
	case deck.Link:
		label := v.Label
		if label == "" {
			label = v.URL
		}
		fmt.Fprintf(b, "%s <%s>\n", label, v.URL)
	}
}

func writeTextItems(b *strings.Builder, items []deck.BulletItem, level int) {
	indent := strings.Repeat("  ", level)
	for _, item := range items {
		b.WriteString(indent + "- " + item.Text + "\n")
		writeTextItems(b, item.Children, level+1)
	}
}

// ANSI serializes a deck as styled terminal text using the live renderer,
// slides separated by a dim rule. Useful for piping a deck through a pager.
func ANSI(doc *deck.Document, opts render.Options) []byte {
	var parts []string
	doc.Walk(func(n *deck.SlideNode, p deck.Path) {
		frame := render.Render(n, n.FragmentCount(), opts)
		parts = append(parts, frame.String())
	})
	rule := strings.Repeat("─", 40)
	return []byte(strings.Join(parts, "\n\n"+rule+"\n\n") + "\n")
}
