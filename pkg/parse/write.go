package parse

import (
	"fmt"
	"strings"

	"github.com/halvard/deckard/pkg/deck"
)

// Format writes a Document back out as outline markup. The result parses to
// an equivalent tree, which makes it the canonical on-disk form for imported
// decks.
func Format(doc *deck.Document) []byte {
	var b strings.Builder
	writeNodes(&b, doc.Slides, 0)
	return []byte(b.String())
}

func writeNodes(b *strings.Builder, nodes []*deck.SlideNode, depth int) {
	for _, n := range nodes {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(b, "%s %s\n", strings.Repeat("*", depth+1), n.Title)
		for _, block := range n.Body {
			b.WriteString("\n")
			writeBlock(b, block)
		}
		writeNodes(b, n.Children, depth+1)
	}
}

func writeBlock(b *strings.Builder, block deck.Block) {
	switch v := block.(type) {
	case deck.Paragraph:
		b.WriteString(v.Text + "\n")
	case deck.BulletList:
		writeItems(b, v.Items, 0)
	case deck.Image:
		fmt.Fprintf(b, "![%s](%s)\n", v.Alt, v.Path)
	case deck.Link:
		fmt.Fprintf(b, "[%s](%s)\n", v.Label, v.URL)
	case deck.Quote:
		for _, line := range strings.Split(v.Text, "\n") {
			b.WriteString("> " + line + "\n")
		}
		if v.Attribution != "" {
			b.WriteString("> -- " + v.Attribution + "\n")
		}
	case deck.Code:
		b.WriteString("```" + v.Lang + "\n")
		if v.Text != "" {
			b.WriteString(v.Text + "\n")
		}
		b.WriteString("```\n")
	}
}

func writeItems(b *strings.Builder, items []deck.BulletItem, level int) {
	indent := strings.Repeat("  ", level)
	for _, item := range items {
		b.WriteString(indent + "- " + item.Text + "\n")
		writeItems(b, item.Children, level+1)
	}
}
