package sink

import (
	"fmt"
	"html"
	"strings"

	"github.com/halvard/deckard/pkg/deck"
)

// HTML serializes a deck as a standalone HTML document. Nested slides become
// nested <section> elements, so the structure survives for downstream
// presentation frameworks that expect vertical stacks.
func HTML(doc *deck.Document) []byte {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	fmt.Fprintf(&b, "<meta charset=\"utf-8\">\n<title>%s</title>\n", html.EscapeString(doc.Title))
	b.WriteString("</head>\n<body>\n")
	writeHTMLNodes(&b, doc.Slides, 1)
	b.WriteString("</body>\n</html>\n")
	return []byte(b.String())
}

// HTMLFragment serializes a single slide as an HTML fragment, as served by
// the deck server. Only blocks up to the revealed fragment count appear.
func HTMLFragment(node *deck.SlideNode, fragment int) []byte {
	var b strings.Builder
	b.WriteString("<section>\n")
	writeHTMLSlide(&b, node, fragment, 1)
	b.WriteString("</section>\n")
	return []byte(b.String())
}

func writeHTMLNodes(b *strings.Builder, nodes []*deck.SlideNode, indent int) {
	pad := strings.Repeat("  ", indent)
	for _, n := range nodes {
		b.WriteString(pad + "<section>\n")
		writeHTMLSlide(b, n, n.FragmentCount(), indent+1)
		writeHTMLNodes(b, n.Children, indent+1)
		b.WriteString(pad + "</section>\n")
	}
}

func writeHTMLSlide(b *strings.Builder, n *deck.SlideNode, fragment, indent int) {
	pad := strings.Repeat("  ", indent)
	if n.Title != "" {
		fmt.Fprintf(b, "%s<h%d>%s</h%d>\n", pad, min(n.Depth+1, 6), html.EscapeString(n.Title), min(n.Depth+1, 6))
	}

	budget := fragment
	for _, block := range n.Body {
		if budget <= 0 {
			break
		}
		writeHTMLBlock(b, block, &budget, pad)
	}
}

func writeHTMLBlock(b *strings.Builder, block deck.Block, budget *int, pad string) {
	switch v := block.(type) {
	case deck.Paragraph:
		*budget--
		fmt.Fprintf(b, "%s<p>%s</p>\n", pad, html.EscapeString(v.Text))

	case deck.BulletList:
		reveal := *budget
		if reveal > len(v.Items) {
			reveal = len(v.Items)
		}
		*budget -= reveal
		b.WriteString(pad + "<ul>\n")
		writeHTMLItems(b, v.Items[:reveal], pad+"  ")
		b.WriteString(pad + "</ul>\n")

	case deck.Quote:
		*budget--
		fmt.Fprintf(b, "%s<blockquote>%s", pad, html.EscapeString(v.Text))
		if v.Attribution != "" {
			fmt.Fprintf(b, "<footer>%s</footer>", html.EscapeString(v.Attribution))
		}
		b.WriteString("</blockquote>\n")

	case deck.Code:
		*budget--
		class := ""
		if v.Lang != "" {
			class = fmt.Sprintf(" class=\"language-%s\"", html.EscapeString(v.Lang))
		}
		fmt.Fprintf(b, "%s<pre><code%s>%s</code></pre>\n", pad, class, html.EscapeString(v.Text))

	case deck.Image:
		*budget--
		fmt.Fprintf(b, "%s<img src=%q alt=%q>\n", pad, v.Path, v.Alt)

	case deck.Link:
		*budget--
		label := v.Label
		if label == "" {
			label = v.URL
		}
		fmt.Fprintf(b, "%s<p><a href=%q>%s</a></p>\n", pad, v.URL, html.EscapeString(label))

	default:
		*budget--
	}
}

func writeHTMLItems(b *strings.Builder, items []deck.BulletItem, pad string) {
	for _, item := range items {
		fmt.Fprintf(b, "%s<li>%s", pad, html.EscapeString(item.Text))
		if len(item.Children) > 0 {
			b.WriteString("\n" + pad + "  <ul>\n")
			writeHTMLItems(b, item.Children, pad+"    ")
			b.WriteString(pad + "  </ul>\n" + pad)
		}
		b.WriteString("</li>\n")
	}
}
