package sink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/halvard/deckard/pkg/deck"
)

// ToDOT converts a deck's slide tree to Graphviz DOT format. The outline
// diagram shows one box per slide, parent-to-child edges for vertical
// stacks, and index paths for jump targets.
func ToDOT(doc *deck.Document) string {
	var buf bytes.Buffer
	buf.WriteString("digraph deck {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	doc.Walk(func(n *deck.SlideNode, p deck.Path) {
		label := n.Title
		if label == "" {
			label = "(untitled)"
		}
		label = fmt.Sprintf("%s\n%s", label, p)
		fmt.Fprintf(&buf, "  %q [label=%q];\n", p.String(), label)
	})

	buf.WriteString("\n")
	doc.Walk(func(n *deck.SlideNode, p deck.Path) {
		if len(p) > 1 {
			parent := p[:len(p)-1]
			fmt.Fprintf(&buf, "  %q -> %q;\n", parent.String(), p.String())
		}
	})

	// Rank top-level slides in document order.
	if len(doc.Slides) > 1 {
		var roots []string
		for i := range doc.Slides {
			roots = append(roots, fmt.Sprintf("%q", deck.Path{i}.String()))
		}
		fmt.Fprintf(&buf, "\n  { rank=same; %s }\n", strings.Join(roots, "; "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT outline to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
