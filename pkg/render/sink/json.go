package sink

import (
	"encoding/json"

	"github.com/halvard/deckard/pkg/deck"
)

// DeckJSON is the JSON export shape of a document.
type DeckJSON struct {
	Title  string      `json:"title"`
	Slides []SlideJSON `json:"slides"`
}

// SlideJSON is one slide node in the JSON export.
type SlideJSON struct {
	Title     string      `json:"title,omitempty"`
	Path      string      `json:"path"`
	Depth     int         `json:"depth"`
	Fragments int         `json:"fragments"`
	Blocks    []BlockJSON `json:"blocks,omitempty"`
	Children  []SlideJSON `json:"children,omitempty"`
}

// BlockJSON is a flattened content block. Only the fields for the block's
// kind are populated.
type BlockJSON struct {
	Kind        deck.Kind  `json:"kind"`
	Text        string     `json:"text,omitempty"`
	Items       []ItemJSON `json:"items,omitempty"`
	Lang        string     `json:"lang,omitempty"`
	Path        string     `json:"path,omitempty"`
	Alt         string     `json:"alt,omitempty"`
	URL         string     `json:"url,omitempty"`
	Label       string     `json:"label,omitempty"`
	Attribution string     `json:"attribution,omitempty"`
}

// ItemJSON is one bullet item in the JSON export.
type ItemJSON struct {
	Text     string     `json:"text"`
	Children []ItemJSON `json:"children,omitempty"`
}

// JSON serializes a deck as an indented JSON tree.
func JSON(doc *deck.Document) ([]byte, error) {
	out := DeckJSON{Title: doc.Title, Slides: jsonNodes(doc.Slides, nil)}
	return json.MarshalIndent(out, "", "  ")
}

func jsonNodes(nodes []*deck.SlideNode, prefix deck.Path) []SlideJSON {
	var out []SlideJSON
	for i, n := range nodes {
		p := append(prefix.Clone(), i)
		out = append(out, SlideJSON{
			Title:     n.Title,
			Path:      p.String(),
			Depth:     n.Depth,
			Fragments: n.FragmentCount(),
			Blocks:    jsonBlocks(n.Body),
			Children:  jsonNodes(n.Children, p),
		})
	}
	return out
}

func jsonBlocks(blocks []deck.Block) []BlockJSON {
	var out []BlockJSON
	for _, block := range blocks {
		switch v := block.(type) {
		case deck.Paragraph:
			out = append(out, BlockJSON{Kind: v.Kind(), Text: v.Text})
		case deck.BulletList:
			out = append(out, BlockJSON{Kind: v.Kind(), Items: jsonItems(v.Items)})
		case deck.Quote:
			out = append(out, BlockJSON{Kind: v.Kind(), Text: v.Text, Attribution: v.Attribution})
		case deck.Code:
			out = append(out, BlockJSON{Kind: v.Kind(), Text: v.Text, Lang: v.Lang})
		case deck.Image:
			out = append(out, BlockJSON{Kind: v.Kind(), Path: v.Path, Alt: v.Alt})
		case deck.Link:
			out = append(out, BlockJSON{Kind: v.Kind(), URL: v.URL, Label: v.Label})
		}
	}
	return out
}

func jsonItems(items []deck.BulletItem) []ItemJSON {
	var out []ItemJSON
	for _, item := range items {
		out = append(out, ItemJSON{Text: item.Text, Children: jsonItems(item.Children)})
	}
	return out
}
