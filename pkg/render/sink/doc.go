// Package sink serializes decks into export formats.
//
// Every sink takes a parsed deck and produces one artifact: plain text,
// ANSI-styled text, standalone HTML, a JSON tree, or a Graphviz outline of
// the slide structure (DOT, renderable to SVG). Sinks always render slides
// fully revealed; progressive fragments only matter on the live surface.
package sink
