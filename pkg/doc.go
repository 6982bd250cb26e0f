// Package pkg provides the core libraries for Deckard slide presentation.
//
// # Overview
//
// Deckard turns plain-text outline files into terminal presentations and
// export artifacts. The pkg directory is organized into these areas:
//
//  1. [deck] - The slide tree model (nodes, blocks, paths, fragments)
//  2. [parse] - Outline markup and Markdown parsing, canonical formatting
//  3. [nav] - The navigation controller driving a presentation
//  4. [render] - Slide frame rendering and export sinks
//  5. [pipeline] - Orchestration (parse → render, with caching)
//  6. [cache], [session], [library], [theme] - Infrastructure
//
// # Architecture
//
// The typical data flow through Deckard:
//
//	Deck File (outline markup)
//	         ↓
//	parse.Parse → deck.Document
//	         ↓
//	nav.Controller (presenting) or pipeline.Runner (exporting)
//	         ↓
//	render.Render / render/sink artifacts
//
// The presenter holds a cursor of slide path plus revealed fragment count;
// every keypress moves the cursor and re-renders one frame. Exports render
// every slide fully revealed and cache the result by content hash.
package pkg
