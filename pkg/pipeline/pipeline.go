// Package pipeline provides the parse → render pipeline for deckard.
//
// This package implements the deck export flow shared by the CLI and the
// server. By centralizing it, both entry points agree on option validation,
// artifact formats, and cache keys.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Parse: convert outline markup into a slide tree
//  2. Render: serialize the tree into one artifact per requested format
//
// Parsing is cheap and never cached; rendered artifacts are cached under
// keys derived from the deck content hash and the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Formats: []string{"html", "svg"}}
//	result, err := runner.Export(ctx, src, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html := result.Artifacts["html"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/halvard/deckard/pkg/cache"
	"github.com/halvard/deckard/pkg/deck"
	"github.com/halvard/deckard/pkg/errors"
	"github.com/halvard/deckard/pkg/render"
	"github.com/halvard/deckard/pkg/theme"
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatANSI = "ansi"
	FormatHTML = "html"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatANSI: true,
	FormatHTML: true,
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// DefaultWidth is the default wrap width for text-oriented formats.
const DefaultWidth = render.DefaultWidth

// Options contains all configuration for the export pipeline.
type Options struct {
	// Formats are the artifact formats to produce.
	Formats []string `json:"formats,omitempty"`

	// Theme styles the ANSI format. Zero value means the default theme.
	Theme theme.Theme `json:"-"`

	// Width is the wrap width for text-oriented formats.
	Width int `json:"width,omitempty"`

	// BaseDir resolves relative image paths, normally the deck directory.
	BaseDir string `json:"base_dir,omitempty"`

	// Refresh bypasses the artifact cache.
	Refresh bool `json:"refresh,omitempty"`

	// Logger is used for stage progress. Defaults to a discard logger.
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the parsed slide tree.
	Document *deck.Document

	// DeckHash is the content hash of the deck source.
	DeckHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains counts and timing information.
	Stats Stats

	// CacheInfo tracks which artifacts came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	SlideCount    int
	FragmentCount int
	ParseTime     time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits per format.
type CacheInfo struct {
	// Hits maps each produced format to whether it came from cache.
	Hits map[string]bool
}

// AllHit reports whether every artifact came from cache.
func (c CacheInfo) AllHit() bool {
	if len(c.Hits) == 0 {
		return false
	}
	for _, hit := range c.Hits {
		if !hit {
			return false
		}
	}
	return true
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: text, ansi, html, json, dot, svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Theme.Name == "" {
		o.Theme = theme.Default()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Theme:  o.Theme.Name,
		Width:  o.Width,
	}
}

// renderOptions converts pipeline options into renderer options.
func (o *Options) renderOptions() render.Options {
	return render.Options{
		Width:   o.Width,
		Theme:   o.Theme,
		BaseDir: o.BaseDir,
		Logger:  o.Logger,
	}
}
