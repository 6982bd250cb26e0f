package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/halvard/deckard/pkg/cache"
	"github.com/halvard/deckard/pkg/deck"
	"github.com/halvard/deckard/pkg/errors"
	"github.com/halvard/deckard/pkg/observability"
	"github.com/halvard/deckard/pkg/parse"
	"github.com/halvard/deckard/pkg/render/sink"
)

// artifactTTL is how long rendered artifacts stay cached. Deck edits change
// the content hash, so stale entries only cost disk space, not correctness.
const artifactTTL = 7 * 24 * time.Hour

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Export runs the complete parse → render pipeline over raw deck source.
func (r *Runner) Export(ctx context.Context, src []byte, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
		CacheInfo: CacheInfo{Hits: make(map[string]bool)},
		DeckHash:  cache.Hash(src),
	}

	// Stage 1: Parse
	parseStart := time.Now()
	observability.Pipeline().OnParseStart(ctx, result.DeckHash)
	doc, err := parse.Parse(src)
	if err != nil {
		observability.Pipeline().OnParseComplete(ctx, result.DeckHash, 0, time.Since(parseStart), err)
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse deck")
	}
	result.Document = doc
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.SlideCount = doc.SlideCount()
	doc.Walk(func(n *deck.SlideNode, _ deck.Path) {
		result.Stats.FragmentCount += n.FragmentCount()
	})
	observability.Pipeline().OnParseComplete(ctx, result.DeckHash, result.Stats.SlideCount, result.Stats.ParseTime, nil)

	r.Logger.Info("parsed deck",
		"slides", result.Stats.SlideCount,
		"fragments", result.Stats.FragmentCount,
		"duration", result.Stats.ParseTime)

	// Stage 2: Render, one artifact per format
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	for _, format := range opts.Formats {
		data, hit, err := r.renderFormat(ctx, doc, result.DeckHash, format, opts)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
		result.CacheInfo.Hits[format] = hit
	}
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	r.Logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ExportFile runs the pipeline over a deck file, resolving assets against
// the file's directory unless the options override it.
func (r *Runner) ExportFile(ctx context.Context, path string, opts Options) (*Result, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if opts.BaseDir == "" {
		opts.BaseDir = filepath.Dir(path)
	}

	result, err := r.Export(ctx, src, opts)
	if err != nil {
		return nil, err
	}
	result.Document.Source = path
	if result.Document.Title == "" {
		result.Document.Title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return result, nil
}

// renderFormat produces one artifact, consulting the cache first.
func (r *Runner) renderFormat(ctx context.Context, doc *deck.Document, deckHash, format string, opts Options) ([]byte, bool, error) {
	key := r.Keyer.ArtifactKey(deckHash, opts.ArtifactKeyOpts(format))

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			r.Logger.Debug("artifact cache hit", "format", format)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	data, err := renderArtifact(doc, format, opts)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, artifactTTL); err != nil {
		// A broken cache should not fail the export.
		r.Logger.Warn("artifact cache write failed", "format", format, "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

// renderArtifact dispatches to the sink for one format.
func renderArtifact(doc *deck.Document, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatText:
		return sink.Text(doc), nil
	case FormatANSI:
		return sink.ANSI(doc, opts.renderOptions()), nil
	case FormatHTML:
		return sink.HTML(doc), nil
	case FormatJSON:
		return sink.JSON(doc)
	case FormatDOT:
		return []byte(sink.ToDOT(doc)), nil
	case FormatSVG:
		return sink.RenderSVG(sink.ToDOT(doc))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}
