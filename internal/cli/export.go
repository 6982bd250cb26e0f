package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/halvard/deckard/pkg/pipeline"
	"github.com/halvard/deckard/pkg/theme"
)

// exportOpts holds the command-line flags for the export command.
type exportOpts struct {
	formats   string // comma-separated formats
	output    string // output directory
	width     int    // wrap width for text formats
	themePath string // theme file for the ansi format
	refresh   bool   // bypass the artifact cache
	noCache   bool   // disable caching entirely
	redisAddr string // redis cache backend
	stdout    bool   // write a single artifact to stdout
}

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	opts := exportOpts{width: pipeline.DefaultWidth}

	cmd := &cobra.Command{
		Use:   "export <deck-file>",
		Short: "Render a deck to text, ansi, html, json, dot, or svg",
		Long: `Export parses a deck file and renders it into one or more formats.

Artifacts are written next to the deck (or into --output) as
<deck-name>.<ext>. Rendered artifacts are cached by deck content, so
re-exporting an unchanged deck is instant; --refresh forces a re-render.

Formats:
  text   plain text, fully revealed
  ansi   styled terminal text
  html   standalone HTML document
  json   machine-readable slide tree
  dot    Graphviz outline of the slide tree
  svg    outline rendered through Graphviz

Examples:
  deckard export talk.deck
  deckard export talk.deck --format html,json -o dist/
  deckard export talk.deck --format text --stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "comma-separated formats (default text)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output directory (default: deck directory)")
	cmd.Flags().IntVarP(&opts.width, "width", "w", opts.width, "wrap width for text formats")
	cmd.Flags().StringVar(&opts.themePath, "theme", "", "theme file for the ansi format (TOML)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the artifact cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable artifact caching")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "redis address for the artifact cache (host:port)")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "write a single artifact to stdout")

	return cmd
}

func (c *CLI) runExport(cmd *cobra.Command, path string, opts exportOpts) error {
	ctx := cmd.Context()

	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}
	if opts.stdout && len(formats) != 1 {
		return fmt.Errorf("--stdout requires exactly one format")
	}

	th, err := theme.LoadUser(opts.themePath)
	if err != nil {
		return fmt.Errorf("load theme: %w", err)
	}

	runner, err := c.newRunner(ctx, opts.noCache, opts.redisAddr)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	defer runner.Cache.Close()

	prog := newProgress(c.Logger)
	result, err := runner.ExportFile(ctx, path, pipeline.Options{
		Formats: formats,
		Theme:   th,
		Width:   opts.width,
		Refresh: opts.refresh,
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Exported %d slides", result.Stats.SlideCount))

	if opts.stdout {
		_, err := os.Stdout.Write(result.Artifacts[formats[0]])
		return err
	}

	outDir := opts.output
	if outDir == "" {
		outDir = filepath.Dir(path)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	printSuccess("Exported %s", filepath.Base(path))
	printStats(result.Stats.SlideCount, result.Stats.FragmentCount, result.CacheInfo.AllHit())
	for _, format := range formats {
		out := filepath.Join(outDir, base+"."+artifactExt(format))
		if err := os.WriteFile(out, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		printFile(out)
	}
	printNextStep("Present it", fmt.Sprintf("deckard present %s", path))

	return nil
}

// artifactExt maps a format onto its file extension.
func artifactExt(format string) string {
	switch format {
	case pipeline.FormatText:
		return "txt"
	case pipeline.FormatANSI:
		return "ansi"
	default:
		return format
	}
}
