package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/halvard/deckard/pkg/deck"
	"github.com/halvard/deckard/pkg/parse"
)

// importCommand creates the import command, converting Markdown into deck
// outline markup.
func (c *CLI) importCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "import <markdown-file>",
		Short: "Convert a Markdown file into deck outline markup",
		Long: `Import reads a Markdown document and writes the equivalent deck file.

Headings become slides (nesting follows heading level), lists become
bullets, fenced code blocks, blockquotes, and images carry over. The
result is canonical outline markup ready for "deckard present".

Examples:
  deckard import notes.md
  deckard import notes.md -o talk.deck`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output deck file (default: <name>.deck)")

	return cmd
}

func (c *CLI) runImport(path, output string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read markdown: %w", err)
	}

	doc, err := parse.ParseMarkdown(src)
	if err != nil {
		return fmt.Errorf("parse markdown: %w", err)
	}
	if doc.SlideCount() == 0 {
		return fmt.Errorf("%s contains no convertible content", path)
	}

	if output == "" {
		output = strings.TrimSuffix(path, filepath.Ext(path)) + ".deck"
	}
	if err := os.WriteFile(output, parse.Format(doc), 0o644); err != nil {
		return fmt.Errorf("write deck: %w", err)
	}

	fragments := 0
	doc.Walk(func(n *deck.SlideNode, _ deck.Path) {
		fragments += n.FragmentCount()
	})

	printSuccess("Imported %s", filepath.Base(path))
	printStats(doc.SlideCount(), fragments, false)
	printFile(output)
	printNextStep("Present it", fmt.Sprintf("deckard present %s", output))

	return nil
}
