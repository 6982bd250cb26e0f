package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/halvard/deckard/pkg/deck"
	"github.com/halvard/deckard/pkg/parse"
)

// checkCommand creates the check command, which validates deck files.
func (c *CLI) checkCommand() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "check <deck-file>...",
		Short: "Validate deck files and report markup errors",
		Long: `Check parses each deck file and reports markup errors with line numbers.

Errors include heading levels that skip a parent, unterminated code fences,
and reference links with no matching definition. The exit status is non-zero
when any file fails.

Examples:
  deckard check talk.deck
  deckard check decks/*.deck`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if err := c.checkDeck(path, quiet); err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d deck(s) failed", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only report failures")

	return cmd
}

func (c *CLI) checkDeck(path string, quiet bool) error {
	src, err := os.ReadFile(path)
	if err != nil {
		printError("%s: %v", path, err)
		return err
	}

	doc, err := parse.Parse(src)
	if err != nil {
		var perr *parse.Error
		if errors.As(err, &perr) {
			printError("%s:%d: %s", path, perr.Line, perr.Msg)
		} else {
			printError("%s: %v", path, err)
		}
		return err
	}

	if err := doc.Validate(); err != nil {
		printError("%s: %v", path, err)
		return err
	}

	if quiet {
		return nil
	}

	slides := doc.SlideCount()
	fragments := 0
	doc.Walk(func(n *deck.SlideNode, _ deck.Path) {
		fragments += n.FragmentCount()
	})

	printSuccess("%s", path)
	printStats(slides, fragments, false)
	return nil
}
