package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/halvard/deckard/pkg/cache"
	"github.com/halvard/deckard/pkg/deck"
	"github.com/halvard/deckard/pkg/nav"
	"github.com/halvard/deckard/pkg/parse"
	"github.com/halvard/deckard/pkg/session"
	"github.com/halvard/deckard/pkg/theme"
)

// presentOpts holds the command-line flags for the present command.
type presentOpts struct {
	themePath string // explicit theme file, overrides the user theme
	slidePath string // starting slide path (e.g. "2.0")
	resume    bool   // restore the saved position for this deck
}

// presentCommand creates the present command, the interactive presenter.
func (c *CLI) presentCommand() *cobra.Command {
	opts := presentOpts{resume: true}

	cmd := &cobra.Command{
		Use:   "present <deck-file>",
		Short: "Present a deck in the terminal",
		Long: `Present runs the interactive presenter over a deck file.

Navigation:
  right/space/enter  advance one fragment or slide
  left/backspace     step back
  g                  jump to a slide path (e.g. 2.0)
  o                  toggle the outline view
  home/end           first/last slide
  q                  quit

The presenter remembers where you stopped. Restarting the same deck resumes
at the saved position unless the file changed or --no-resume is given.

Examples:
  deckard present talk.deck
  deckard present talk.deck --slide 2.1
  deckard present talk.deck --theme mytheme.toml --no-resume`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noResume, _ := cmd.Flags().GetBool("no-resume")
			opts.resume = !noResume
			return c.runPresent(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.themePath, "theme", "", "theme file (TOML)")
	cmd.Flags().StringVar(&opts.slidePath, "slide", "", "start at slide path (e.g. 2.0)")
	cmd.Flags().Bool("no-resume", false, "ignore any saved position")

	return cmd
}

func (c *CLI) runPresent(cmd *cobra.Command, path string, opts presentOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read deck: %w", err)
	}
	doc, err := parse.Parse(src)
	if err != nil {
		return fmt.Errorf("parse deck: %w", err)
	}
	doc.Source = path
	deckHash := cache.Hash(src)

	ctrl, err := nav.New(doc)
	if err != nil {
		return err
	}

	th, err := theme.LoadUser(opts.themePath)
	if err != nil {
		return fmt.Errorf("load theme: %w", err)
	}

	store, err := session.NewFileStore("")
	if err != nil {
		logger.Warnf("Session store unavailable: %v", err)
		store = nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	switch {
	case opts.slidePath != "":
		p, err := deck.ParsePath(opts.slidePath)
		if err != nil {
			return fmt.Errorf("invalid --slide path: %w", err)
		}
		if err := ctrl.JumpTo(p); err != nil {
			return err
		}
	case opts.resume && store != nil:
		sess, err := store.Get(ctx, absPath)
		if err == nil && sess != nil {
			if !sess.Matches(deckHash) {
				logger.Debug("Deck changed since last session, starting over")
			} else if err := ctrl.Restore(sess.Cursor); err != nil {
				logger.Debug("Saved position no longer valid, starting over")
			}
		}
	}

	model := NewPresenterModel(doc, ctrl, th, filepath.Dir(path))
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("presenter: %w", err)
	}

	if store != nil {
		sess := session.New(absPath, deckHash, ctrl.Cursor())
		if err := store.Put(ctx, sess); err != nil {
			logger.Warnf("Could not save session: %v", err)
		}
	}

	return nil
}
