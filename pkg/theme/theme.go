// Package theme defines the visual configuration for slide rendering.
//
// Themes are TOML files mapping the rendering roles to terminal colors:
//
//	name = "nord"
//	bullet = "•"
//
//	[colors]
//	title = "81"
//	text = "255"
//	dim = "240"
//	accent = "45"
//	quote = "109"
//	link = "75"
//	code = "223"
//
// Colors are lipgloss color strings: ANSI-256 indices or hex values.
// Fields omitted from a theme file fall back to the built-in default, so a
// theme only has to override what it changes.
package theme

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/halvard/deckard/pkg/errors"
)

// Theme is a named set of rendering colors and glyphs.
type Theme struct {
	Name   string `toml:"name"`
	Bullet string `toml:"bullet"` // glyph preceding revealed bullet items
	Colors Colors `toml:"colors"`

	// Highlight enables keyword highlighting inside code blocks for known
	// language tags. Unknown tags always render plain.
	Highlight bool `toml:"highlight"`
}

// Colors maps rendering roles to terminal colors.
type Colors struct {
	Title  string `toml:"title"`
	Text   string `toml:"text"`
	Dim    string `toml:"dim"`
	Accent string `toml:"accent"`
	Quote  string `toml:"quote"`
	Link   string `toml:"link"`
	Code   string `toml:"code"`
}

// Default returns the built-in theme.
func Default() Theme {
	return Theme{
		Name:      "default",
		Bullet:    "•",
		Highlight: true,
		Colors: Colors{
			Title:  "36",
			Text:   "255",
			Dim:    "240",
			Accent: "36",
			Quote:  "109",
			Link:   "75",
			Code:   "223",
		},
	}
}

// Load reads a theme file and merges it over the default theme.
// Unknown keys are rejected so typos do not silently fall back.
func Load(path string) (Theme, error) {
	t := Default()
	md, err := toml.DecodeFile(path, &t)
	if err != nil {
		return Theme{}, errors.Wrap(errors.ErrCodeInvalidTheme, err, "load theme %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Theme{}, errors.New(errors.ErrCodeInvalidTheme,
			"theme %s: unknown key %q", path, undecoded[0].String())
	}
	if t.Name == "" {
		t.Name = filepath.Base(path)
	}
	return t, nil
}

// LoadUser returns the user's configured theme: the explicit path when
// given, else ~/.config/deckard/theme.toml when present, else the default.
func LoadUser(explicit string) (Theme, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, err := userThemePath()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return Default(), nil
	}
	return Load(path)
}

// userThemePath returns the XDG config location of the user theme file.
func userThemePath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "deckard", "theme.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "deckard", "theme.toml"), nil
}
