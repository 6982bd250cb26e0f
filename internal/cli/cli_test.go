package cli

import (
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/halvard/deckard/pkg/pipeline"
)

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()

	want := []string{"present", "check", "export", "import", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to text", "", []string{pipeline.FormatText}},
		{"single", "html", []string{"html"}},
		{"multiple", "html,json,svg", []string{"html", "json", "svg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestArtifactExt(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{pipeline.FormatText, "txt"},
		{pipeline.FormatANSI, "ansi"},
		{pipeline.FormatHTML, "html"},
		{pipeline.FormatJSON, "json"},
		{pipeline.FormatSVG, "svg"},
	}

	for _, tt := range tests {
		if got := artifactExt(tt.format); got != tt.want {
			t.Errorf("artifactExt(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}
