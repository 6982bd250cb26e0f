package pipeline

import (
	"testing"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"ansi", false},
		{"html", false},
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"invalid", true},
		{"HTML", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"html", "json"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"html", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Empty options should pass: %v", err)
	}

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatText {
		t.Errorf("Formats should default to [text], got %v", opts.Formats)
	}
	if opts.Width != DefaultWidth {
		t.Errorf("Width should be %d, got %d", DefaultWidth, opts.Width)
	}
	if opts.Theme.Name == "" {
		t.Error("Theme should default to a named theme")
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Formats: []string{FormatJSON}, Width: 40}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalFormats := len(opts.Formats)
	originalWidth := opts.Width

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
	if opts.Width != originalWidth {
		t.Error("Width changed on second call")
	}
}

func TestOptionsRejectsInvalidFormat(t *testing.T) {
	opts := Options{Formats: []string{"pdf"}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("Unknown format should fail validation")
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Formats: []string{FormatHTML}, Width: 100}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	ko := opts.ArtifactKeyOpts(FormatHTML)
	if ko.Format != FormatHTML {
		t.Errorf("Format = %q, want %q", ko.Format, FormatHTML)
	}
	if ko.Width != 100 {
		t.Errorf("Width = %d, want 100", ko.Width)
	}
	if ko.Theme == "" {
		t.Error("Theme name should be carried into the cache key")
	}
}

func TestCacheInfoAllHit(t *testing.T) {
	tests := []struct {
		name string
		hits map[string]bool
		want bool
	}{
		{"empty", nil, false},
		{"all hit", map[string]bool{"html": true, "json": true}, true},
		{"partial", map[string]bool{"html": true, "json": false}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := CacheInfo{Hits: tt.hits}
			if got := info.AllHit(); got != tt.want {
				t.Errorf("AllHit() = %v, want %v", got, tt.want)
			}
		})
	}
}
