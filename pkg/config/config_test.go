package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/render/layout"
)

func TestDefaultLayoutMatchesEngineDefaults(t *testing.T) {
	got := Default().Layout()
	if want := layout.DefaultConfig(); got != want {
		t.Errorf("Default().Layout() = %+v, want %+v", got, want)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
	}{
		{"json", FormatJSON, `{"colors": {"above_items": "#1ABC9C"}, "visual": {"show_dates": false}, "layout": {"max_attempts": 4}}`},
		{"toml", FormatTOML, "[colors]\nabove_items = \"#1ABC9C\"\n\n[visual]\nshow_dates = false\n\n[layout]\nmax_attempts = 4\n"},
		{"yaml", FormatYAML, "colors:\n  above_items: \"#1ABC9C\"\nvisual:\n  show_dates: false\nlayout:\n  max_attempts: 4\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Parse() error: %v", err)
			}
			if cfg.Colors.AboveItems != "#1ABC9C" {
				t.Errorf("AboveItems = %q, want #1ABC9C", cfg.Colors.AboveItems)
			}
			if cfg.Visual.ShowDates {
				t.Error("ShowDates = true, want false")
			}
			if cfg.Engine.MaxAttempts != 4 {
				t.Errorf("MaxAttempts = %d, want 4", cfg.Engine.MaxAttempts)
			}
			// untouched keys keep defaults
			def := Default()
			if cfg.Colors.BelowItems != def.Colors.BelowItems {
				t.Errorf("BelowItems = %q, want default %q", cfg.Colors.BelowItems, def.Colors.BelowItems)
			}
			if cfg.Dimensions != def.Dimensions {
				t.Errorf("Dimensions = %+v, want defaults", cfg.Dimensions)
			}
			if cfg.Engine.SwapAfter != def.Engine.SwapAfter {
				t.Errorf("SwapAfter = %d, want %d", cfg.Engine.SwapAfter, def.Engine.SwapAfter)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
		code   errors.Code
	}{
		{"malformed json", FormatJSON, `{"colors": `, errors.ErrCodeInvalidConfig},
		{"bad color", FormatJSON, `{"colors": {"text": "blue"}}`, errors.ErrCodeInvalidConfig},
		{"zero width", FormatYAML, "dimensions:\n  width: 0\n", errors.ErrCodeInvalidConfig},
		{"margins eat plot", FormatJSON, `{"dimensions": {"width": 2}}`, errors.ErrCodeInvalidConfig},
		{"bad alpha", FormatTOML, "[visual]\nconnector_line_alpha = 1.5\n", errors.ErrCodeInvalidConfig},
		{"bad date format", FormatJSON, `{"visual": {"date_format_display": "%Q"}}`, errors.ErrCodeInvalidConfig},
		{"bad engine", FormatJSON, `{"layout": {"max_attempts": 0}}`, errors.ErrCodeInvalidConfig},
		{"unknown format", Format("ini"), ``, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.format)
			if err == nil {
				t.Fatal("Parse() expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v (%v)", got, tt.code, err)
			}
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Colors.AboveItems = "#112233"
	cfg.Fonts.LabelBold = true
	cfg.Visual.VerticalSpacing = 1.2
	cfg.Engine.SwapAfter = 0

	for _, name := range []string{"c.json", "c.toml", "c.yaml", "nested/dir/c.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := cfg.Save(path); err != nil {
				t.Fatalf("Save() error: %v", err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if !reflect.DeepEqual(got, cfg) {
				t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, cfg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	_, err := Load(path)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want FILE_NOT_FOUND", err)
	}

	cfg, err := LoadOrDefault(path, nil)
	if err != nil {
		t.Fatalf("LoadOrDefault() error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Error("LoadOrDefault() should return defaults for a missing file")
	}
}

func TestLoadOrDefaultReportsBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOrDefault(path, nil); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("LoadOrDefault() error = %v, want INVALID_CONFIG", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"config.json", FormatJSON, false},
		{"CONFIG.JSON", FormatJSON, false},
		{"a/b.toml", FormatTOML, false},
		{"x.yaml", FormatYAML, false},
		{"x.yml", FormatYAML, false},
		{"x.ini", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestLayoutDerivation(t *testing.T) {
	cfg := Default()
	cfg.Visual.VerticalSpacing = -1.0
	cfg.Visual.EventLabelOffset = 0.2
	cfg.Engine.ExtentMargin = 0.5

	lc := cfg.Layout()
	if lc.VerticalSpacing != -1.0 || lc.LabelOffset != 0.2 {
		t.Errorf("Layout() = %+v", lc)
	}
	if lc.DefaultExtent != 1.5 {
		t.Errorf("DefaultExtent = %v, want 1.5", lc.DefaultExtent)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
		a       uint8
		wantErr bool
	}{
		{"#FFFFFF", 255, 255, 255, 255, false},
		{"#2C3E50", 0x2C, 0x3E, 0x50, 255, false},
		{"#abc", 0xAA, 0xBB, 0xCC, 255, false},
		{"#11223380", 0x11, 0x22, 0x33, 0x80, false},
		{"none", 0, 0, 0, 0, false},
		{"2C3E50", 0, 0, 0, 0, true},
		{"#12345", 0, 0, 0, 0, true},
		{"#GGGGGG", 0, 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseColor(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if c.R != tt.r || c.G != tt.g || c.B != tt.b || c.A != tt.a {
				t.Errorf("ParseColor(%q) = %+v", tt.in, c)
			}
		})
	}
}

func TestFormatStrftime(t *testing.T) {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		pattern string
		want    string
		wantErr bool
	}{
		{"%d.%m.%Y", "05.03.2024", false},
		{"%Y-%m-%d", "2024-03-05", false},
		{"%b %d, %Y", "Mar 05, 2024", false},
		{"%A %e %B", "Tuesday  5 March", false},
		{"%Y%%", "2024%", false},
		{"Q1 %Y", "Q1 2024", false},
		{"%d %b, 2nd half", "05 Mar, 2nd half", false},
		{"Jan Mon PM MST 2006: %d", "Jan Mon PM MST 2006: 05", false},
		{"%Q", "", true},
		{"%", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := FormatStrftime(day, tt.pattern)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatStrftime(%q) error = %v, wantErr %v", tt.pattern, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatStrftime(%q) = %q, want %q", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestFormatDisplayDateKeepsLiterals(t *testing.T) {
	v := Visual{DateFormatDisplay: "%d %b, 2nd half"}
	if got := v.FormatDisplayDate(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)); got != "15 Mar, 2nd half" {
		t.Errorf("FormatDisplayDate() = %q", got)
	}
}

func TestFormatDisplayDateFallback(t *testing.T) {
	v := Visual{DateFormatDisplay: "%Q"}
	if got := v.FormatDisplayDate(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)); got != "02.01.2024" {
		t.Errorf("FormatDisplayDate() = %q, want fallback 02.01.2024", got)
	}
}
