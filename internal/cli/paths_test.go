package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/timeline/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", customCache)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}
	if !strings.HasSuffix(dir, filepath.Join(".config", appName)) {
		t.Errorf("configDir() = %q, should end with .config/%s", dir, appName)
	}

	custom := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", custom)
	dir, err = configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}
	if want := filepath.Join(custom, appName); dir != want {
		t.Errorf("configDir() with XDG_CONFIG_HOME = %q, want %q", dir, want)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	custom := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", custom)

	tests := []struct {
		format config.Format
		want   string
	}{
		{config.FormatJSON, "config.json"},
		{config.FormatTOML, "config.toml"},
		{config.FormatYAML, "config.yaml"},
	}
	for _, tt := range tests {
		got, err := defaultConfigPath(tt.format)
		if err != nil {
			t.Fatalf("defaultConfigPath(%q) error: %v", tt.format, err)
		}
		if want := filepath.Join(custom, appName, tt.want); got != want {
			t.Errorf("defaultConfigPath(%q) = %q, want %q", tt.format, got, want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{"derived from input", "", "data/events.csv", "data/events"},
		{"format extension stripped", "out/tl.svg", "events.csv", "out/tl"},
		{"other extension kept", "out/tl.v2", "events.csv", "out/tl.v2"},
		{"no extension", "out/tl", "events.csv", "out/tl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestOutputPaths(t *testing.T) {
	got := outputPaths("chart.png", "events.csv", []string{"png"})
	if got["png"] != "chart.png" {
		t.Errorf("single format should use output verbatim, got %q", got["png"])
	}

	got = outputPaths("", "events.ics", []string{"svg", "json"})
	if got["svg"] != "events.svg" || got["json"] != "events.json" {
		t.Errorf("outputPaths() = %v", got)
	}

	got = outputPaths("out/tl.svg", "events.csv", []string{"svg", "png"})
	if got["svg"] != "out/tl.svg" || got["png"] != "out/tl.png" {
		t.Errorf("outputPaths() = %v", got)
	}
}
