package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/timeline/pkg/axis"
	"github.com/matzehuels/timeline/pkg/config"
	"github.com/matzehuels/timeline/pkg/errors"
)

const abcCSV = "name,date\nA,01.01.2024\nB,15.01.2024\nC,01.02.2024\n"

// testEnv points the cache and config directories at temporary paths and
// writes the three-event fixture. It returns the fixture path.
func testEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	input := filepath.Join(t.TempDir(), "events.csv")
	if err := os.WriteFile(input, []byte(abcCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return input
}

// runCLI executes the root command with args and returns what the command
// wrote to its output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	input := testEnv(t)
	base := filepath.Join(t.TempDir(), "tl")

	out, err := runCLI(t, "render", input, "-f", "svg,csv", "-o", base)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Rendered 3 events", "fresh", base + ".svg", base + ".csv"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output lacks %q:\n%s", want, out)
		}
	}

	svg, err := os.ReadFile(base + ".svg")
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Error("svg output should contain an <svg> element")
	}

	csv, err := os.ReadFile(base + ".csv")
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	want := "name,date,position\nA,01.01.2024,above\nB,15.01.2024,below\nC,01.02.2024,above\n"
	if string(csv) != want {
		t.Errorf("csv output = %q, want %q", csv, want)
	}

	// A second run is served from the cache and writes the same files.
	out, err = runCLI(t, "render", input, "-f", "svg,csv", "-o", base)
	if err != nil {
		t.Fatalf("cached render: %v", err)
	}
	if !strings.Contains(out, "cached") {
		t.Errorf("second render should report a cache hit:\n%s", out)
	}
	again, _ := os.ReadFile(base + ".svg")
	if !bytes.Equal(svg, again) {
		t.Error("cached svg differs from the first render")
	}
}

func TestRenderOverrides(t *testing.T) {
	input := testEnv(t)
	out := filepath.Join(t.TempDir(), "chart.png")

	if _, err := runCLI(t, "render", input, "-f", "png", "-o", out, "--dpi", "36", "--no-dates", "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("expected PNG output")
	}
}

func TestRenderErrors(t *testing.T) {
	input := testEnv(t)

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing file", []string{"render", filepath.Join(t.TempDir(), "nope.csv")}, errors.ErrCodeFileNotFound},
		{"unknown format", []string{"render", input, "-f", "pdf"}, errors.ErrCodeInvalidFormat},
		{"overwrites input", []string{"render", input, "-f", "csv", "--no-cache"}, errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}

	data, _ := os.ReadFile(input)
	if string(data) != abcCSV {
		t.Error("input file must not be modified")
	}
}

func TestBandsCommand(t *testing.T) {
	input := testEnv(t)

	out, err := runCLI(t, "bands", input, "--json")
	if err != nil {
		t.Fatalf("bands: %v", err)
	}
	var bands []axis.MonthBand
	if err := json.Unmarshal([]byte(out), &bands); err != nil {
		t.Fatalf("decode bands: %v\n%s", err, out)
	}
	if len(bands) != 2 {
		t.Fatalf("got %d bands, want 2", len(bands))
	}
	if bands[0].Month.Month() != time.January || bands[1].Month.Month() != time.February {
		t.Errorf("bands = %v, want January and February", bands)
	}

	out, err = runCLI(t, "bands", input)
	if err != nil {
		t.Fatalf("bands: %v", err)
	}
	for _, month := range []string{"Jan 2024", "Feb 2024"} {
		if !strings.Contains(out, month) {
			t.Errorf("table should list %q:\n%s", month, out)
		}
	}
}

func TestInspectPlain(t *testing.T) {
	input := testEnv(t)

	out, err := runCLI(t, "inspect", input, "--plain")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	for _, want := range []string{"Event", "01.02.2024", "3 events", "unresolved"} {
		if !strings.Contains(out, want) {
			t.Errorf("inspect output should contain %q:\n%s", want, out)
		}
	}
}

func TestConfigInitAndShow(t *testing.T) {
	testEnv(t)

	if _, err := runCLI(t, "config", "init", "--format", "toml"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	path, _ := defaultConfigPath(config.FormatTOML)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	_, err := runCLI(t, "config", "init", "--format", "toml")
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("second init error = %v, want INVALID_PATH", err)
	}
	if _, err := runCLI(t, "config", "init", "--format", "toml", "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}

	out, err := runCLI(t, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	cfg, err := config.Parse([]byte(out), config.FormatJSON)
	if err != nil {
		t.Fatalf("parse shown config: %v", err)
	}
	def := config.Default()
	if cfg.Dimensions != def.Dimensions || cfg.Colors != def.Colors {
		t.Errorf("shown config differs from defaults")
	}

	out, err = runCLI(t, "config", "show", "--format", "yaml")
	if err != nil {
		t.Fatalf("config show yaml: %v", err)
	}
	if !strings.Contains(out, "colors:") {
		t.Errorf("yaml output should contain a colors section:\n%s", out)
	}
}

func TestConfigInitPath(t *testing.T) {
	testEnv(t)

	_, err := runCLI(t, "config", "init", "--path", filepath.Join(t.TempDir(), "tl.ini"))
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want INVALID_FORMAT", err)
	}

	path := filepath.Join(t.TempDir(), "nested", "tl.yaml")
	if _, err := runCLI(t, "config", "init", "--path", path); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := config.Load(path); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	testEnv(t)
	logger := log.New(io.Discard)

	cfg, err := loadConfig("", logger)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg != config.Default() {
		t.Error("no config file should give defaults")
	}

	cfg, err = loadConfig(filepath.Join(t.TempDir(), "missing.json"), logger)
	if err != nil || cfg != config.Default() {
		t.Errorf("missing explicit file should fall back to defaults, got err %v", err)
	}

	dir, _ := configDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	yamlCfg := "colors:\n  above_items: \"#010203\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yamlCfg), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadConfig("", logger)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Colors.AboveItems != "#010203" {
		t.Errorf("AboveItems = %q, want value from config.yaml", cfg.Colors.AboveItems)
	}
}

func TestCacheCommands(t *testing.T) {
	input := testEnv(t)

	out, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	dir, _ := cacheDir()
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache path = %q, want %q", out, dir)
	}

	if _, err := runCLI(t, "render", input, "-o", filepath.Join(t.TempDir(), "tl.svg")); err != nil {
		t.Fatalf("render: %v", err)
	}
	if _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	var left int
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			left++
		}
		return nil
	})
	if left != 0 {
		t.Errorf("%d files left after cache clear", left)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := runCLI(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion: %v", err)
	}
	if !strings.Contains(out, "timeline") {
		t.Error("bash completion should mention the command name")
	}
}
