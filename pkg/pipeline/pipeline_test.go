package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/timeline/pkg/cache"
	"github.com/matzehuels/timeline/pkg/config"
	"github.com/matzehuels/timeline/pkg/errors"
	"github.com/matzehuels/timeline/pkg/observability"
	"github.com/matzehuels/timeline/pkg/timeline"
)

const abcCSV = "name,date\nA,01.01.2024\nB,15.01.2024\nC,01.02.2024\n"

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"csv", false},
		{"ics", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"svg", []string{"svg"}, false},
		{"svg,png", []string{"svg", "png"}, false},
		{" SVG , png,svg ", []string{"svg", "png"}, false},
		{"", nil, false},
		{"svg,pdf", nil, true},
	}

	for _, tt := range tests {
		got, err := ParseFormats(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFormats(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr {
			assert.Equal(t, tt.want, got, "ParseFormats(%q)", tt.in)
		}
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "image/svg+xml", ContentType(FormatSVG))
	assert.Equal(t, "image/png", ContentType(FormatPNG))
	assert.True(t, strings.HasPrefix(ContentType(FormatCSV), "text/csv"))
	assert.Equal(t, "application/octet-stream", ContentType("bin"))
}

func TestOptionsValidateForLoad(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		wantFormat string
		wantCode   errors.Code
	}{
		{"no events", Options{}, "", errors.ErrCodeInvalidSchema},
		{"format from source", Options{Source: "events.ics", Input: []byte{}}, "ics", ""},
		{"explicit format", Options{Input: []byte("[]"), Format: "json"}, "json", ""},
		{"unnamed input", Options{Input: []byte("[]")}, "", errors.ErrCodeInvalidFormat},
		{"unknown extension", Options{Source: "events.xlsx", Input: []byte{}}, "", errors.ErrCodeInvalidFormat},
		{"records only", Options{Records: []timeline.Record{}}, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			err := opts.ValidateForLoad()
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, errors.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, string(opts.Format))
			assert.NotNil(t, opts.Logger)
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Records: []timeline.Record{}}
	require.NoError(t, opts.ValidateAndSetDefaults())

	require.NotNil(t, opts.Config)
	assert.Equal(t, config.Default(), *opts.Config)
	assert.Equal(t, []string{FormatSVG}, opts.Formats)
	assert.Equal(t, config.Default().Dimensions.DPI, opts.DPI)
	assert.NotNil(t, opts.Logger)
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{Records: []timeline.Record{}, Formats: []string{"png"}, DPI: 72}
	require.NoError(t, opts.ValidateAndSetDefaults())
	first := opts
	require.NoError(t, opts.ValidateAndSetDefaults())

	assert.Equal(t, first.Formats, opts.Formats)
	assert.Equal(t, first.DPI, opts.DPI)
	assert.Same(t, first.Config, opts.Config)
}

func TestOptionsValidateForRenderErrors(t *testing.T) {
	bad := config.Default()
	bad.Dimensions.Width = 0

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"negative dpi", Options{DPI: -1}, errors.ErrCodeInvalidConfig},
		{"bad config", Options{Config: &bad}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForRender()
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Records: []timeline.Record{}, DPI: 150, Transparent: true, EmbedFonts: true}
	require.NoError(t, opts.ValidateAndSetDefaults())

	png := opts.ArtifactKeyOpts(FormatPNG)
	assert.Equal(t, 150.0, png.DPI)
	assert.True(t, png.Transparent)
	assert.False(t, png.EmbedFonts)

	svg := opts.ArtifactKeyOpts(FormatSVG)
	assert.Zero(t, svg.DPI)
	assert.True(t, svg.EmbedFonts)

	csv := opts.ArtifactKeyOpts(FormatCSV)
	assert.Equal(t, cache.ArtifactKeyOpts{Format: FormatCSV, ConfigHash: png.ConfigHash}, csv)
	assert.NotEmpty(t, csv.ConfigHash)
}

func TestExecuteABC(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Source:  "events.csv",
		Input:   []byte(abcCSV),
		Formats: []string{"svg", "json", "csv", "ics"},
	})
	require.NoError(t, err)

	_, err = uuid.Parse(res.ID)
	assert.NoError(t, err, "result id should be a uuid")

	assert.Equal(t, []string{"A", "B", "C"}, res.Events.Names())
	assert.Equal(t, []timeline.Lane{timeline.Above, timeline.Below, timeline.Above}, res.Events.Lanes())
	assert.Equal(t, 3, res.Stats.Events)
	assert.Zero(t, res.Stats.Unresolved)
	assert.Positive(t, res.Stats.Measurements)

	require.NotNil(t, res.Scene)
	assert.Len(t, res.Scene.Bands, 2)

	assert.Contains(t, string(res.Artifacts["svg"]), "<svg")
	assert.Contains(t, string(res.Artifacts["json"]), `"events"`)
	assert.Equal(t, "name,date,position\nA,01.01.2024,above\nB,15.01.2024,below\nC,01.02.2024,above\n",
		string(res.Artifacts["csv"]))
	assert.Contains(t, string(res.Artifacts["ics"]), "BEGIN:VCALENDAR")
	assert.False(t, res.CacheInfo.LoadHit)
	assert.False(t, res.CacheInfo.RenderHit)
}

func TestExecutePNG(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{
		Records: []timeline.Record{{Name: "Launch", Date: "01.03.2024"}},
		Formats: []string{"png"},
		DPI:     36,
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(res.Artifacts["png"], []byte("\x89PNG")))
}

func TestExecuteCaching(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(c, nil, nil)

	opts := func() Options {
		return Options{Source: "events.csv", Input: []byte(abcCSV), Formats: []string{"svg", "csv"}}
	}

	first, err := r.Execute(ctx, opts())
	require.NoError(t, err)
	assert.False(t, first.CacheInfo.LoadHit)
	assert.False(t, first.CacheInfo.RenderHit)

	second, err := r.Execute(ctx, opts())
	require.NoError(t, err)
	assert.True(t, second.CacheInfo.LoadHit)
	assert.True(t, second.CacheInfo.RenderHit)
	assert.Nil(t, second.Scene, "cached runs skip layout")
	assert.Equal(t, first.Artifacts, second.Artifacts)
	assert.NotEqual(t, first.ID, second.ID)

	refreshed := opts()
	refreshed.Refresh = true
	third, err := r.Execute(ctx, refreshed)
	require.NoError(t, err)
	assert.False(t, third.CacheInfo.LoadHit)
	assert.False(t, third.CacheInfo.RenderHit)
	assert.NotNil(t, third.Scene)
}

func TestExecuteConfigChangeMissesCache(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)
	r := NewRunner(c, nil, nil)

	_, err = r.Execute(ctx, Options{Source: "events.csv", Input: []byte(abcCSV)})
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Colors.AboveItems = "#112233"
	res, err := r.Execute(ctx, Options{Source: "events.csv", Input: []byte(abcCSV), Config: &cfg})
	require.NoError(t, err)
	assert.True(t, res.CacheInfo.LoadHit, "records do not depend on the config")
	assert.False(t, res.CacheInfo.RenderHit)
	assert.Contains(t, string(res.Artifacts["svg"]), "#112233")
}

func TestExecuteSkipIncomplete(t *testing.T) {
	records := []timeline.Record{
		{Name: "A", Date: "01.01.2024"},
		{Name: "", Date: "02.01.2024"},
		{Name: "C", Date: ""},
		{Name: "D", Date: "03.01.2024"},
	}
	r := NewRunner(nil, nil, nil)

	_, err := r.Execute(context.Background(), Options{Records: records})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidSchema))

	res, err := r.Execute(context.Background(), Options{Records: records, SkipIncomplete: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "D"}, res.Events.Names())
	assert.Len(t, res.Records, 2)
}

func TestExecuteInvalidDate(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{
		Records: []timeline.Record{{Name: "A", Date: "2024-01-01"}},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidDate))
}

func TestExecuteEmpty(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Records: []timeline.Record{}})
	require.NoError(t, err)
	assert.Zero(t, res.Stats.Events)
	assert.Contains(t, string(res.Artifacts["svg"]), "<svg")
}

func TestRenderUnsupported(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Records: []timeline.Record{}})
	require.NoError(t, err)

	_, err = Render(res.Scene, Options{Formats: []string{"pdf"}})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeUnsupported, errors.GetCode(err))
}

type countingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *countingHooks) record(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, name)
}

func (h *countingHooks) OnLoadStart(context.Context, string, string) { h.record("load") }
func (h *countingHooks) OnLayoutComplete(_ context.Context, events, _ int, _ time.Duration, _ error) {
	h.record("layout")
}
func (h *countingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.record("render")
}

func TestExecuteCallsHooks(t *testing.T) {
	hooks := &countingHooks{}
	observability.SetPipelineHooks(hooks)
	defer observability.Reset()

	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Source: "events.csv", Input: []byte(abcCSV)})
	require.NoError(t, err)

	assert.Equal(t, []string{"load", "layout", "render"}, hooks.events)
}
