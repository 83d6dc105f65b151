package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/timeline/pkg/cache"
	"github.com/matzehuels/timeline/pkg/config"
	tlio "github.com/matzehuels/timeline/pkg/io"
	"github.com/matzehuels/timeline/pkg/observability"
	"github.com/matzehuels/timeline/pkg/render/sink"
	"github.com/matzehuels/timeline/pkg/timeline"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		ID:        uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	logger := opts.Logger.With("run", result.ID[:8])

	// Stage 1: Load
	loadStart := time.Now()
	records, loadHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Records = records
	result.CacheInfo.LoadHit = loadHit

	seq, err := timeline.Build(records)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Events = seq
	result.Stats.Events = len(seq)
	result.Stats.LoadTime = time.Since(loadStart)

	logger.Info("loaded events",
		"events", len(seq),
		"cached", loadHit,
		"duration", result.Stats.LoadTime)

	// Cached artifacts skip layout entirely.
	recordsHash := cache.HashValue(seq.Records())
	if artifacts, ok := r.cachedArtifacts(ctx, recordsHash, opts); ok {
		result.Artifacts = artifacts
		result.CacheInfo.RenderHit = true
		logger.Info("served from cache", "formats", opts.Formats)
		return result, nil
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	scene, err := r.Layout(ctx, seq, *opts.Config)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Scene = scene
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.Measurements = scene.Result.Measurements
	result.Stats.Swapped = scene.Result.Swapped()
	result.Stats.Unresolved = scene.Result.Unresolved()

	logger.Info("computed layout",
		"events", len(seq),
		"swapped", result.Stats.Swapped,
		"unresolved", result.Stats.Unresolved,
		"duration", result.Stats.LayoutTime)
	if result.Stats.Unresolved > 0 {
		logger.Warn("some labels still overlap", "count", result.Stats.Unresolved)
	}

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, err := r.Render(ctx, scene, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(recordsHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		} else {
			logger.Debug("cache write failed", "format", format, "err", err)
		}
	}

	logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo decodes the input events with caching and returns
// cache hit info. Records supplied directly are returned as is.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) ([]timeline.Record, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLoad(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, opts.Source, string(opts.Format))
	start := time.Now()

	records, hit, err := r.load(ctx, opts)
	if err == nil && opts.SkipIncomplete {
		before := len(records)
		records = tlio.Clean(records)
		if dropped := before - len(records); dropped > 0 {
			opts.Logger.Debug("skipped incomplete records", "count", dropped)
		}
	}

	hooks.OnLoadComplete(ctx, opts.Source, len(records), time.Since(start), err)
	return records, hit, err
}

func (r *Runner) load(ctx context.Context, opts Options) ([]timeline.Record, bool, error) {
	if opts.Input == nil {
		return opts.Records, false, nil
	}

	cacheKey := r.Keyer.RecordsKey(cache.Hash(opts.Input), string(opts.Format))
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var records []timeline.Record
			if err := json.Unmarshal(data, &records); err == nil {
				observability.Cache().OnCacheHit(ctx, "records")
				return records, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "records")
	}

	records, err := tlio.Read(bytes.NewReader(opts.Input), opts.Format, tlio.WithLogger(opts.Logger))
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(records); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLRecords); err == nil {
			observability.Cache().OnCacheSet(ctx, "records", len(data))
		}
	}
	return records, false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache hit info.
func (r *Runner) Load(ctx context.Context, opts Options) ([]timeline.Record, error) {
	records, _, err := r.LoadWithCacheInfo(ctx, opts)
	return records, err
}

// Layout maps seq onto the page and resolves label collisions.
func (r *Runner) Layout(ctx context.Context, seq timeline.Sequence, cfg config.Config) (*sink.Scene, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, len(seq))
	start := time.Now()

	scene, err := sink.NewScene(seq, cfg)

	unresolved := 0
	if scene != nil {
		unresolved = scene.Result.Unresolved()
	}
	hooks.OnLayoutComplete(ctx, len(seq), unresolved, time.Since(start), err)
	return scene, err
}

// Render draws scene in every requested format.
func (r *Runner) Render(ctx context.Context, scene *sink.Scene, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	artifacts, err := Render(scene, opts)

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, err
}

// cachedArtifacts returns every requested format from the cache, or
// false if any one of them is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, recordsHash string, opts Options) (map[string][]byte, bool) {
	if opts.Refresh {
		return nil, false
	}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(recordsHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			return nil, false
		}
		artifacts[format] = data
	}
	observability.Cache().OnCacheHit(ctx, "artifact")
	return artifacts, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
