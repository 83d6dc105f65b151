package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes pipeline and cache events to a logger at debug level.
// Failures are logged at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log through logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger.WithPrefix("trace")}
}

func (h *LogHooks) OnLoadStart(_ context.Context, source, format string) {
	h.logger.Debug("load start", "source", source, "format", format)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, source string, events int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("load failed", "source", source, "duration", d, "err", err)
		return
	}
	h.logger.Debug("load done", "source", source, "events", events, "duration", d)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, events int) {
	h.logger.Debug("layout start", "events", events)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, events, unresolved int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("layout failed", "events", events, "duration", d, "err", err)
		return
	}
	h.logger.Debug("layout done", "events", events, "unresolved", unresolved, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "formats", formats, "duration", d, "err", err)
		return
	}
	h.logger.Debug("render done", "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "kind", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "kind", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "kind", keyType, "bytes", size)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
)
