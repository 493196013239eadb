package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug log line. It implements all hook
// interfaces; register it with each setter.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

// Register installs h for every hook category.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
	SetProgressHooks(h)
}

func (h *LogHooks) OnBuildStart(_ context.Context, records int) {
	h.Logger.Debug("build start", "records", records)
}

func (h *LogHooks) OnBuildComplete(_ context.Context, nodes, edges int, d time.Duration, err error) {
	h.Logger.Debug("build done", "nodes", nodes, "edges", edges, "duration", d, "err", err)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, nodes int) {
	h.Logger.Debug("layout start", "nodes", nodes)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, columns int, d time.Duration, err error) {
	h.Logger.Debug("layout done", "columns", columns, "duration", d, "err", err)
}

func (h *LogHooks) OnRenderStart(_ context.Context, format string) {
	h.Logger.Debug("render start", "format", format)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	h.Logger.Debug("render done", "format", format, "bytes", size, "duration", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.Logger.Info("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnProgressChange(_ context.Context, questID string, completed bool) {
	h.Logger.Info("progress", "quest", questID, "completed", completed)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
	_ ProgressHooks = (*LogHooks)(nil)
)
