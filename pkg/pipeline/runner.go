package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/questgraph/pkg/cache"
	"github.com/matzehuels/questgraph/pkg/dag"
	"github.com/matzehuels/questgraph/pkg/dag/transform"
	"github.com/matzehuels/questgraph/pkg/errors"
	"github.com/matzehuels/questgraph/pkg/graph"
	"github.com/matzehuels/questgraph/pkg/httputil"
	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/observability"
	"github.com/matzehuels/questgraph/pkg/quest"
	"github.com/matzehuels/questgraph/pkg/render"
	"github.com/matzehuels/questgraph/pkg/render/nodelink"
	"github.com/matzehuels/questgraph/pkg/render/svg"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Fetcher *httputil.Fetcher // used when the quest path is a URL
	Logger  *log.Logger
	TTL     time.Duration
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
		Cache:   c,
		Keyer:   keyer,
		Fetcher: httputil.NewFetcher(nil),
		Logger:  logger,
		TTL:     cache.DefaultTTL,
	}
}

// Execute runs load → build → layout → render.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	res, err := r.Prepare(ctx, opts)
	if err != nil {
		return nil, err
	}

	layoutStart := time.Now()
	l, hit, err := r.LayoutWithCacheInfo(ctx, res.Graph, res.QuestsHash, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	res.Layout = l
	res.Stats.LayoutTime = time.Since(layoutStart)
	res.CacheInfo.LayoutHit = hit

	r.Logger.Info("computed layout",
		"columns", len(l.Columns),
		"cached", hit,
		"duration", res.Stats.LayoutTime)

	renderStart := time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	res.Artifacts = artifacts
	res.Stats.RenderTime = time.Since(renderStart)
	res.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", res.Stats.RenderTime)

	return res, nil
}

// Prepare runs the uncached stages: it loads and filters the records and
// builds the graph. Layout and Artifacts of the returned result are empty.
func (r *Runner) Prepare(ctx context.Context, opts Options) (*Result, error) {
	res := &Result{}

	loadStart := time.Now()
	records, hash, err := r.Load(ctx, opts)
	if err != nil {
		return nil, err
	}
	res.Records = opts.Filter(records)
	res.QuestsHash = hash
	res.Stats.LoadTime = time.Since(loadStart)

	buildStart := time.Now()
	res.Graph, res.Report = r.Build(ctx, res.Records)
	res.Stats.BuildTime = time.Since(buildStart)
	res.Stats.NodeCount = res.Graph.NodeCount()
	res.Stats.EdgeCount = res.Graph.EdgeCount()

	r.Logger.Info("built quest graph",
		"nodes", res.Stats.NodeCount,
		"edges", res.Stats.EdgeCount,
		"duration", res.Stats.BuildTime)

	return res, nil
}

// Load returns the unfiltered records and the content hash identifying them.
// The quest path may be a local file or an http(s) URL.
func (r *Runner) Load(ctx context.Context, opts Options) ([]quest.Record, string, error) {
	if opts.Records != nil {
		data, err := json.Marshal(opts.Records)
		if err != nil {
			return nil, "", fmt.Errorf("hash records: %w", err)
		}
		return opts.Records, cache.Hash(data), nil
	}

	path := opts.QuestsPath
	if path == "" {
		path = DefaultQuestsPath
	}
	data, err := r.readQuests(ctx, path)
	if err != nil {
		return nil, "", err
	}
	records, err := quest.Read(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}
	return records, cache.Hash(data), nil
}

func (r *Runner) readQuests(ctx context.Context, path string) ([]byte, error) {
	if httputil.IsURL(path) {
		f := r.Fetcher
		if f == nil {
			f = httputil.NewFetcher(nil)
		}
		r.Logger.Debug("fetching quests", "url", path)
		return f.Fetch(ctx, path)
	}

	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "quest file %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Build turns records into a graph and logs what was dropped.
func (r *Runner) Build(ctx context.Context, records []quest.Record) (*dag.DAG, quest.BuildReport) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, len(records))
	start := time.Now()

	g, report := quest.BuildGraphWithReport(records)

	hooks.OnBuildComplete(ctx, g.NodeCount(), g.EdgeCount(), time.Since(start), nil)
	if !report.Clean() {
		r.Logger.Debug("dropped references",
			"skipped", report.SkippedRecords,
			"dangling", len(report.Dangling),
			"self", len(report.SelfRefs),
			"duplicates", report.DuplicateEdges,
			"overwritten", len(report.OverwrittenIDs))
	}
	return g, report
}

// LayoutWithCacheInfo computes the layout of g, consulting the cache first,
// and reports whether the result came from the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, g *dag.DAG, questsHash string, opts Options) (layout.Result, bool, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Result{}, false, err
	}

	key := r.Keyer.LayoutKey(questsHash, cache.LayoutKeyOpts{
		KappaOnly:     opts.KappaOnly,
		HideCompleted: opts.HideCompleted,
		CompletedHash: cache.HashIDs(opts.Completed.IDs()),
		Config:        opts.Config,
	})

	if !opts.Refresh {
		if l, ok := r.cachedLayout(ctx, key); ok {
			return l, true, nil
		}
	}

	l, err := r.ComputeLayout(ctx, g, opts)
	if err != nil {
		return layout.Result{}, false, err
	}

	if data, err := graph.MarshalLayout(l); err == nil {
		r.store(ctx, "layout", key, data)
	}
	return l, false, nil
}

func (r *Runner) cachedLayout(ctx context.Context, key string) (layout.Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
		return layout.Result{}, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return layout.Result{}, false
	}
	l, err := graph.UnmarshalLayout(data)
	if err != nil {
		r.Logger.Debug("discarding unreadable cached layout", "key", key, "error", err)
		return layout.Result{}, false
	}
	observability.Cache().OnCacheHit(ctx, "layout")
	return l, true
}

// ComputeLayout levels g and computes the layout without touching the cache.
func (r *Runner) ComputeLayout(ctx context.Context, g *dag.DAG, opts Options) (layout.Result, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, g.NodeCount())
	start := time.Now()

	levels, stuck := transform.Levels(dag.NodeIDs(g.Nodes()), g.Edges())
	if len(stuck) > 0 {
		r.Logger.Debug("cycle members placed in first column", "quests", stuck)
	}
	l, err := layout.Compute(g, levels, opts.Completed, opts.Config)

	hooks.OnLayoutComplete(ctx, len(l.Columns), time.Since(start), err)
	return l, err
}

// RenderWithCacheInfo renders every requested format of l and reports
// whether all of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l layout.Result, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	layoutData, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := !opts.Refresh
	for _, format := range opts.Formats {
		if !allCached {
			break
		}
		key := r.Keyer.ArtifactKey(layoutHash, r.artifactKeyOpts(format, opts))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(ctx, "artifact")
			allCached = false
			break
		}
		observability.Cache().OnCacheHit(ctx, "artifact")
		artifacts[format] = data
	}
	if allCached {
		return artifacts, true, nil
	}

	rendered, err := Render(ctx, l, opts)
	if err != nil {
		return nil, false, err
	}
	for format, data := range rendered {
		r.store(ctx, "artifact", r.Keyer.ArtifactKey(layoutHash, r.artifactKeyOpts(format, opts)), data)
	}
	return rendered, false, nil
}

func (r *Runner) artifactKeyOpts(format string, opts Options) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, Detailed: opts.Detailed}
}

func (r *Runner) store(ctx context.Context, keyType, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Render produces every format in opts.Formats from l.
func Render(ctx context.Context, l layout.Result, opts Options) (map[string][]byte, error) {
	hooks := observability.Pipeline()
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		hooks.OnRenderStart(ctx, format)
		start := time.Now()

		data, err := renderFormat(ctx, l, render.Format(format), opts)

		hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, l layout.Result, format render.Format, opts Options) ([]byte, error) {
	switch format {
	case render.FormatSVG:
		return svg.RenderSVG(l, svg.WithTitle("Quest dependencies"), svg.WithPrereqBadges()), nil
	case render.FormatDOT:
		return []byte(nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed})), nil
	case render.FormatJSON:
		return graph.MarshalLayout(l)
	case render.FormatPNG:
		return nodelink.RenderPNG(ctx, nodelink.ToDOT(l, nodelink.Options{Detailed: opts.Detailed}))
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
