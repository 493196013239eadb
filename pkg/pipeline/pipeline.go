// Package pipeline runs the questgraph stages end to end.
//
// The CLI and the HTTP server both go through this package so that a layout
// computed by one is byte-identical to a layout computed by the other.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Load: read quest records from a file, or take them preloaded
//  2. Build: turn records into a dependency graph ([quest.BuildGraphWithReport])
//  3. Layout: assign levels and compute positions ([layout.Compute])
//  4. Render: produce SVG, DOT, JSON or PNG from the layout
//
// Layout and Render results are cached by content hash through a
// [cache.Cache]; see [Runner].
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    QuestsPath: "data/quests.json",
//	    Completed:  done,
//	    Formats:    []string{"svg"},
//	})
//	svg := res.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/questgraph/pkg/dag"
	"github.com/matzehuels/questgraph/pkg/errors"
	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/progress"
	"github.com/matzehuels/questgraph/pkg/quest"
	"github.com/matzehuels/questgraph/pkg/render"
)

// DefaultQuestsPath is where quest data is read from when nothing else is
// configured.
const DefaultQuestsPath = "data/quests.json"

// DefaultFormat is rendered when no format is requested.
const DefaultFormat = string(render.FormatSVG)

// Options contains all configuration for one pipeline run.
type Options struct {
	// Load options. Records, when non-nil, takes precedence over QuestsPath.
	QuestsPath string         `json:"quests_path,omitempty"`
	Records    []quest.Record `json:"-"`

	// Filters applied to the records before the graph is built.
	KappaOnly     bool `json:"kappa_only,omitempty"`
	HideCompleted bool `json:"hide_completed,omitempty"`

	// Layout options
	Completed progress.Set `json:"-"`
	Config    layout.Config `json:"config"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // trader and level in DOT labels

	// Refresh bypasses cached layouts and artifacts. Fresh results are still
	// written back.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Records []quest.Record
	Graph   *dag.DAG
	Report  quest.BuildReport

	// QuestsHash is the content hash of the loaded quest data.
	QuestsHash string

	Layout    layout.Result
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each cached stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateAndSetDefaults checks options and applies defaults.
// It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Records == nil {
		if o.QuestsPath == "" {
			o.QuestsPath = DefaultQuestsPath
		}
		if err := errors.ValidatePath(o.QuestsPath); err != nil {
			return err
		}
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLayout fills in geometry defaults and validates them.
func (o *Options) ValidateForLayout() error {
	o.Config = o.Config.WithDefaults()
	o.setLogger()
	return o.Config.Validate()
}

// ValidateForRender defaults and validates the requested formats.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	o.setLogger()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateFormats checks that every format is supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := errors.ValidateFormat(f, render.FormatNames()); err != nil {
			return err
		}
	}
	return nil
}

// Filter applies the record filters of o.
func (o *Options) Filter(records []quest.Record) []quest.Record {
	if o.KappaOnly {
		records = quest.KappaOnly(records)
	}
	if o.HideCompleted && o.Completed.Len() > 0 {
		kept := make([]quest.Record, 0, len(records))
		for _, r := range records {
			if !o.Completed.Has(r.ID) {
				kept = append(kept, r)
			}
		}
		records = kept
	}
	return records
}
