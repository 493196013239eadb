// Package pkg provides the core libraries for questgraph, a quest dependency
// graph and layered layout engine.
//
// # Overview
//
// questgraph reads a list of quest records, links them through their
// "requires" and "unlocks" references, and places every quest in a column
// one past its deepest prerequisite. The result is drawn left to right with
// curved edges, colored by completion state.
//
// # Architecture
//
// The typical data flow:
//
//	quests.json (file or URL)
//	         ↓
//	    [quest] package (parse records, build the graph)
//	         ↓
//	    [dag] package (graph structure) + [dag/transform] (levels, cycles)
//	         ↓
//	    [layout] package (columns, positions, routed edges, status)
//	         ↓
//	    [render] package (SVG, DOT, PNG, JSON)
//
// [pipeline] runs these steps with caching and is shared by the CLI and the
// HTTP API in [server].
//
// # Quick Start
//
//	records, _ := quest.Load("quests.json")
//	g := quest.BuildGraph(records)
//	l, _ := layout.Compute(g, transform.AssignLevels(g), completed, layout.Config{})
//	data := svg.RenderSVG(l)
//
// # Main Packages
//
// [quest] - Quest records, the JSON loader and graph construction with a
// report of dropped references.
//
// [dag] - The quest graph. Tolerates cycles, rejects self-loops and duplicate
// pairs, and counts edge crossings between adjacent columns.
//
// [dag/transform] - Level assignment by longest path and cycle diagnostics.
//
// [layout] - Column placement, edge routing and per-quest status.
//
// [render] - Output formats and the status palette. [render/svg] draws the
// layout directly; [render/nodelink] goes through Graphviz.
//
// [graph] - JSON serialization of graphs and layouts.
//
// [progress] - Completed-quest stores: a JSON file, PostgreSQL and MongoDB.
//
// [cache] - Layout and artifact cache with file, Redis and null backends.
//
// [httputil] - Conditional HTTP fetching with an on-disk ETag cache, used for
// quest files given by URL.
//
// [config] - The TOML configuration file.
//
// [errors] - Coded errors shared by the CLI and the API.
//
// [observability] - Hooks for pipeline and progress events.
//
// [quest]: https://pkg.go.dev/github.com/matzehuels/questgraph/pkg/quest
// [dag]: https://pkg.go.dev/github.com/matzehuels/questgraph/pkg/dag
// [dag/transform]: https://pkg.go.dev/github.com/matzehuels/questgraph/pkg/dag/transform
// [layout]: https://pkg.go.dev/github.com/matzehuels/questgraph/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/questgraph/pkg/render
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/questgraph/pkg/render/svg
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/questgraph/pkg/render/nodelink
// [graph]: https://pkg.go.dev/github.com/matzehuels/questgraph/pkg/graph
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/questgraph/pkg/pipeline
// [server]: https://pkg.go.dev/github.com/matzehuels/questgraph/pkg/server
// [progress]: https://pkg.go.dev/github.com/matzehuels/questgraph/pkg/progress
// [cache]: https://pkg.go.dev/github.com/matzehuels/questgraph/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/matzehuels/questgraph/pkg/httputil
// [config]: https://pkg.go.dev/github.com/matzehuels/questgraph/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/questgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/questgraph/pkg/observability
package pkg
