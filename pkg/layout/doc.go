// Package layout computes the column layout of a quest graph.
//
// # Overview
//
// Quests are drawn left to right by level. Every distinct level becomes one
// column; columns are ordered by ascending level and each column is
// vertically centered against the tallest one. Inside a column, quests are
// sorted by trader, then name, then id, so the same input always produces
// the same picture.
//
// The pipeline is split into small pure functions:
//
//   - [Build] places nodes and sizes the canvas.
//   - [Route] draws one cubic curve per edge between placed nodes.
//   - [PrereqCounts] counts incoming edges per quest.
//   - [Compute] runs all three and tags each node with its [Status].
//
// None of them retain state between calls. A [Result] is built fresh for
// every request and never modified afterwards.
//
// # Geometry
//
// All sizes come from [Config]. With the defaults a node is 220×64 units,
// columns are 120 units apart, rows 28 units apart and the canvas has a
// 40 unit margin. A graph without nodes yields the result of [Empty], which
// renderers use to show an empty-state message.
//
// # Edges
//
// An edge leaves the right-center of its source box and enters the
// left-center of its target box. The two control points sit
// max(60, |Δx|/2) units along the direction of travel, which keeps curves
// readable when an edge points backwards.
package layout
