// Package transform computes derived structure on a quest [dag.DAG].
//
// # Levels
//
// [AssignLevels] assigns each quest the column it is drawn in: sources at 0,
// every other quest one past its deepest prerequisite. [ApplyLevels] stores
// the result on the graph. The traversal never fails; quests caught in a
// reference cycle fall back to level 0.
//
// # Diagnostics
//
// [CycleEdges] lists the back edges of a depth-first search and [StuckNodes]
// lists the quests the level traversal could not release. Neither changes the
// layout. The check command and debug logging report them.
//
// [dag.DAG]: github.com/matzehuels/questgraph/pkg/dag.DAG
package transform
