// Package quest loads quest records and turns them into a dependency graph.
//
// # Records
//
// A quest file is a JSON array of [Record] values. Reference fields are
// forgiving: "requires" and "unlocks" may be absent, null, a single id or an
// array of ids (see [RefList]). Reputation rewards are read from any
// "<trader>_rep" key of the rewards object.
//
// # Graph Construction
//
// [BuildGraph] normalizes the references into a [dag.DAG]. Every quest becomes
// a node, "X requires Y" becomes the edge Y→X and "X unlocks Y" becomes X→Y.
// References to unknown quests and to the quest itself are dropped, and each
// ordered pair of quests yields at most one edge. [BuildGraphWithReport]
// returns the same graph plus a [BuildReport] describing what was dropped.
//
// Construction never fails. Bad data degrades the graph, it does not abort
// the layout.
//
// [dag.DAG]: github.com/matzehuels/questgraph/pkg/dag.DAG
package quest
