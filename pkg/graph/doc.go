// Package graph provides the wire formats for quest graphs and layouts.
//
// # Graph Serialization
//
// A built quest graph is exported in node-link form:
//
//	{
//	  "nodes": [{"id": "debut", "name": "Debut", "trader": "Prapor", "level": 0}],
//	  "edges": [{"from": "debut", "to": "checking", "kind": "unlocks"}]
//	}
//
// Use [FromDAG] and [ToDAG] to convert, or the file helpers:
//
//	g, _ := graph.ReadGraph(r)                  // JSON → DAG
//	graph.WriteGraphFile(g, "graph.json")       // DAG → File
//	data, _ := graph.MarshalGraph(g)            // DAG → []byte
//
// # Layout Serialization
//
// A computed [layout.Result] is stored as-is. [UnmarshalLayout] checks the
// structure so renderers can trust a layout read from disk or cache.
//
// # Input Detection
//
// The CLI accepts quest files, graph files and layout files interchangeably.
// [Detect] tells them apart by their top-level JSON shape.
//
// [layout.Result]: github.com/matzehuels/questgraph/pkg/layout.Result
package graph
