package graph

import (
	"bytes"
	"encoding/json"
)

// Kind is the type of a questgraph JSON document.
type Kind int

const (
	KindUnknown Kind = iota
	KindQuests       // array of quest records
	KindGraph        // node-link graph
	KindLayout       // computed layout
)

func (k Kind) String() string {
	switch k {
	case KindQuests:
		return "quests"
	case KindGraph:
		return "graph"
	case KindLayout:
		return "layout"
	default:
		return "unknown"
	}
}

// Detect classifies data by its top-level JSON shape: an array is a quest
// file, an object with "columns" or "canvas" is a layout, and an object with
// "nodes" is a graph.
func Detect(data []byte) Kind {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return KindUnknown
	}
	if data[0] == '[' {
		return KindQuests
	}
	if data[0] != '{' {
		return KindUnknown
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return KindUnknown
	}
	if _, ok := fields["columns"]; ok {
		return KindLayout
	}
	if _, ok := fields["canvas"]; ok {
		return KindLayout
	}
	if _, ok := fields["nodes"]; ok {
		return KindGraph
	}
	return KindUnknown
}
