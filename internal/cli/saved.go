package cli

import (
	"bytes"
	"os"

	"github.com/matzehuels/questgraph/pkg/dag"
	"github.com/matzehuels/questgraph/pkg/errors"
	"github.com/matzehuels/questgraph/pkg/graph"
	"github.com/matzehuels/questgraph/pkg/httputil"
	"github.com/matzehuels/questgraph/pkg/layout"
)

// savedInput is a graph or layout file given where a quest file is expected.
type savedInput struct {
	kind   graph.Kind
	graph  *dag.DAG
	layout layout.Result
}

// readSaved classifies the local file at path. Kind is KindUnknown when path
// is a URL, cannot be read, or is not a graph or layout; the pipeline then
// treats it as a quest file and reports any error itself.
func readSaved(path string) (savedInput, error) {
	if path == "" || httputil.IsURL(path) {
		return savedInput{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return savedInput{}, nil
	}

	switch kind := graph.Detect(data); kind {
	case graph.KindLayout:
		l, err := graph.UnmarshalLayout(data)
		if err != nil {
			return savedInput{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse layout %s", path)
		}
		return savedInput{kind: kind, layout: l}, nil
	case graph.KindGraph:
		g, err := graph.ReadGraph(bytes.NewReader(data))
		if err != nil {
			return savedInput{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse graph %s", path)
		}
		return savedInput{kind: kind, graph: g}, nil
	}
	return savedInput{}, nil
}
