package render

import (
	"github.com/matzehuels/questgraph/pkg/layout"
)

// Format is an output format name.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
	FormatPNG  Format = "png"
)

// Formats lists every supported output format.
var Formats = []Format{FormatSVG, FormatDOT, FormatJSON, FormatPNG}

// FormatNames returns the supported formats as plain strings.
func FormatNames() []string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return names
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	case FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/octet-stream"
	}
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string { return "." + string(f) }

// Swatch is the fill, stroke and text color of one status.
type Swatch struct {
	Fill   string
	Stroke string
	Text   string
}

// Palette maps quest status to colors.
type Palette struct {
	Background string
	Edge       string
	EdgeUnlock string
	Milestone  string
	Muted      string
	Status     map[layout.Status]Swatch
}

// DefaultPalette is the dark theme used by every renderer.
var DefaultPalette = Palette{
	Background: "#14161b",
	Edge:       "#5c6370",
	EdgeUnlock: "#8a7a4e",
	Milestone:  "#e5c07b",
	Muted:      "#7f848e",
	Status: map[layout.Status]Swatch{
		layout.StatusCompleted: {Fill: "#1f3326", Stroke: "#4caf50", Text: "#9fd8a4"},
		layout.StatusAvailable: {Fill: "#1f2a3a", Stroke: "#61afef", Text: "#e6e6e6"},
		layout.StatusLocked:    {Fill: "#22252b", Stroke: "#3e4451", Text: "#7f848e"},
	},
}

// Swatch returns the colors for s. Nodes without a status are drawn as
// available.
func (p Palette) Swatch(s layout.Status) Swatch {
	if sw, ok := p.Status[s]; ok {
		return sw
	}
	return p.Status[layout.StatusAvailable]
}
