package layout

import "github.com/matzehuels/questgraph/pkg/errors"

// Default geometry.
const (
	DefaultNodeWidth   = 220
	DefaultNodeHeight  = 64
	DefaultHGap        = 120
	DefaultVGap        = 28
	DefaultPadding     = 40
	DefaultEmptyWidth  = 400
	DefaultEmptyHeight = 200
)

// Config holds the layout geometry. Zero fields are replaced by defaults in
// [Config.WithDefaults].
type Config struct {
	NodeWidth   float64 `json:"node_width,omitempty" toml:"node_width"`
	NodeHeight  float64 `json:"node_height,omitempty" toml:"node_height"`
	HGap        float64 `json:"h_gap,omitempty" toml:"h_gap"`
	VGap        float64 `json:"v_gap,omitempty" toml:"v_gap"`
	Padding     float64 `json:"padding,omitempty" toml:"padding"`
	EmptyWidth  float64 `json:"empty_width,omitempty" toml:"empty_width"`
	EmptyHeight float64 `json:"empty_height,omitempty" toml:"empty_height"`
}

// DefaultConfig returns the default geometry.
func DefaultConfig() Config {
	return Config{}.WithDefaults()
}

// WithDefaults returns a copy of c with zero fields set to their defaults.
func (c Config) WithDefaults() Config {
	if c.NodeWidth == 0 {
		c.NodeWidth = DefaultNodeWidth
	}
	if c.NodeHeight == 0 {
		c.NodeHeight = DefaultNodeHeight
	}
	if c.HGap == 0 {
		c.HGap = DefaultHGap
	}
	if c.VGap == 0 {
		c.VGap = DefaultVGap
	}
	if c.Padding == 0 {
		c.Padding = DefaultPadding
	}
	if c.EmptyWidth == 0 {
		c.EmptyWidth = DefaultEmptyWidth
	}
	if c.EmptyHeight == 0 {
		c.EmptyHeight = DefaultEmptyHeight
	}
	return c
}

// Validate checks that sizes are positive and gaps are not negative.
// Zero values are accepted since they mean "use the default".
func (c Config) Validate() error {
	switch {
	case c.NodeWidth < 0 || c.NodeHeight < 0:
		return errors.New(errors.ErrCodeInvalidInput, "node size must be positive, got %gx%g", c.NodeWidth, c.NodeHeight)
	case c.HGap < 0 || c.VGap < 0:
		return errors.New(errors.ErrCodeInvalidInput, "gaps must not be negative, got h=%g v=%g", c.HGap, c.VGap)
	case c.Padding < 0:
		return errors.New(errors.ErrCodeInvalidInput, "padding must not be negative, got %g", c.Padding)
	case c.EmptyWidth < 0 || c.EmptyHeight < 0:
		return errors.New(errors.ErrCodeInvalidInput, "empty canvas size must be positive, got %gx%g", c.EmptyWidth, c.EmptyHeight)
	}
	return nil
}
