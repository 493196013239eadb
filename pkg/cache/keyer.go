package cache

import "github.com/matzehuels/questgraph/pkg/layout"

// LayoutKeyOpts are the inputs besides the quest file that determine a layout.
type LayoutKeyOpts struct {
	KappaOnly     bool          `json:"kappa_only"`
	HideCompleted bool          `json:"hide_completed"`
	CompletedHash string        `json:"completed_hash"`
	Config        layout.Config `json:"config"`
}

// ArtifactKeyOpts identify a rendered artifact of a layout.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey keys a computed layout by the hash of the quest file.
	LayoutKey(questsHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered artifact by the hash of its layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(questsHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", questsHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
