package cache

// Keyer derives cache keys from content hashes and options.
type Keyer interface {
	// LayoutKey keys a layout computed from a model.
	LayoutKey(modelHash string, opts LayoutKeyOpts) string
	// ArtifactKey keys a rendered output of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the layout inputs besides the model itself.
type LayoutKeyOpts struct {
	Engine        string  `json:"engine"`
	RankDir       string  `json:"rankdir"`
	NodeDistance  float64 `json:"node_distance"`
	LayerDistance float64 `json:"layer_distance"`
	FontSize      float64 `json:"font_size"`
}

// ArtifactKeyOpts are the render inputs besides the layout itself.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	// Settings is any JSON-encodable value holding the render settings.
	Settings any     `json:"settings,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// DefaultKeyer hashes options into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(modelHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", modelHash, opts)
}

// ArtifactKey returns "artifact:<format>:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
