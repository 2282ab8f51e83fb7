package layout

import (
	"fmt"
	"slices"
	"strings"
)

// Engines lists the supported Graphviz layout engines.
var Engines = []string{"dot", "neato", "fdp", "circo", "twopi"}

// RankDirs lists the accepted rank directions.
var RankDirs = []string{"TB", "LR", "BT", "RL"}

// Options configures a layout run. Distances are in points.
type Options struct {
	Engine        string
	RankDir       string
	NodeDistance  float64 // between nodes of one rank (nodesep)
	LayerDistance float64 // between ranks (ranksep)
	ClusterMargin float64 // padding around cluster members
}

// DefaultOptions returns top-to-bottom dot layout settings.
func DefaultOptions() Options {
	return Options{
		Engine:        "dot",
		RankDir:       "TB",
		NodeDistance:  36,
		LayerDistance: 54,
		ClusterMargin: 12,
	}
}

// Validate checks option values.
func (o Options) Validate() error {
	if !slices.Contains(Engines, o.Engine) {
		return fmt.Errorf("unknown layout engine %q (want one of %s)", o.Engine, strings.Join(Engines, ", "))
	}
	if !slices.Contains(RankDirs, strings.ToUpper(o.RankDir)) {
		return fmt.Errorf("unknown rank direction %q (want one of %s)", o.RankDir, strings.Join(RankDirs, ", "))
	}
	if o.NodeDistance < 0 || o.LayerDistance < 0 || o.ClusterMargin < 0 {
		return fmt.Errorf("distances must be >= 0")
	}
	return nil
}

// WithDefaults fills unset fields from [DefaultOptions]. Zero distances
// count as unset.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.Engine == "" {
		o.Engine = d.Engine
	}
	if o.RankDir == "" {
		o.RankDir = d.RankDir
	}
	o.RankDir = strings.ToUpper(o.RankDir)
	if o.NodeDistance == 0 {
		o.NodeDistance = d.NodeDistance
	}
	if o.LayerDistance == 0 {
		o.LayerDistance = d.LayerDistance
	}
	if o.ClusterMargin == 0 {
		o.ClusterMargin = d.ClusterMargin
	}
	return o
}
