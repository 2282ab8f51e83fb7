package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/umlsvg/pkg/geom"
)

// =============================================================================
// Layout - Attributed Geometry Snapshot
// =============================================================================

// Layout is a fully positioned graph ready to be drawn.
//
// Directed decides whether edges with ArrowUndefined get a target arrowhead.
// EdgeGraphics enables drawing of edges at all; layouts without it render
// only clusters and nodes.
type Layout struct {
	Directed     bool      `json:"directed" bson:"directed"`
	EdgeGraphics bool      `json:"edge_graphics" bson:"edge_graphics"`
	Nodes        []Node    `json:"nodes" bson:"nodes"`
	Edges        []Edge    `json:"edges,omitempty" bson:"edges,omitempty"`
	Clusters     []Cluster `json:"clusters,omitempty" bson:"clusters,omitempty"`
}

// NodeIndex maps node ids to their position in Nodes.
func (l *Layout) NodeIndex() map[string]int {
	idx := make(map[string]int, len(l.Nodes))
	for i, n := range l.Nodes {
		idx[n.ID] = i
	}
	return idx
}

// Root returns the index of the root cluster, or -1 if there is none.
func (l *Layout) Root() int {
	for i, c := range l.Clusters {
		if c.Root {
			return i
		}
	}
	return -1
}

// HasDepth reports whether any node carries a z coordinate.
func (l *Layout) HasDepth() bool {
	for _, n := range l.Nodes {
		if n.Z != nil {
			return true
		}
	}
	return false
}

// Bounds returns the bounding box of all node rectangles, edge bend points
// and non-root cluster rectangles. An empty layout yields a zero rectangle.
func (l *Layout) Bounds() geom.Rect {
	r := geom.EmptyRect()
	for _, n := range l.Nodes {
		r = r.Union(n.Box())
	}
	for _, e := range l.Edges {
		for _, b := range e.Bends {
			r = r.Extend(b)
		}
	}
	for _, c := range l.Clusters {
		if !c.Root {
			r = r.Union(c.Box())
		}
	}
	if r.IsEmpty() {
		return geom.Rect{}
	}
	return r
}

// Validate checks the structural invariants the renderer relies on:
// unique node ids, non-negative sizes, edges referencing existing nodes,
// and a cluster arena forming a single tree under exactly one root.
func (l *Layout) Validate() error {
	seen := make(map[string]bool, len(l.Nodes))
	for i, n := range l.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node %d: missing id", i)
		}
		if seen[n.ID] {
			return fmt.Errorf("node %q: duplicate id", n.ID)
		}
		seen[n.ID] = true
		if n.Width < 0 || n.Height < 0 {
			return fmt.Errorf("node %q: negative size %gx%g", n.ID, n.Width, n.Height)
		}
	}

	for i, e := range l.Edges {
		if !seen[e.Source] {
			return fmt.Errorf("edge %d (%s): unknown source %q", i, e.Name(), e.Source)
		}
		if !seen[e.Target] {
			return fmt.Errorf("edge %d (%s): unknown target %q", i, e.Name(), e.Target)
		}
	}

	return l.validateClusters()
}

func (l *Layout) validateClusters() error {
	if len(l.Clusters) == 0 {
		return nil
	}

	root := -1
	parent := make([]int, len(l.Clusters))
	for i := range parent {
		parent[i] = -1
	}

	for i, c := range l.Clusters {
		if c.Root {
			if root >= 0 {
				return fmt.Errorf("cluster %d: second root (first is %d)", i, root)
			}
			root = i
		}
		for _, child := range c.Children {
			if child < 0 || child >= len(l.Clusters) {
				return fmt.Errorf("cluster %d: child index %d out of range", i, child)
			}
			if parent[child] >= 0 {
				return fmt.Errorf("cluster %d: has two parents (%d, %d)", child, parent[child], i)
			}
			parent[child] = i
		}
	}

	if root < 0 {
		return fmt.Errorf("clusters present but no root cluster")
	}
	if parent[root] >= 0 {
		return fmt.Errorf("root cluster %d is a child of %d", root, parent[root])
	}

	// Every cluster must be reachable from the root exactly once.
	reached := 0
	queue := []int{root}
	visited := make([]bool, len(l.Clusters))
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		if visited[i] {
			return fmt.Errorf("cluster %d: cycle in cluster tree", i)
		}
		visited[i] = true
		reached++
		queue = append(queue, l.Clusters[i].Children...)
	}
	if reached != len(l.Clusters) {
		return fmt.Errorf("%d clusters unreachable from root", len(l.Clusters)-reached)
	}
	return nil
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes and validates JSON layout bytes.
func UnmarshalLayout(data []byte) (Layout, error) {
	return ReadLayout(bytes.NewReader(data))
}

// ReadLayout decodes and validates a JSON layout from r.
func ReadLayout(r io.Reader) (Layout, error) {
	var l Layout
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, fmt.Errorf("invalid layout: %w", err)
	}
	return l, nil
}

// WriteLayout encodes l as indented JSON to w.
func WriteLayout(l Layout, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
