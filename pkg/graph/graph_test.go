package graph

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/umlsvg/pkg/geom"
)

func twoNodes() Layout {
	return Layout{
		Directed:     true,
		EdgeGraphics: true,
		Nodes: []Node{
			{ID: "A", X: 0, Y: 0, Width: 100, Height: 40},
			{ID: "B", X: 300, Y: 0, Width: 100, Height: 40},
		},
		Edges: []Edge{{ID: "e0", Source: "A", Target: "B"}},
	}
}

func TestArrowEnds(t *testing.T) {
	tests := []struct {
		arrow      ArrowType
		directed   bool
		wantSource bool
		wantTarget bool
	}{
		{ArrowUndefined, false, false, false},
		{ArrowUndefined, true, false, true},
		{ArrowNone, true, false, false},
		{ArrowFirst, false, true, false},
		{ArrowLast, false, false, true},
		{ArrowBoth, false, true, true},
		{ArrowBoth, true, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.arrow.String(), func(t *testing.T) {
			s, g := tt.arrow.Ends(tt.directed)
			if s != tt.wantSource || g != tt.wantTarget {
				t.Errorf("Ends(%v) = %v,%v want %v,%v", tt.directed, s, g, tt.wantSource, tt.wantTarget)
			}
		})
	}
}

func TestStrokeKindText(t *testing.T) {
	for k, name := range strokeKindNames {
		got, err := ParseStrokeKind(strings.ToUpper(name))
		if err != nil {
			t.Fatalf("ParseStrokeKind(%q): %v", name, err)
		}
		if got != k {
			t.Errorf("ParseStrokeKind(%q) = %v, want %v", name, got, k)
		}
	}
	if k, _ := ParseStrokeKind(""); k != StrokeSolid {
		t.Errorf("empty kind = %v, want solid", k)
	}
	if _, err := ParseStrokeKind("wavy"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestStrokeDefaults(t *testing.T) {
	var s Stroke
	if s.LineWidth() != 1 {
		t.Errorf("LineWidth = %v, want 1", s.LineWidth())
	}
	if s.LineColor() != DefaultColor {
		t.Errorf("LineColor = %q, want %q", s.LineColor(), DefaultColor)
	}
}

func TestEdgeJSON(t *testing.T) {
	data := `{"source":"A","target":"B","arrow":"both","stroke":{"kind":"dashdot","width":2}}`
	var e Edge
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		t.Fatal(err)
	}
	if e.Arrow != ArrowBoth {
		t.Errorf("Arrow = %v, want both", e.Arrow)
	}
	if e.Stroke == nil || e.Stroke.Kind != StrokeDashdot || e.Stroke.Width != 2 {
		t.Errorf("Stroke = %+v", e.Stroke)
	}
	if e.Name() != "A->B" {
		t.Errorf("Name = %q", e.Name())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(l *Layout)
		wantErr string
	}{
		{name: "Valid", mutate: func(l *Layout) {}},
		{
			name:    "MissingID",
			mutate:  func(l *Layout) { l.Nodes[0].ID = "" },
			wantErr: "missing id",
		},
		{
			name:    "DuplicateID",
			mutate:  func(l *Layout) { l.Nodes[1].ID = "A" },
			wantErr: "duplicate id",
		},
		{
			name:    "NegativeSize",
			mutate:  func(l *Layout) { l.Nodes[0].Width = -1 },
			wantErr: "negative size",
		},
		{
			name:    "UnknownTarget",
			mutate:  func(l *Layout) { l.Edges[0].Target = "C" },
			wantErr: "unknown target",
		},
		{
			name: "ClusterTree",
			mutate: func(l *Layout) {
				l.Clusters = []Cluster{{Root: true, Children: []int{1}}, {Children: []int{2}}, {}}
			},
		},
		{
			name:    "NoRoot",
			mutate:  func(l *Layout) { l.Clusters = []Cluster{{}} },
			wantErr: "no root",
		},
		{
			name:    "ChildOutOfRange",
			mutate:  func(l *Layout) { l.Clusters = []Cluster{{Root: true, Children: []int{4}}} },
			wantErr: "out of range",
		},
		{
			name: "TwoParents",
			mutate: func(l *Layout) {
				l.Clusters = []Cluster{{Root: true, Children: []int{1, 2}}, {Children: []int{2}}, {}}
			},
			wantErr: "two parents",
		},
		{
			name:    "Unreachable",
			mutate:  func(l *Layout) { l.Clusters = []Cluster{{Root: true}, {}} },
			wantErr: "unreachable",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := twoNodes()
			tt.mutate(&l)
			err := l.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestBounds(t *testing.T) {
	l := twoNodes()
	l.Edges[0].Bends = []geom.Point{geom.Pt(150, 90)}
	l.Clusters = []Cluster{
		{Root: true, X: -1000, Y: -1000, Width: 5000, Height: 5000, Children: []int{1}},
		{X: -60, Y: -30, Width: 10, Height: 10},
	}

	b := l.Bounds()
	if b.Min != geom.Pt(-60, -30) || b.Max != geom.Pt(350, 90) {
		t.Errorf("Bounds = %+v", b)
	}

	if (&Layout{}).Bounds() != (geom.Rect{}) {
		t.Error("empty layout should have zero bounds")
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	z := 2.0
	l := twoNodes()
	l.Nodes[0].Z = &z
	l.Nodes[0].Style = &Style{Fill: "antiquewhite", Stroke: Stroke{Kind: StrokeDash, Width: 2}}

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !got.HasDepth() || *got.Nodes[0].Z != 2 {
		t.Error("z not preserved")
	}
	if got.Nodes[0].Style.Stroke.Kind != StrokeDash {
		t.Errorf("stroke kind = %v", got.Nodes[0].Style.Stroke.Kind)
	}
}

func TestUnmarshalLayoutRejectsInvalid(t *testing.T) {
	_, err := UnmarshalLayout([]byte(`{"nodes":[{"id":"A"}],"edges":[{"source":"A","target":"X"}]}`))
	if err == nil || !strings.Contains(err.Error(), "invalid layout") {
		t.Fatalf("error = %v", err)
	}
	_, err = UnmarshalLayout([]byte(`{"nodes":[],"bogus":1}`))
	if err == nil {
		t.Fatal("expected unknown field error")
	}
}
