package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/umlsvg/pkg/errors"
	"github.com/matzehuels/umlsvg/pkg/graph"
	"github.com/matzehuels/umlsvg/pkg/layout"
	"github.com/matzehuels/umlsvg/pkg/render/diagram"
	"github.com/matzehuels/umlsvg/pkg/render/sink"
)

// memCache is an in-process cache.Cache that counts writes.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func twoNodeLayout() *graph.Layout {
	return &graph.Layout{
		Directed:     true,
		EdgeGraphics: true,
		Nodes: []graph.Node{
			{ID: "A", Width: 100, Height: 40, Label: "A"},
			{ID: "B", X: 300, Width: 100, Height: 40, Label: "B"},
		},
		Edges: []graph.Edge{{Source: "A", Target: "B"}},
	}
}

const model = `
classes:
  - name: Order
    attributes: ["- id: int"]
  - name: Item
relations:
  - {from: Order, to: Item, kind: composition}
`

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errs.Is(err, errs.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errs.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "NoInput", opts: Options{}, wantErr: true},
		{name: "BothInputs", opts: Options{Model: []byte(model), Layout: twoNodeLayout()}, wantErr: true},
		{name: "Model", opts: Options{Model: []byte(model)}},
		{name: "Layout", opts: Options{Layout: twoNodeLayout()}},
		{name: "BadEngine", opts: Options{Model: []byte(model), Graphviz: layoutOpts("spring")}, wantErr: true},
		{name: "BadFormat", opts: Options{Layout: twoNodeLayout(), Formats: []string{"gif"}}, wantErr: true},
		{
			name:    "BadCurviness",
			opts:    Options{Layout: twoNodeLayout(), Settings: diagram.Settings{FontSize: 10, Curviness: 3}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errs.IsInvalid(err), "code = %s", errs.GetCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{FormatSVG}, tt.opts.Formats)
			assert.Equal(t, diagram.DefaultSettings(), tt.opts.Settings)
			assert.Equal(t, sink.DefaultScale, tt.opts.Scale)
			assert.NotNil(t, tt.opts.Logger)
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	o := Options{Layout: twoNodeLayout(), Formats: []string{"svg", "png", "json"}}
	require.NoError(t, o.ValidateAndSetDefaults())

	curved := o
	curved.Settings.Curviness = 0.5

	keyer := NewRunner(nil, nil, nil).Keyer
	key := func(o Options, format string) string { return keyer.ArtifactKey("h", o.ArtifactKeyOpts(format)) }

	assert.NotEqual(t, key(o, FormatSVG), key(curved, FormatSVG))
	assert.NotEqual(t, key(o, FormatSVG), key(o, FormatPNG))
	assert.Equal(t, key(o, FormatJSON), key(curved, FormatJSON))
	assert.Zero(t, o.ArtifactKeyOpts(FormatSVG).Scale)
	assert.Equal(t, sink.DefaultScale, o.ArtifactKeyOpts(FormatPNG).Scale)
}

func TestDetectInput(t *testing.T) {
	assert.Equal(t, InputLayout, DetectInput([]byte("  \n{\"nodes\": []}")))
	assert.Equal(t, InputModel, DetectInput([]byte(model)))
	assert.Equal(t, InputModel, DetectInput(nil))
}

func TestLoadInput(t *testing.T) {
	dir := t.TempDir()
	layoutPath := filepath.Join(dir, "diagram.json")
	require.NoError(t, graph.WriteLayoutFile(*twoNodeLayout(), layoutPath))
	modelPath := filepath.Join(dir, "model.yml")
	require.NoError(t, os.WriteFile(modelPath, []byte(model), 0o644))
	sniffPath := filepath.Join(dir, "diagram.txt")
	require.NoError(t, graph.WriteLayoutFile(*twoNodeLayout(), sniffPath))

	var o Options
	require.NoError(t, o.LoadInput(layoutPath))
	require.NotNil(t, o.Layout)
	assert.Len(t, o.Layout.Nodes, 2)
	assert.Nil(t, o.Model)

	require.NoError(t, o.LoadInput(modelPath))
	assert.Nil(t, o.Layout)
	assert.Equal(t, model, string(o.Model))

	require.NoError(t, o.LoadInput(sniffPath))
	assert.NotNil(t, o.Layout)

	err := o.LoadInput(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errs.Is(err, errs.ErrCodeFileNotFound))

	require.NoError(t, os.WriteFile(layoutPath, []byte(`{"nodes":[{"id":"A"},{"id":"A"}]}`), 0o644))
	err = o.LoadInput(layoutPath)
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidLayout))
}

func TestExecuteLayout(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	opts := Options{Layout: twoNodeLayout(), Formats: []string{FormatSVG, FormatJSON}}

	res, err := r.Execute(ctx, opts)
	require.NoError(t, err)
	assert.False(t, res.CacheInfo.RenderHit)
	assert.Nil(t, res.Model)
	assert.Equal(t, 2, res.Stats.NodeCount)
	assert.Equal(t, 1, res.Stats.EdgeCount)
	assert.Contains(t, string(res.Artifacts[FormatSVG]), "M50,0 L250,0")
	assert.Contains(t, string(res.Artifacts[FormatJSON]), `"edge_graphics": true`)
	assert.NotEmpty(t, res.LayoutHash)
	assert.Equal(t, 2, c.sets)

	res, err = r.Execute(ctx, opts)
	require.NoError(t, err)
	assert.True(t, res.CacheInfo.RenderHit)
	assert.Equal(t, 2, c.sets)

	opts.Refresh = true
	res, err = r.Execute(ctx, opts)
	require.NoError(t, err)
	assert.False(t, res.CacheInfo.RenderHit)
}

func TestExecuteNoEdges(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	res, err := r.Execute(context.Background(), Options{Layout: twoNodeLayout(), NoEdges: true})
	require.NoError(t, err)
	assert.NotContains(t, string(res.Artifacts[FormatSVG]), "<path")
}

func TestExecuteSkippedEdges(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	l := twoNodeLayout()
	l.Nodes[1].X = 20
	res, err := NewRunner(nil, nil, logger).Execute(context.Background(), Options{Layout: l})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.SkippedEdges)
	assert.Contains(t, buf.String(), "overlapping")
}

func TestExecuteInvalidLayout(t *testing.T) {
	l := twoNodeLayout()
	l.Edges[0].Target = "C"
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Layout: l})
	assert.Error(t, err)
}

func TestExecuteModel(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	opts := Options{Model: []byte(model), Formats: []string{FormatSVG}}

	res, err := r.Execute(ctx, opts)
	require.NoError(t, err)
	require.NotNil(t, res.Model)
	assert.False(t, res.CacheInfo.LayoutHit)
	assert.Len(t, res.Layout.Nodes, 2)
	assert.Contains(t, string(res.Artifacts[FormatSVG]), "antiquewhite")

	res, err = r.Execute(ctx, opts)
	require.NoError(t, err)
	assert.True(t, res.CacheInfo.LayoutHit)
	assert.True(t, res.CacheInfo.RenderHit)
}

func TestExecuteBadModel(t *testing.T) {
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Model: []byte("classes: []")})
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidModel))
}

func layoutOpts(engine string) layout.Options {
	o := layout.DefaultOptions()
	o.Engine = engine
	return o
}
