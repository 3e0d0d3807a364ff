package executor

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/adapters/config"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/adapters/snapshot"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/graph"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/imaging"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/ops"
)

// writeTestImage writes a uniform w x h PNG and returns its path.
func writeTestImage(t *testing.T, dir string, w, h int, value byte) string {
	t.Helper()
	buf := imaging.NewBuffer(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			buf.Set(x, y, value, value, value, 255)
		}
	}
	path := filepath.Join(dir, "in.png")
	require.NoError(t, imaging.Save(path, buf))
	return path
}

// chainConfig describes A(input) -> B(brightness x1.5) -> C(output).
func chainConfig(inPath, outPath string) *config.GraphConfig {
	return &config.GraphConfig{
		InputNodeID:  "A",
		OutputNodeID: "C",
		Nodes: []config.NodeConfig{
			{ID: "A", Name: "A", Type: "input", ImagePath: inPath},
			{ID: "B", Name: "B", Type: "brightness", Parameters: map[string]float64{"factor": 1.5}, Inputs: []string{"A"}},
			{ID: "C", Name: "C", Type: "output", ImagePath: outPath, Inputs: []string{"B"}},
		},
	}
}

func TestExecutor_RunChain(t *testing.T) {
	dir := t.TempDir()
	inPath := writeTestImage(t, dir, 4, 4, 100)
	outPath := filepath.Join(dir, "out.png")

	e := New()
	require.NoError(t, e.LoadGraph(context.Background(), chainConfig(inPath, outPath)))
	assert.Equal(t, StateValidated, e.State())
	assert.Equal(t, []string{"A", "B", "C"}, e.Graph().TopologicalOrder())

	result, err := e.Execute(context.Background())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, StateCompleted, e.State())
	assert.NotEmpty(t, e.RunID())
	assert.Equal(t, 3, e.Stats().TotalNodes)
	assert.Equal(t, 3, e.Stats().ExecutedNodes)
	assert.Greater(t, e.Stats().Duration.Nanoseconds(), int64(0))

	// 100 * 1.5 == 150 on every channel
	r, g, b, a := result.At(0, 0)
	assert.Equal(t, byte(150), r)
	assert.Equal(t, byte(150), g)
	assert.Equal(t, byte(150), b)
	assert.Equal(t, byte(255), a)

	saved, err := imaging.Load(outPath)
	require.NoError(t, err)
	r, _, _, _ = saved.At(3, 3)
	assert.Equal(t, byte(150), r)
}

func TestExecutor_ProgressFiresBeforeEachNode(t *testing.T) {
	dir := t.TempDir()
	inPath := writeTestImage(t, dir, 2, 2, 50)
	outPath := filepath.Join(dir, "out.png")

	e := New()
	require.NoError(t, e.LoadGraph(context.Background(), chainConfig(inPath, outPath)))

	type call struct {
		name             string
		completed, total int
	}
	var calls []call
	_, err := e.ExecuteWithProgress(context.Background(), func(name string, completed, total int) {
		calls = append(calls, call{name, completed, total})
		if name == "C" {
			// the callback fires before the sink writes
			_, statErr := os.Stat(outPath)
			assert.True(t, os.IsNotExist(statErr))
		}
	})
	require.NoError(t, err)

	require.Len(t, calls, 3)
	assert.Equal(t, call{"A", 1, 3}, calls[0])
	assert.Equal(t, call{"B", 2, 3}, calls[1])
	assert.Equal(t, call{"C", 3, 3}, calls[2])
}

func TestExecutor_CyclicGraphFailsAtLoad(t *testing.T) {
	cfg := &config.GraphConfig{
		Nodes: []config.NodeConfig{
			{ID: "A", Type: "brightness", Inputs: []string{"C"}},
			{ID: "B", Type: "brightness", Inputs: []string{"A"}},
			{ID: "C", Type: "brightness", Inputs: []string{"B"}},
		},
	}

	e := New()
	err := e.LoadGraph(context.Background(), cfg)
	assert.ErrorIs(t, err, graph.ErrCyclicGraph)
	assert.Equal(t, StateFailed, e.State())
}

func TestExecutor_EmptyGraph(t *testing.T) {
	e := New()
	require.NoError(t, e.LoadGraph(context.Background(), &config.GraphConfig{}))

	_, err := e.Execute(context.Background())
	assert.ErrorIs(t, err, ErrEmptyGraph)
	assert.NotErrorIs(t, err, graph.ErrCyclicGraph)
	assert.Equal(t, StateFailed, e.State())
}

func TestExecutor_UnknownOperation(t *testing.T) {
	cfg := &config.GraphConfig{
		Nodes: []config.NodeConfig{{ID: "A", Type: "sharpen"}},
	}

	e := New()
	err := e.LoadGraph(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrNodeCreation)
	assert.ErrorIs(t, err, ops.ErrUnknownOperation)
	assert.Equal(t, StateFailed, e.State())
}

func TestExecutor_SourceWithIncomingConnection(t *testing.T) {
	cfg := &config.GraphConfig{
		Nodes: []config.NodeConfig{
			{ID: "A", Type: "input", ImagePath: "in.png"},
			{ID: "B", Type: "input", ImagePath: "in.png", Inputs: []string{"A"}},
		},
	}

	e := New()
	err := e.LoadGraph(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrSourceHasInputs)
}

func TestExecutor_ResultFallsBackToLastNode(t *testing.T) {
	dir := t.TempDir()
	inPath := writeTestImage(t, dir, 2, 2, 100)

	// no sink: A(input) -> B(brightness)
	cfg := &config.GraphConfig{
		Nodes: []config.NodeConfig{
			{ID: "A", Type: "input", ImagePath: inPath},
			{ID: "B", Type: "brightness", Parameters: map[string]float64{"factor": 2.0}, Inputs: []string{"A"}},
		},
	}

	e := New()
	require.NoError(t, e.LoadGraph(context.Background(), cfg))
	result, err := e.Execute(context.Background())
	require.NoError(t, err)

	r, _, _, _ := result.At(0, 0)
	assert.Equal(t, byte(200), r, "terminal result is the last node in execution order")
}

func TestExecutor_ExecuteWithoutLoad(t *testing.T) {
	e := New()
	_, err := e.Execute(context.Background())
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestExecutor_MissingInputImage(t *testing.T) {
	dir := t.TempDir()
	cfg := chainConfig(filepath.Join(dir, "missing.png"), filepath.Join(dir, "out.png"))

	e := New()
	require.NoError(t, e.LoadGraph(context.Background(), cfg))
	_, err := e.Execute(context.Background())
	assert.ErrorIs(t, err, imaging.ErrLoad)
	assert.Equal(t, StateFailed, e.State())
}

func TestExecutor_InvalidParameterFailsNode(t *testing.T) {
	dir := t.TempDir()
	inPath := writeTestImage(t, dir, 2, 2, 100)
	cfg := chainConfig(inPath, filepath.Join(dir, "out.png"))
	cfg.Nodes[1].Parameters = map[string]float64{"factor": 9.0}

	e := New()
	err := e.LoadGraph(context.Background(), cfg)
	assert.ErrorIs(t, err, ErrNodeCreation)
	assert.ErrorIs(t, err, ops.ErrInvalidParameter)
}

func TestExecutor_ContextCancellation(t *testing.T) {
	dir := t.TempDir()
	inPath := writeTestImage(t, dir, 2, 2, 100)

	e := New()
	require.NoError(t, e.LoadGraph(context.Background(), chainConfig(inPath, filepath.Join(dir, "out.png"))))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Execute(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateFailed, e.State())
}

func TestExecutor_LoadGraphFile(t *testing.T) {
	dir := t.TempDir()
	inPath := writeTestImage(t, dir, 2, 2, 100)
	outPath := filepath.Join(dir, "out.png")

	doc := `{
	  "input_node_id": "A",
	  "output_node_id": "C",
	  "nodes": [
	    {"id": "A", "type": "input", "image_path": ` + jsonString(inPath) + `},
	    {"id": "B", "type": "brightness", "parameters": {"factor": 1.5}},
	    {"id": "C", "type": "output", "image_path": ` + jsonString(outPath) + `}
	  ],
	  "connections": [
	    {"from_node": "A", "to_node": "B"},
	    {"from_node": "B", "to_node": "C"}
	  ]
	}`
	path := filepath.Join(dir, "graph.json")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	e := New()
	require.NoError(t, e.LoadGraphFile(context.Background(), path))
	_, err := e.Execute(context.Background())
	require.NoError(t, err)
	assert.FileExists(t, outPath)
}

func TestExecutor_SnapshotRecordedOnSuccess(t *testing.T) {
	dir := t.TempDir()
	inPath := writeTestImage(t, dir, 2, 2, 100)

	store := snapshot.NewStore(snapshot.Config{MaxEntries: 4})
	e := New(WithSnapshots(store))
	require.NoError(t, e.LoadGraph(context.Background(), chainConfig(inPath, filepath.Join(dir, "out.png"))))

	_, err := e.Execute(context.Background())
	require.NoError(t, err)

	results, err := store.Load(e.RunID())
	require.NoError(t, err)
	assert.Len(t, results, 3)
	r, _, _, _ := results["B"].At(0, 0)
	assert.Equal(t, byte(150), r)
}

func TestExecutor_ReloadClearsState(t *testing.T) {
	dir := t.TempDir()
	inPath := writeTestImage(t, dir, 2, 2, 100)
	outPath := filepath.Join(dir, "out.png")
	cfg := chainConfig(inPath, outPath)

	e := New()
	require.NoError(t, e.LoadGraph(context.Background(), cfg))
	_, err := e.Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, e.Stats().ExecutedNodes)

	require.NoError(t, e.LoadGraph(context.Background(), cfg))
	assert.Equal(t, 0, e.Stats().ExecutedNodes)
	assert.Nil(t, e.Result())
}

func jsonString(s string) string {
	out := `"`
	for _, r := range s {
		switch r {
		case '"', '\\':
			out += `\` + string(r)
		default:
			out += string(r)
		}
	}
	return out + `"`
}
