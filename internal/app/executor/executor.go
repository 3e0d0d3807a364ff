// Package executor runs graph pipelines: it builds a graph from its stored
// description, validates it, executes nodes in dependency order threading
// each node's inputs from upstream results, and exposes the terminal
// buffer plus run statistics.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/adapters/config"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/adapters/snapshot"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/graph"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/imaging"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/ops"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/ctxlog"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/infrastructure/metrics"
)

// State tracks the executor lifecycle.
type State string

const (
	StateUnloaded  State = "unloaded"
	StateLoaded    State = "loaded"
	StateValidated State = "validated"
	StateExecuting State = "executing"
	StateCompleted State = "completed"
	StateFailed    State = "failed"
)

// ProgressFunc is invoked once per node, before that node executes, with a
// 1-based completed count.
type ProgressFunc func(nodeName string, completed, total int)

// Stats is a point-in-time snapshot of one run.
type Stats struct {
	TotalNodes    int
	ExecutedNodes int
	Duration      time.Duration
}

// Executor owns one graph and the result cache of its current run. It is
// not safe for concurrent use; each run clears and repopulates the cache.
type Executor struct {
	graph     *graph.Graph
	registry  *ops.Registry
	snapshots *snapshot.Store
	results   map[string]*imaging.Buffer
	stats     Stats
	state     State
	runID     string
}

// Option configures an Executor.
type Option func(*Executor)

// WithRegistry overrides the default operation registry.
func WithRegistry(registry *ops.Registry) Option {
	return func(e *Executor) { e.registry = registry }
}

// WithSnapshots attaches a snapshot store; successful runs archive their
// node result sets there under the run ID.
func WithSnapshots(store *snapshot.Store) Option {
	return func(e *Executor) { e.snapshots = store }
}

// New creates an executor in the unloaded state.
func New(opts ...Option) *Executor {
	e := &Executor{
		registry: ops.Default(),
		results:  make(map[string]*imaging.Buffer),
		state:    StateUnloaded,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LoadGraphFile reads a graph document from disk and loads it.
func (e *Executor) LoadGraphFile(ctx context.Context, path string) error {
	cfg, err := config.ReadGraph(path)
	if err != nil {
		return err
	}
	return e.LoadGraph(ctx, cfg)
}

// LoadGraph clears any previous results, builds the graph from its
// configuration and validates it. Factory failures surface as
// ErrNodeCreation wrapping the underlying cause.
func (e *Executor) LoadGraph(ctx context.Context, cfg *config.GraphConfig) error {
	e.clearResults()

	g := graph.New()
	for _, nodeCfg := range cfg.Nodes {
		node, err := graph.NewNodeWithRegistry(nodeCfg.ID, nodeCfg.Type, nodeCfg.Parameters, nodeCfg.ImagePath, e.registry)
		if err != nil {
			e.state = StateFailed
			return fmt.Errorf("%w: %q: %w", ErrNodeCreation, nodeCfg.ID, err)
		}
		node.SetName(nodeCfg.Name)
		node.SetRegion(nodeCfg.Region.ToRegion())
		if err := g.AddNode(node); err != nil {
			e.state = StateFailed
			return fmt.Errorf("%w: %q: %w", ErrNodeCreation, nodeCfg.ID, err)
		}
	}
	g.SetInputNodeID(cfg.InputNodeID)
	g.SetOutputNodeID(cfg.OutputNodeID)

	// Explicit port-qualified connections first, then the per-node input
	// lists; an input already covered by an explicit connection is skipped.
	wired := make(map[[2]string]bool, len(cfg.Connections))
	for _, conn := range cfg.Connections {
		if err := g.AddConnection(conn.FromNode, conn.FromPort, conn.ToNode, conn.ToPort); err != nil {
			e.state = StateFailed
			return fmt.Errorf("connection %s -> %s: %w", conn.FromNode, conn.ToNode, err)
		}
		wired[[2]string{conn.FromNode, conn.ToNode}] = true
	}
	for _, nodeCfg := range cfg.Nodes {
		for _, inputID := range nodeCfg.Inputs {
			if wired[[2]string{inputID, nodeCfg.ID}] {
				continue
			}
			if err := g.AddConnection(inputID, 0, nodeCfg.ID, 0); err != nil {
				e.state = StateFailed
				return fmt.Errorf("connection %s -> %s: %w", inputID, nodeCfg.ID, err)
			}
			wired[[2]string{inputID, nodeCfg.ID}] = true
		}
	}

	e.graph = g
	e.stats = Stats{TotalNodes: g.NodeCount()}
	e.state = StateLoaded

	if err := e.ValidateGraph(ctx); err != nil {
		e.state = StateFailed
		return err
	}
	metrics.IncGraphsLoaded()
	return nil
}

// ValidateGraph checks the loaded graph: it must be acyclic, source nodes
// must have no incoming connections, and a sink with outgoing connections
// is reported as a warning only.
func (e *Executor) ValidateGraph(ctx context.Context) error {
	if e.graph == nil {
		return ErrNotLoaded
	}
	logger := ctxlog.FromContext(ctx)

	if e.graph.HasCycles() {
		return graph.ErrCyclicGraph
	}
	if !e.graph.Validate() {
		return graph.ErrInvalidGraph
	}

	for _, id := range e.graph.NodeIDs() {
		node, _ := e.graph.Node(id)
		switch node.Kind() {
		case graph.KindSource:
			if len(e.graph.IncomingConnections(id)) > 0 {
				return fmt.Errorf("%w: %q", ErrSourceHasInputs, node.Name())
			}
		case graph.KindSink:
			if len(e.graph.OutgoingConnections(id)) > 0 {
				logger.Warn("sink node has outgoing connections", "node", node.Name())
			}
		}
	}

	e.state = StateValidated
	return nil
}

// Execute runs the graph without progress reporting.
func (e *Executor) Execute(ctx context.Context) (*imaging.Buffer, error) {
	return e.ExecuteWithProgress(ctx, nil)
}

// ExecuteWithProgress runs every node in topological order. Each node's
// inputs are resolved from the cached results of its predecessors in
// incoming-connection order. The progress callback, when set, fires before
// each node with a 1-based index.
func (e *Executor) ExecuteWithProgress(ctx context.Context, progress ProgressFunc) (*imaging.Buffer, error) {
	if e.graph == nil {
		return nil, ErrNotLoaded
	}

	start := time.Now()
	e.clearResults()
	e.runID = uuid.New().String()

	if e.graph.IsEmpty() {
		return e.fail(ErrEmptyGraph)
	}
	order := e.graph.TopologicalOrder()
	if len(order) == 0 {
		if e.graph.HasCycles() {
			return e.fail(graph.ErrCyclicGraph)
		}
		return e.fail(ErrNoExecutionOrder)
	}

	e.state = StateExecuting
	logger := ctxlog.FromContext(ctx)
	logger.Debug("executing graph", "run_id", e.runID, "nodes", len(order))

	for i, id := range order {
		if err := ctx.Err(); err != nil {
			return e.fail(err)
		}

		node, ok := e.graph.Node(id)
		if !ok {
			return e.fail(fmt.Errorf("%w: %q", graph.ErrNodeNotFound, id))
		}

		if progress != nil {
			progress(node.Name(), i+1, len(order))
		}

		inputs, err := e.nodeInputs(id)
		if err != nil {
			return e.fail(err)
		}

		result, err := node.Execute(inputs, node.Region(), node.Params())
		if err != nil {
			return e.fail(fmt.Errorf("node %q: %w", id, err))
		}

		node.SetResult(result)
		e.results[id] = result
		e.stats.ExecutedNodes++
		metrics.IncOperationApplies(node.Kind())
	}

	e.stats.Duration = time.Since(start)
	e.state = StateCompleted
	metrics.IncExecutions()
	metrics.AddNodesExecuted(int64(e.stats.ExecutedNodes))
	metrics.SetLastExecutionMs(e.stats.Duration.Milliseconds())

	if e.snapshots != nil {
		if err := e.snapshots.Record(e.runID, e.results); err != nil {
			logger.Warn("could not record run snapshot", "run_id", e.runID, "error", err)
		}
	}

	return e.Result(), nil
}

// nodeInputs resolves a node's input buffers from the cached results of
// the nodes with a connection into it, in incoming-connection order.
func (e *Executor) nodeInputs(id string) ([]*imaging.Buffer, error) {
	incoming := e.graph.IncomingConnections(id)
	inputs := make([]*imaging.Buffer, 0, len(incoming))
	for _, conn := range incoming {
		result, ok := e.results[conn.FromNode]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnresolvedDependency, conn.FromNode)
		}
		inputs = append(inputs, result)
	}
	return inputs, nil
}

// Result returns the terminal buffer: the first sink node's cached result,
// or, when the graph has no sink, the result of the last node in
// topological order. Nil when no results are cached.
func (e *Executor) Result() *imaging.Buffer {
	if len(e.results) == 0 {
		return nil
	}
	for _, id := range e.graph.NodesByKind(graph.KindSink) {
		if result, ok := e.results[id]; ok {
			return result
		}
	}
	order := e.graph.TopologicalOrder()
	for i := len(order) - 1; i >= 0; i-- {
		if result, ok := e.results[order[i]]; ok {
			return result
		}
	}
	return nil
}

// Stats returns a point-in-time snapshot of the run statistics.
func (e *Executor) Stats() Stats { return e.stats }

// State returns the executor lifecycle state.
func (e *Executor) State() State { return e.state }

// RunID returns the identifier of the most recent run.
func (e *Executor) RunID() string { return e.runID }

// Graph exposes the loaded graph for inspection.
func (e *Executor) Graph() *graph.Graph { return e.graph }

// ClearResults drops all cached node results and execution counters.
func (e *Executor) ClearResults() { e.clearResults() }

func (e *Executor) clearResults() {
	e.results = make(map[string]*imaging.Buffer)
	e.stats.ExecutedNodes = 0
	e.stats.Duration = 0
	if e.graph != nil {
		for _, id := range e.graph.NodeIDs() {
			if node, ok := e.graph.Node(id); ok {
				node.ResetExecution()
			}
		}
	}
}

func (e *Executor) fail(err error) (*imaging.Buffer, error) {
	e.state = StateFailed
	metrics.IncExecutionsFailed()
	return nil, err
}
