// Package graph provides the node and graph entities of the graph-based
// pipeline system: identifier-indexed nodes, port-qualified connections,
// cycle detection and leveled topological scheduling.
package graph

import (
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/imaging"
)

// Reserved node type tags. Any other tag names an operation library entry.
const (
	KindSource = "input"
	KindSink   = "output"
)

// Node is a named, typed unit of work in the graph. Source nodes load a
// buffer from outside, sink nodes persist one, transform nodes wrap a
// single operation library call.
type Node interface {
	// ID returns the node identifier, unique within its owning graph.
	ID() string
	// Name returns the display name, defaulting to the identifier.
	Name() string
	// Kind returns the variant tag: "input", "output", or the wrapped
	// operation's name for transforms.
	Kind() string

	// Execute runs the node. It reads but never mutates graph structure.
	Execute(inputs []*imaging.Buffer, region imaging.Region, params map[string]float64) (*imaging.Buffer, error)

	Params() map[string]float64
	SetParams(params map[string]float64)
	Region() imaging.Region
	SetRegion(region imaging.Region)
	SetName(name string)

	// InputIDs and OutputIDs are the plain adjacency lists: ordered,
	// deduplicated upstream and downstream node identifiers.
	InputIDs() []string
	OutputIDs() []string
	AddInput(id string)
	AddOutput(id string)
	RemoveInput(id string) bool
	RemoveOutput(id string) bool
	HasInput(id string) bool
	HasOutput(id string) bool

	// Executed and Result carry the per-node execution cache; both are
	// cleared together by ResetExecution.
	Executed() bool
	Result() *imaging.Buffer
	SetResult(result *imaging.Buffer)
	ResetExecution()
}

// nodeCore holds the state shared by every node variant.
type nodeCore struct {
	id       string
	name     string
	kind     string
	params   map[string]float64
	inputs   []string
	outputs  []string
	region   imaging.Region
	executed bool
	result   *imaging.Buffer
}

func newNodeCore(id, kind string) nodeCore {
	return nodeCore{
		id:     id,
		name:   id,
		kind:   kind,
		params: make(map[string]float64),
		region: imaging.FullRegion(),
	}
}

func (n *nodeCore) ID() string   { return n.id }
func (n *nodeCore) Name() string { return n.name }
func (n *nodeCore) Kind() string { return n.kind }

func (n *nodeCore) SetName(name string) {
	if name != "" {
		n.name = name
	}
}

func (n *nodeCore) Params() map[string]float64 { return n.params }

func (n *nodeCore) SetParams(params map[string]float64) {
	n.params = make(map[string]float64, len(params))
	for k, v := range params {
		n.params[k] = v
	}
}

func (n *nodeCore) Region() imaging.Region          { return n.region }
func (n *nodeCore) SetRegion(region imaging.Region) { n.region = region }

func (n *nodeCore) InputIDs() []string  { return n.inputs }
func (n *nodeCore) OutputIDs() []string { return n.outputs }

// AddInput appends an upstream identifier; adding one already present is a
// no-op.
func (n *nodeCore) AddInput(id string) {
	if !n.HasInput(id) {
		n.inputs = append(n.inputs, id)
	}
}

func (n *nodeCore) AddOutput(id string) {
	if !n.HasOutput(id) {
		n.outputs = append(n.outputs, id)
	}
}

func (n *nodeCore) RemoveInput(id string) bool {
	for i, in := range n.inputs {
		if in == id {
			n.inputs = append(n.inputs[:i], n.inputs[i+1:]...)
			return true
		}
	}
	return false
}

func (n *nodeCore) RemoveOutput(id string) bool {
	for i, out := range n.outputs {
		if out == id {
			n.outputs = append(n.outputs[:i], n.outputs[i+1:]...)
			return true
		}
	}
	return false
}

func (n *nodeCore) HasInput(id string) bool {
	for _, in := range n.inputs {
		if in == id {
			return true
		}
	}
	return false
}

func (n *nodeCore) HasOutput(id string) bool {
	for _, out := range n.outputs {
		if out == id {
			return true
		}
	}
	return false
}

func (n *nodeCore) Executed() bool          { return n.executed }
func (n *nodeCore) Result() *imaging.Buffer { return n.result }

func (n *nodeCore) SetResult(result *imaging.Buffer) {
	n.result = result
	n.executed = true
}

func (n *nodeCore) ResetExecution() {
	n.executed = false
	n.result = nil
}
