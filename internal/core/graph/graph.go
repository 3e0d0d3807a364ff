package graph

import (
	"sort"
)

// ExecutionLevel is a set of node identifiers with no unresolved dependency
// on each other: safe to run in any order once prior levels are complete.
type ExecutionLevel []string

// ExecutionLevels is the breadth-first topological layering of a graph.
type ExecutionLevels []ExecutionLevel

// Graph owns its nodes by identifier and the port-qualified connections
// between them. Nodes reference neighbours by identifier only, so the graph
// is the sole owner even when the logical topology is dense.
//
// The leveled topological order is cached and recomputed after every
// structural mutation; it is empty while the graph contains a cycle.
type Graph struct {
	nodes        map[string]Node
	connections  []Connection
	inputNodeID  string
	outputNodeID string
	levels       ExecutionLevels
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]Node)}
}

// AddNode adds a node under its identifier.
func (g *Graph) AddNode(node Node) error {
	if node == nil {
		return ErrNilNode
	}
	if _, exists := g.nodes[node.ID()]; exists {
		return ErrDuplicateNode
	}
	g.nodes[node.ID()] = node
	g.updateExecutionLevels()
	return nil
}

// Node looks up a node by identifier.
func (g *Graph) Node(id string) (Node, bool) {
	node, ok := g.nodes[id]
	return node, ok
}

// HasNode reports whether the identifier is present.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// RemoveNode deletes a node and strips it from every other node's
// adjacency lists and from the connection list. It reports whether the
// node existed.
func (g *Graph) RemoveNode(id string) bool {
	node, ok := g.nodes[id]
	if !ok {
		return false
	}

	for _, inputID := range node.InputIDs() {
		if upstream, ok := g.nodes[inputID]; ok {
			upstream.RemoveOutput(id)
		}
	}
	for _, outputID := range node.OutputIDs() {
		if downstream, ok := g.nodes[outputID]; ok {
			downstream.RemoveInput(id)
		}
	}

	kept := g.connections[:0]
	for _, conn := range g.connections {
		if conn.FromNode != id && conn.ToNode != id {
			kept = append(kept, conn)
		}
	}
	g.connections = kept

	delete(g.nodes, id)
	g.updateExecutionLevels()
	return true
}

// Connect adds a plain directed edge between two existing nodes, updating
// both endpoints' adjacency lists.
func (g *Graph) Connect(fromID, toID string) error {
	from, ok := g.nodes[fromID]
	if !ok {
		return ErrNodeNotFound
	}
	to, ok := g.nodes[toID]
	if !ok {
		return ErrNodeNotFound
	}
	from.AddOutput(toID)
	to.AddInput(fromID)
	g.updateExecutionLevels()
	return nil
}

// Disconnect removes a plain directed edge between two nodes.
func (g *Graph) Disconnect(fromID, toID string) error {
	from, ok := g.nodes[fromID]
	if !ok {
		return ErrNodeNotFound
	}
	to, ok := g.nodes[toID]
	if !ok {
		return ErrNodeNotFound
	}
	from.RemoveOutput(toID)
	to.RemoveInput(fromID)
	g.updateExecutionLevels()
	return nil
}

// AddConnection records a port-qualified connection and keeps the plain
// adjacency lists on both endpoints in sync with it.
func (g *Graph) AddConnection(fromID string, fromPort int, toID string, toPort int) error {
	from, ok := g.nodes[fromID]
	if !ok {
		return ErrNodeNotFound
	}
	to, ok := g.nodes[toID]
	if !ok {
		return ErrNodeNotFound
	}
	g.connections = append(g.connections, Connection{
		FromNode: fromID,
		FromPort: fromPort,
		ToNode:   toID,
		ToPort:   toPort,
	})
	from.AddOutput(toID)
	to.AddInput(fromID)
	g.updateExecutionLevels()
	return nil
}

// Connections returns the ordered connection list.
func (g *Graph) Connections() []Connection {
	return g.connections
}

// IncomingConnections returns the connections ending at the node, in
// declaration order.
func (g *Graph) IncomingConnections(id string) []Connection {
	var incoming []Connection
	for _, conn := range g.connections {
		if conn.ToNode == id {
			incoming = append(incoming, conn)
		}
	}
	return incoming
}

// OutgoingConnections returns the connections starting at the node, in
// declaration order.
func (g *Graph) OutgoingConnections(id string) []Connection {
	var outgoing []Connection
	for _, conn := range g.connections {
		if conn.FromNode == id {
			outgoing = append(outgoing, conn)
		}
	}
	return outgoing
}

// NodeIDs returns all node identifiers in sorted order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NodesByKind returns the identifiers of nodes with the given kind, in
// sorted order.
func (g *Graph) NodesByKind(kind string) []string {
	var ids []string
	for id, node := range g.nodes {
		if node.Kind() == kind {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// IsEmpty reports whether the graph has no nodes.
func (g *Graph) IsEmpty() bool { return len(g.nodes) == 0 }

// InputNodeID returns the advisory designated input node identifier.
func (g *Graph) InputNodeID() string { return g.inputNodeID }

// OutputNodeID returns the advisory designated output node identifier.
func (g *Graph) OutputNodeID() string { return g.outputNodeID }

// SetInputNodeID designates the input node.
func (g *Graph) SetInputNodeID(id string) { g.inputNodeID = id }

// SetOutputNodeID designates the output node.
func (g *Graph) SetOutputNodeID(id string) { g.outputNodeID = id }

// Clear removes all nodes, connections and cached levels.
func (g *Graph) Clear() {
	g.nodes = make(map[string]Node)
	g.connections = nil
	g.inputNodeID = ""
	g.outputNodeID = ""
	g.levels = nil
}

// Validate checks structural well-formedness: designated input/output
// identifiers resolve when set, the graph is acyclic, and every adjacency
// reference resolves to an existing node.
func (g *Graph) Validate() bool {
	if g.inputNodeID != "" && !g.HasNode(g.inputNodeID) {
		return false
	}
	if g.outputNodeID != "" && !g.HasNode(g.outputNodeID) {
		return false
	}
	if g.HasCycles() {
		return false
	}
	for _, node := range g.nodes {
		for _, inputID := range node.InputIDs() {
			if !g.HasNode(inputID) {
				return false
			}
		}
		for _, outputID := range node.OutputIDs() {
			if !g.HasNode(outputID) {
				return false
			}
		}
	}
	return true
}

// HasCycles detects directed cycles with a depth-first search over every
// component, tracking a visited set and the current recursion stack; a
// back-edge into the stack signals a cycle.
func (g *Graph) HasCycles() bool {
	visited := make(map[string]bool, len(g.nodes))
	onStack := make(map[string]bool, len(g.nodes))

	var visit func(id string) bool
	visit = func(id string) bool {
		visited[id] = true
		onStack[id] = true

		if node, ok := g.nodes[id]; ok {
			for _, outputID := range node.OutputIDs() {
				if !visited[outputID] {
					if visit(outputID) {
						return true
					}
				} else if onStack[outputID] {
					return true
				}
			}
		}

		delete(onStack, id)
		return false
	}

	for id := range g.nodes {
		if !visited[id] {
			if visit(id) {
				return true
			}
		}
	}
	return false
}

// TopologicalSort computes the leveled topological order with Kahn's
// algorithm: drain the frontier of zero in-degree nodes as one level,
// decrement downstream in-degrees, repeat. If fewer nodes are processed
// than exist, the graph is cyclic and the empty level sequence is returned.
func (g *Graph) TopologicalSort() ExecutionLevels {
	inDegree := make(map[string]int, len(g.nodes))
	for id := range g.nodes {
		inDegree[id] = 0
	}
	for _, node := range g.nodes {
		for _, outputID := range node.OutputIDs() {
			inDegree[outputID]++
		}
	}

	// Seed the frontier in sorted order so structurally identical graphs
	// produce the same flattened order.
	var frontier []string
	for _, id := range g.NodeIDs() {
		if inDegree[id] == 0 {
			frontier = append(frontier, id)
		}
	}

	var levels ExecutionLevels
	processed := 0
	for len(frontier) > 0 {
		level := make(ExecutionLevel, 0, len(frontier))
		var next []string
		for _, id := range frontier {
			level = append(level, id)
			processed++
			if node, ok := g.nodes[id]; ok {
				for _, outputID := range node.OutputIDs() {
					inDegree[outputID]--
					if inDegree[outputID] == 0 {
						next = append(next, outputID)
					}
				}
			}
		}
		sort.Strings(next)
		levels = append(levels, level)
		frontier = next
	}

	if processed != len(g.nodes) {
		// cycle: no valid order exists
		return ExecutionLevels{}
	}
	return levels
}

// ExecutionLevels returns the cached leveled order. The cache is refreshed
// by every structural mutation and is empty while the graph is cyclic.
func (g *Graph) ExecutionLevels() ExecutionLevels {
	return g.levels
}

// TopologicalOrder flattens the cached levels into one sequence preserving
// level order.
func (g *Graph) TopologicalOrder() []string {
	var order []string
	for _, level := range g.levels {
		order = append(order, level...)
	}
	return order
}

func (g *Graph) updateExecutionLevels() {
	g.levels = g.TopologicalSort()
}
