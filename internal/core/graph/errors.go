package graph

import "errors"

// Domain errors
var (
	// Node errors
	ErrNilNode       = errors.New("node cannot be nil")
	ErrNodeNotFound  = errors.New("node not found")
	ErrDuplicateNode = errors.New("duplicate node ID")
	ErrInputArity    = errors.New("wrong number of inputs")

	// Graph errors
	ErrCyclicGraph  = errors.New("graph contains a cycle")
	ErrInvalidGraph = errors.New("invalid graph structure")
)
