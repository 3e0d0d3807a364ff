package executor

import "errors"

// Executor errors
var (
	ErrNotLoaded        = errors.New("no graph loaded")
	ErrNodeCreation     = errors.New("failed to create node")
	ErrEmptyGraph       = errors.New("graph has no nodes")
	ErrNoExecutionOrder = errors.New("graph has no valid execution order")
	ErrSourceHasInputs  = errors.New("source node has incoming connections")

	// ErrUnresolvedDependency indicates a scheduling invariant violation,
	// not a user error: a predecessor had no cached result despite a valid
	// topological order.
	ErrUnresolvedDependency = errors.New("source node not executed")
)
