package graph

import (
	"fmt"

	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/imaging"
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/ops"
)

// TransformNode wraps one operation library entry. The node's kind is the
// wrapped operation's name.
type TransformNode struct {
	nodeCore
	op ops.Operation
}

// NewTransformNode creates a transform wrapping the named operation from
// the registry. An unknown name fails at build time, not execute time.
func NewTransformNode(id string, operationType string, registry *ops.Registry) (*TransformNode, error) {
	op, err := registry.Lookup(operationType)
	if err != nil {
		return nil, err
	}
	return &TransformNode{
		nodeCore: newNodeCore(id, operationType),
		op:       op,
	}, nil
}

// Operation returns the wrapped operation.
func (n *TransformNode) Operation() ops.Operation { return n.op }

// Execute applies the wrapped operation to the single input, forwarding
// region and parameters verbatim.
func (n *TransformNode) Execute(inputs []*imaging.Buffer, region imaging.Region, params map[string]float64) (*imaging.Buffer, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("%w: transform node %q requires exactly one input, got %d", ErrInputArity, n.id, len(inputs))
	}
	return n.op.Apply(inputs[0], region, params)
}
