package graph

import (
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/ops"
)

// NewNode constructs the node variant matching the type tag: "input"
// builds a source, "output" a sink, and any other tag is treated as an
// operation library entry and builds a transform. Unknown operation tags
// fail here so malformed graphs are rejected at build time.
func NewNode(id, typeTag string, params map[string]float64, imagePath string) (Node, error) {
	return NewNodeWithRegistry(id, typeTag, params, imagePath, ops.Default())
}

// NewNodeWithRegistry is NewNode with an explicit operation registry.
func NewNodeWithRegistry(id, typeTag string, params map[string]float64, imagePath string, registry *ops.Registry) (Node, error) {
	var node Node
	switch typeTag {
	case KindSource:
		node = NewSourceNode(id, imagePath)
	case KindSink:
		node = NewSinkNode(id, imagePath)
	default:
		transform, err := NewTransformNode(id, typeTag, registry)
		if err != nil {
			return nil, err
		}
		// reject out-of-range parameters at build time, not execute time
		if err := transform.Operation().ValidateParams(params); err != nil {
			return nil, err
		}
		node = transform
	}
	if len(params) > 0 {
		node.SetParams(params)
	}
	return node, nil
}
