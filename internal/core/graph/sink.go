package graph

import (
	"fmt"

	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/imaging"
)

// SinkNode persists its single input buffer to an external image path and
// passes the buffer through unchanged, so sinks can be chained.
type SinkNode struct {
	nodeCore
	imagePath string
}

// NewSinkNode creates a sink node. The image path may be empty at
// construction time and set later.
func NewSinkNode(id, imagePath string) *SinkNode {
	return &SinkNode{
		nodeCore:  newNodeCore(id, KindSink),
		imagePath: imagePath,
	}
}

// ImagePath returns the external path the node saves to.
func (n *SinkNode) ImagePath() string { return n.imagePath }

// SetImagePath updates the external path.
func (n *SinkNode) SetImagePath(path string) { n.imagePath = path }

// Execute saves the single input to disk and returns it unchanged. Save
// failures propagate as imaging.ErrSave.
func (n *SinkNode) Execute(inputs []*imaging.Buffer, _ imaging.Region, _ map[string]float64) (*imaging.Buffer, error) {
	if len(inputs) != 1 {
		return nil, fmt.Errorf("%w: sink node %q requires exactly one input, got %d", ErrInputArity, n.id, len(inputs))
	}
	if err := imaging.Save(n.imagePath, inputs[0]); err != nil {
		return nil, err
	}
	return inputs[0], nil
}
