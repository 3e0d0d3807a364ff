package graph

import (
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/imaging"
)

// SourceNode loads a buffer from an external image path. It ignores
// upstream inputs entirely.
type SourceNode struct {
	nodeCore
	imagePath string
}

// NewSourceNode creates a source node. The image path may be empty at
// construction time and set later.
func NewSourceNode(id, imagePath string) *SourceNode {
	return &SourceNode{
		nodeCore:  newNodeCore(id, KindSource),
		imagePath: imagePath,
	}
}

// ImagePath returns the external path the node loads from.
func (n *SourceNode) ImagePath() string { return n.imagePath }

// SetImagePath updates the external path.
func (n *SourceNode) SetImagePath(path string) { n.imagePath = path }

// Execute loads the image from disk. Load failures propagate as
// imaging.ErrLoad.
func (n *SourceNode) Execute(_ []*imaging.Buffer, _ imaging.Region, _ map[string]float64) (*imaging.Buffer, error) {
	return imaging.Load(n.imagePath)
}
