package ops

import (
	"fmt"

	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/imaging"
)

func init() {
	defaultRegistry.Register(cropOp{})
}

// cropOp reduces the buffer to the region itself. Unlike the other
// operations the region is the output, not pasted back.
type cropOp struct{}

func (cropOp) Name() string { return "crop" }

func (cropOp) Apply(buf *imaging.Buffer, region imaging.Region, params map[string]float64) (*imaging.Buffer, error) {
	if buf.IsEmpty() {
		return nil, ErrEmptyInput
	}
	sub := buf.SubBuffer(region)
	if sub.IsEmpty() {
		return nil, fmt.Errorf("%w: crop region is empty", ErrInvalidParameter)
	}
	return sub, nil
}

func (cropOp) ValidateParams(map[string]float64) error { return nil }
