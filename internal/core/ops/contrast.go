package ops

import (
	"fmt"

	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/imaging"
)

func init() {
	defaultRegistry.Register(contrastOp{})
}

// contrastOp applies a linear contrast adjustment `v*factor + offset`.
type contrastOp struct{}

func (contrastOp) Name() string { return "contrast" }

func (contrastOp) Apply(buf *imaging.Buffer, region imaging.Region, params map[string]float64) (*imaging.Buffer, error) {
	if buf.IsEmpty() {
		return nil, ErrEmptyInput
	}
	factor := param(params, "factor", 1.0)
	offset := param(params, "brightness_offset", 0.0)

	out := buf.Clone()
	sub := buf.SubBuffer(region)
	for y := 0; y < sub.Height; y++ {
		for x := 0; x < sub.Width; x++ {
			r, g, b, a := sub.At(x, y)
			sub.Set(x, y,
				clampByte(float64(r)*factor+offset),
				clampByte(float64(g)*factor+offset),
				clampByte(float64(b)*factor+offset),
				a)
		}
	}
	res := region.Resolve(buf.Width, buf.Height)
	out.Paste(sub, res.X, res.Y)
	return out, nil
}

func (contrastOp) ValidateParams(params map[string]float64) error {
	if factor, ok := params["factor"]; ok {
		if factor < 0.0 || factor > 3.0 {
			return fmt.Errorf("%w: contrast factor must be between 0.0 and 3.0, got %g", ErrInvalidParameter, factor)
		}
	}
	if offset, ok := params["brightness_offset"]; ok {
		if offset < -100.0 || offset > 100.0 {
			return fmt.Errorf("%w: brightness offset must be between -100 and 100, got %g", ErrInvalidParameter, offset)
		}
	}
	return nil
}
