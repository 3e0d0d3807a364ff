package ops

import (
	"fmt"

	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/imaging"
)

func init() {
	defaultRegistry.Register(brightnessOp{})
}

// brightnessOp scales pixel intensity by a factor.
type brightnessOp struct{}

func (brightnessOp) Name() string { return "brightness" }

func (brightnessOp) Apply(buf *imaging.Buffer, region imaging.Region, params map[string]float64) (*imaging.Buffer, error) {
	if buf.IsEmpty() {
		return nil, ErrEmptyInput
	}
	factor := param(params, "factor", 1.0)

	out := buf.Clone()
	sub := buf.SubBuffer(region)
	for y := 0; y < sub.Height; y++ {
		for x := 0; x < sub.Width; x++ {
			r, g, b, a := sub.At(x, y)
			sub.Set(x, y,
				clampByte(float64(r)*factor),
				clampByte(float64(g)*factor),
				clampByte(float64(b)*factor),
				a)
		}
	}
	res := region.Resolve(buf.Width, buf.Height)
	out.Paste(sub, res.X, res.Y)
	return out, nil
}

func (brightnessOp) ValidateParams(params map[string]float64) error {
	if factor, ok := params["factor"]; ok {
		if factor < 0.0 || factor > 5.0 {
			return fmt.Errorf("%w: brightness factor must be between 0.0 and 5.0, got %g", ErrInvalidParameter, factor)
		}
	}
	return nil
}
