package ops

import (
	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/imaging"
)

func init() {
	defaultRegistry.Register(grayscaleOp{})
	defaultRegistry.Register(invertOp{})
}

// grayscaleOp converts the region to luminance (BT.601 weights).
type grayscaleOp struct{}

func (grayscaleOp) Name() string { return "grayscale" }

func (grayscaleOp) Apply(buf *imaging.Buffer, region imaging.Region, params map[string]float64) (*imaging.Buffer, error) {
	if buf.IsEmpty() {
		return nil, ErrEmptyInput
	}
	out := buf.Clone()
	sub := buf.SubBuffer(region)
	for y := 0; y < sub.Height; y++ {
		for x := 0; x < sub.Width; x++ {
			r, g, b, a := sub.At(x, y)
			lum := clampByte(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b))
			sub.Set(x, y, lum, lum, lum, a)
		}
	}
	res := region.Resolve(buf.Width, buf.Height)
	out.Paste(sub, res.X, res.Y)
	return out, nil
}

func (grayscaleOp) ValidateParams(map[string]float64) error { return nil }

// invertOp inverts the RGB channels of the region.
type invertOp struct{}

func (invertOp) Name() string { return "invert" }

func (invertOp) Apply(buf *imaging.Buffer, region imaging.Region, params map[string]float64) (*imaging.Buffer, error) {
	if buf.IsEmpty() {
		return nil, ErrEmptyInput
	}
	out := buf.Clone()
	sub := buf.SubBuffer(region)
	for y := 0; y < sub.Height; y++ {
		for x := 0; x < sub.Width; x++ {
			r, g, b, a := sub.At(x, y)
			sub.Set(x, y, 255-r, 255-g, 255-b, a)
		}
	}
	res := region.Resolve(buf.Width, buf.Height)
	out.Paste(sub, res.X, res.Y)
	return out, nil
}

func (invertOp) ValidateParams(map[string]float64) error { return nil }
