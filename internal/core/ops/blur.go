package ops

import (
	"fmt"

	"github.com/bonbon-on-fire/SEA-Vision-Internship-2025/internal/core/imaging"
)

func init() {
	defaultRegistry.Register(blurOp{})
}

// blurOp applies a box blur with an odd kernel size over the region.
type blurOp struct{}

func (blurOp) Name() string { return "blur" }

func (blurOp) Apply(buf *imaging.Buffer, region imaging.Region, params map[string]float64) (*imaging.Buffer, error) {
	if buf.IsEmpty() {
		return nil, ErrEmptyInput
	}
	kernel := int(param(params, "kernel_size", 5))
	if kernel%2 == 0 {
		kernel++
	}
	radius := kernel / 2

	out := buf.Clone()
	sub := buf.SubBuffer(region)
	blurred := imaging.NewBuffer(sub.Width, sub.Height)
	for y := 0; y < sub.Height; y++ {
		for x := 0; x < sub.Width; x++ {
			var sr, sg, sb, sa, n int
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					sx, sy := x+dx, y+dy
					if sx < 0 || sx >= sub.Width || sy < 0 || sy >= sub.Height {
						continue
					}
					r, g, b, a := sub.At(sx, sy)
					sr += int(r)
					sg += int(g)
					sb += int(b)
					sa += int(a)
					n++
				}
			}
			blurred.Set(x, y, byte(sr/n), byte(sg/n), byte(sb/n), byte(sa/n))
		}
	}
	res := region.Resolve(buf.Width, buf.Height)
	out.Paste(blurred, res.X, res.Y)
	return out, nil
}

func (blurOp) ValidateParams(params map[string]float64) error {
	if kernel, ok := params["kernel_size"]; ok {
		if kernel < 3 || kernel > 31 {
			return fmt.Errorf("%w: blur kernel size must be between 3 and 31, got %g", ErrInvalidParameter, kernel)
		}
	}
	return nil
}
