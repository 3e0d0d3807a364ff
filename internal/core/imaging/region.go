// Package imaging provides the pixel buffer and region-of-interest types
// shared by the pipeline and graph execution systems.
package imaging

// Region describes a rectangular sub-area of a buffer. A zero width and
// height is the sentinel for "use the entire buffer"; NewRegion keeps the
// FullImage flag consistent with that rule.
type Region struct {
	X         int  `json:"x"`
	Y         int  `json:"y"`
	Width     int  `json:"width"`
	Height    int  `json:"height"`
	FullImage bool `json:"full_image"`
}

// NewRegion builds a region, deriving the full-image flag from the
// zero-size sentinel.
func NewRegion(x, y, width, height int) Region {
	return Region{
		X:         x,
		Y:         y,
		Width:     width,
		Height:    height,
		FullImage: width == 0 && height == 0,
	}
}

// FullRegion returns the whole-buffer sentinel region.
func FullRegion() Region {
	return NewRegion(0, 0, 0, 0)
}

// Resolve clamps the region to a buffer of the given dimensions. A
// full-image region resolves to the whole buffer.
func (r Region) Resolve(width, height int) Region {
	if r.FullImage {
		return Region{X: 0, Y: 0, Width: width, Height: height}
	}

	x, y := r.X, r.Y
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x > width {
		x = width
	}
	if y > height {
		y = height
	}

	w, h := r.Width, r.Height
	if x+w > width {
		w = width - x
	}
	if y+h > height {
		h = height - y
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	return Region{X: x, Y: y, Width: w, Height: h}
}

// IsEmpty reports whether the region covers no pixels after resolution.
func (r Region) IsEmpty() bool {
	return !r.FullImage && (r.Width <= 0 || r.Height <= 0)
}
