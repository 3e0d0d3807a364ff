package imaging

// Buffer is an owned 2-D RGBA pixel buffer. Pixels are stored interleaved,
// four bytes per pixel, row-major. Fields are exported so codecs can
// serialize buffers directly.
type Buffer struct {
	Width  int    `json:"width" msgpack:"width"`
	Height int    `json:"height" msgpack:"height"`
	Pix    []byte `json:"pix" msgpack:"pix"`
}

const bytesPerPixel = 4

// NewBuffer allocates a zeroed buffer of the given dimensions.
func NewBuffer(width, height int) *Buffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*bytesPerPixel),
	}
}

// IsEmpty reports whether the buffer holds no pixels.
func (b *Buffer) IsEmpty() bool {
	return b == nil || b.Width == 0 || b.Height == 0
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return nil
	}
	out := &Buffer{Width: b.Width, Height: b.Height, Pix: make([]byte, len(b.Pix))}
	copy(out.Pix, b.Pix)
	return out
}

func (b *Buffer) offset(x, y int) int {
	return (y*b.Width + x) * bytesPerPixel
}

// At returns the RGBA components of the pixel at (x, y).
func (b *Buffer) At(x, y int) (r, g, bl, a byte) {
	i := b.offset(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// Set writes the RGBA components of the pixel at (x, y).
func (b *Buffer) Set(x, y int, r, g, bl, a byte) {
	i := b.offset(x, y)
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
	b.Pix[i+3] = a
}

// SubBuffer copies the pixels covered by the region into a new buffer. The
// region is resolved against the buffer bounds first.
func (b *Buffer) SubBuffer(region Region) *Buffer {
	res := region.Resolve(b.Width, b.Height)
	out := NewBuffer(res.Width, res.Height)
	for y := 0; y < res.Height; y++ {
		srcStart := b.offset(res.X, res.Y+y)
		dstStart := out.offset(0, y)
		copy(out.Pix[dstStart:dstStart+res.Width*bytesPerPixel], b.Pix[srcStart:srcStart+res.Width*bytesPerPixel])
	}
	return out
}

// Paste copies src into the buffer with its top-left corner at (x, y).
// Pixels falling outside the buffer are dropped.
func (b *Buffer) Paste(src *Buffer, x, y int) {
	if src.IsEmpty() {
		return
	}
	for sy := 0; sy < src.Height; sy++ {
		dy := y + sy
		if dy < 0 || dy >= b.Height {
			continue
		}
		for sx := 0; sx < src.Width; sx++ {
			dx := x + sx
			if dx < 0 || dx >= b.Width {
				continue
			}
			si := src.offset(sx, sy)
			di := b.offset(dx, dy)
			copy(b.Pix[di:di+bytesPerPixel], src.Pix[si:si+bytesPerPixel])
		}
	}
}
