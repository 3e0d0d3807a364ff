package imaging

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "image/gif" // register decoder
)

// Load reads an image file and converts it to a Buffer. PNG, JPEG and GIF
// are accepted on input.
func Load(path string) (*Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrLoad, path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrLoad, path, err)
	}
	return FromImage(img), nil
}

// Save writes a buffer to an image file. The format is chosen by the file
// extension; PNG and JPEG are supported.
func Save(path string, buf *Buffer) error {
	if buf.IsEmpty() {
		return fmt.Errorf("%w: %q: %v", ErrSave, path, ErrNilBuffer)
	}

	ext := strings.ToLower(filepath.Ext(path))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrSave, path, err)
	}
	defer f.Close()

	img := buf.ToImage()
	switch ext {
	case ".png", "":
		err = png.Encode(f, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrSave, path, err)
	}
	return nil
}

// FromImage converts any image.Image into an owned Buffer.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	buf := NewBuffer(bounds.Dx(), bounds.Dy())
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			r, g, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			buf.Set(x, y, byte(r>>8), byte(g>>8), byte(b>>8), byte(a>>8))
		}
	}
	return buf
}

// ToImage exposes the buffer as a standard library image without copying.
func (b *Buffer) ToImage() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * bytesPerPixel,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}
