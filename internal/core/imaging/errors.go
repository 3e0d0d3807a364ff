package imaging

import "errors"

// I/O errors
var (
	ErrLoad = errors.New("could not load image")
	ErrSave = errors.New("could not save image")

	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrNilBuffer         = errors.New("buffer is nil or empty")
)
