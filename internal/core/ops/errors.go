package ops

import "errors"

// Operation library errors
var (
	ErrUnknownOperation = errors.New("unknown operation type")
	ErrInvalidParameter = errors.New("invalid operation parameter")
	ErrEmptyInput       = errors.New("operation input buffer is empty")
)
