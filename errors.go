package exparray

import "errors"

var (
	ErrSizeLimitExceeded    = errors.New("array too long")
	ErrNegativeLength       = errors.New("negative array length")
	ErrSizeMismatch         = errors.New("array size different from the field describing its number of elements")
	ErrUnsupportedOperation = errors.New("operation not implemented")
	ErrNotTwoDimensional    = errors.New("single array treated as double array")
	ErrIndexOutOfRange      = errors.New("array index out of range")
)
