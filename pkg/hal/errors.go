package hal

import "errors"

var (
	// ErrInvalidArgument reports malformed construction parameters or a
	// negative elapsed time. Grid state is unchanged.
	ErrInvalidArgument = errors.New("hal: invalid argument")
	// ErrDimensionMismatch reports a full target matrix whose shape differs
	// from the grid.
	ErrDimensionMismatch = errors.New("hal: dimension mismatch")
	// ErrIndexOutOfRange reports a sparse target update outside the grid.
	ErrIndexOutOfRange = errors.New("hal: index out of range")
)
