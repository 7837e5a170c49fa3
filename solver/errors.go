package solver

import "errors"

var (
	// ErrInvalidArgument reports a negative capacity, a negative weight or
	// value, or mismatched slice lengths. Detected before any DP work; the
	// selection buffer is left untouched.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrOutOfRange reports an instance that exceeds the documented limits:
	// capacity above MaxCapacity, a DP table above MaxTableCells, or a total
	// value that would overflow an int32.
	ErrOutOfRange = errors.New("out of range")
)
