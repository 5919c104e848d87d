package quantum

import "errors"

// Domain errors for state and gate operations.
var (
	// ErrInvalidParameter indicates a malformed width, position, outcome or gate.
	ErrInvalidParameter = errors.New("quantum: invalid parameter")

	// ErrDimensionMismatch indicates a state or gate whose size disagrees with the caller's.
	ErrDimensionMismatch = errors.New("quantum: dimension mismatch")

	// ErrNormalizationFailure indicates a vector with no probability mass left to normalize.
	ErrNormalizationFailure = errors.New("quantum: normalization failure")

	// ErrPreconditionFailed indicates a state that is not in the form an operation requires.
	ErrPreconditionFailed = errors.New("quantum: precondition failed")

	// ErrNotUnitary indicates a gate matrix that fails U†U = I.
	ErrNotUnitary = errors.New("quantum: matrix is not unitary")
)

// OpError wraps an error with the name of the pipeline operation that failed.
type OpError struct {
	Op      string
	Wrapped error
}

func (e *OpError) Error() string {
	return e.Op + ": " + e.Wrapped.Error()
}

func (e *OpError) Unwrap() error {
	return e.Wrapped
}
