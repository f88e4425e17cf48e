package curve

import "errors"

var (
	// ErrInvalidLength is returned when an encoded value has the wrong size
	ErrInvalidLength = errors.New("invalid encoding length")

	// ErrFieldOverflow is returned when an encoded field element is >= p
	ErrFieldOverflow = errors.New("field element overflows field prime")

	// ErrScalarOverflow is returned when an encoded scalar is >= n
	ErrScalarOverflow = errors.New("scalar overflows curve order")

	// ErrNotOnCurve is returned when no curve point has the given x coordinate
	ErrNotOnCurve = errors.New("x coordinate is not on the curve")

	// ErrInvalidPoint is returned when an operation is given an unusable point
	ErrInvalidPoint = errors.New("invalid point")

	// ErrNilScalar is returned when a required scalar is nil
	ErrNilScalar = errors.New("scalar cannot be nil")

	// ErrArithmetic is returned when a group operation yields a result that
	// is not on the curve
	ErrArithmetic = errors.New("group operation produced an invalid point")
)
