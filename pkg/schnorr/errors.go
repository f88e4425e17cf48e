package schnorr

import (
	"errors"
	"fmt"
)

// Kind classifies a verification fault
type Kind int

const (
	// KindNone means no fault: the call produced a boolean result
	KindNone Kind = iota
	// KindMalformedInput is a wrong-length input
	KindMalformedInput
	// KindInvalidEncoding is an out-of-range scalar or coordinate, or a
	// public key that is not on the curve
	KindInvalidEncoding
	// KindArithmeticFault is an internal group-operation failure
	KindArithmeticFault
)

var (
	// ErrMalformedInput is matched by faults of KindMalformedInput
	ErrMalformedInput = errors.New("malformed input")

	// ErrInvalidEncoding is matched by faults of KindInvalidEncoding
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrArithmeticFault is matched by faults of KindArithmeticFault
	ErrArithmeticFault = errors.New("arithmetic fault")
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMalformedInput:
		return "malformed_input"
	case KindInvalidEncoding:
		return "invalid_encoding"
	case KindArithmeticFault:
		return "arithmetic_fault"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindMalformedInput:
		return ErrMalformedInput
	case KindInvalidEncoding:
		return ErrInvalidEncoding
	case KindArithmeticFault:
		return ErrArithmeticFault
	default:
		return nil
	}
}

// Fault is returned when inputs cannot be verified at all. It is never
// returned for a signature that is merely wrong.
type Fault struct {
	Kind  Kind
	Field string
	Err   error
}

// NewFault builds a fault of the given kind for field, wrapping cause
func NewFault(kind Kind, field string, cause error) *Fault {
	return &Fault{Kind: kind, Field: field, Err: cause}
}

func (f *Fault) Error() string {
	msg := "schnorr: "
	if s := f.Kind.sentinel(); s != nil {
		msg += s.Error()
	} else {
		msg += f.Kind.String()
	}
	if f.Field != "" {
		msg += ": " + f.Field
	}
	if f.Err != nil {
		msg += ": " + f.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause to
// errors.Is and errors.As.
func (f *Fault) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := f.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if f.Err != nil {
		errs = append(errs, f.Err)
	}
	return errs
}

// KindOf classifies err. It returns KindNone for nil and for errors that
// are not verification faults.
func KindOf(err error) Kind {
	if err == nil {
		return KindNone
	}

	var f *Fault
	if errors.As(err, &f) {
		return f.Kind
	}

	switch {
	case errors.Is(err, ErrMalformedInput):
		return KindMalformedInput
	case errors.Is(err, ErrInvalidEncoding):
		return KindInvalidEncoding
	case errors.Is(err, ErrArithmeticFault):
		return KindArithmeticFault
	}
	return KindNone
}
