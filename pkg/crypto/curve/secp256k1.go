package curve

import (
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// ParseFieldElement decodes a 32-byte big-endian field element and rejects
// values >= p.
func ParseFieldElement(b []byte) (secp256k1.FieldVal, error) {
	var f secp256k1.FieldVal
	if len(b) != FieldSize {
		return f, ErrInvalidLength
	}
	if overflow := f.SetByteSlice(b); overflow {
		f.Zero()
		return f, ErrFieldOverflow
	}
	return f, nil
}

// ParseScalar decodes a 32-byte big-endian scalar and rejects values >= n
func ParseScalar(b []byte) (secp256k1.ModNScalar, error) {
	var s secp256k1.ModNScalar
	if len(b) != ScalarSize {
		return s, ErrInvalidLength
	}
	if overflow := s.SetByteSlice(b); overflow {
		s.Zero()
		return s, ErrScalarOverflow
	}
	return s, nil
}

// ReduceScalar interprets a 32-byte digest as an integer reduced mod n
func ReduceScalar(digest *[32]byte) secp256k1.ModNScalar {
	var s secp256k1.ModNScalar
	s.SetBytes(digest)
	return s
}

// LiftX returns the point with the given x coordinate and an even y
// coordinate. It fails with ErrFieldOverflow when x >= p and ErrNotOnCurve
// when x^3 + 7 is not a square.
func LiftX(xBytes []byte) (*Point, error) {
	x, err := ParseFieldElement(xBytes)
	if err != nil {
		return nil, err
	}

	var y secp256k1.FieldVal
	if !secp256k1.DecompressY(&x, false, &y) {
		return nil, ErrNotOnCurve
	}
	y.Normalize()

	p := &Point{x: x, y: y}
	if !p.IsOnCurve() || !p.HasEvenY() {
		return nil, ErrArithmetic
	}
	return p, nil
}

// SchnorrCombination computes s*G - e*P.
//
// Both scalars and the point are public in verification, so the variable-time
// multiplication routines are used.
func SchnorrCombination(s, e *secp256k1.ModNScalar, p *Point) (*Point, error) {
	if s == nil || e == nil {
		return nil, ErrNilScalar
	}
	if p.IsInfinity() {
		return nil, ErrInvalidPoint
	}

	var sG, negEP, sum secp256k1.JacobianPoint
	secp256k1.ScalarBaseMultNonConst(s, &sG)

	var negE secp256k1.ModNScalar
	negE.Set(e).Negate()

	pj := p.jacobian()
	secp256k1.ScalarMultNonConst(&negE, &pj, &negEP)

	secp256k1.AddNonConst(&sG, &negEP, &sum)
	return fromJacobian(&sum)
}
