package schnorr

import (
	"errors"

	"github.com/Caqil/schnorr-verify/internal/security"
	"github.com/Caqil/schnorr-verify/pkg/crypto/curve"
	"github.com/Caqil/schnorr-verify/pkg/crypto/hash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// PublicKeySize is the length of an x-only public key
	PublicKeySize = 32

	// SignatureSize is the length of a signature r || s
	SignatureSize = 64
)

// Field names used in faults
const (
	FieldPublicKey  = "public key"
	FieldSignature  = "signature"
	FieldSignatureR = "signature r"
	FieldSignatureS = "signature s"
	FieldResult     = "R"
)

// Verifier checks a signature over a message for a public key
type Verifier interface {
	Verify(publicKey, message, signature []byte) (bool, error)
}

// BIP340 is the Verifier implemented by this package
type BIP340 struct{}

// Verify calls the package-level Verify
func (BIP340) Verify(publicKey, message, signature []byte) (bool, error) {
	return Verify(publicKey, message, signature)
}

// PublicKey is a parsed x-only public key
type PublicKey struct {
	raw   [PublicKeySize]byte
	point *curve.Point
}

// ParsePublicKey validates and lifts a 32-byte x-only public key
func ParsePublicKey(b []byte) (*PublicKey, error) {
	if err := security.ValidateLength(FieldPublicKey, b, PublicKeySize); err != nil {
		return nil, NewFault(KindMalformedInput, FieldPublicKey, err)
	}

	p, err := curve.LiftX(b)
	if err != nil {
		return nil, classifyCurveError(FieldPublicKey, err)
	}

	pk := &PublicKey{point: p}
	copy(pk.raw[:], b)
	return pk, nil
}

// Bytes returns the x-only encoding
func (pk *PublicKey) Bytes() [PublicKeySize]byte {
	return pk.raw
}

// Signature is a parsed signature with r < p and s < n
type Signature struct {
	raw [SignatureSize]byte
	s   secp256k1.ModNScalar
}

// ParseSignature validates a 64-byte signature
func ParseSignature(b []byte) (*Signature, error) {
	if err := security.ValidateLength(FieldSignature, b, SignatureSize); err != nil {
		return nil, NewFault(KindMalformedInput, FieldSignature, err)
	}

	r, err := curve.ParseFieldElement(b[:32])
	if err != nil {
		return nil, classifyCurveError(FieldSignatureR, err)
	}
	security.ZeroField(&r)

	s, err := curve.ParseScalar(b[32:])
	if err != nil {
		return nil, classifyCurveError(FieldSignatureS, err)
	}

	sig := &Signature{s: s}
	copy(sig.raw[:], b)
	return sig, nil
}

// Bytes returns the 64-byte encoding
func (sig *Signature) Bytes() [SignatureSize]byte {
	return sig.raw
}

// Verify checks sig over message for pk
func (sig *Signature) Verify(message []byte, pk *PublicKey) (bool, error) {
	if sig == nil {
		return false, NewFault(KindMalformedInput, FieldSignature, security.ErrNilBuffer)
	}
	if pk == nil {
		return false, NewFault(KindMalformedInput, FieldPublicKey, security.ErrNilBuffer)
	}

	vc := newVerificationContext(pk, sig, message)
	defer vc.release()

	return vc.verify()
}

// Verify checks a BIP-340 signature.
//
// Lengths of both inputs are checked before any decoding, so a wrong-length
// signature is reported as malformed even when the public key is also bad.
func Verify(publicKey, message, signature []byte) (bool, error) {
	if err := security.ValidateLength(FieldPublicKey, publicKey, PublicKeySize); err != nil {
		return false, NewFault(KindMalformedInput, FieldPublicKey, err)
	}
	if err := security.ValidateLength(FieldSignature, signature, SignatureSize); err != nil {
		return false, NewFault(KindMalformedInput, FieldSignature, err)
	}

	sig, err := ParseSignature(signature)
	if err != nil {
		return false, err
	}
	pk, err := ParsePublicKey(publicKey)
	if err != nil {
		return false, err
	}

	return sig.Verify(message, pk)
}

// verificationContext holds the decoded inputs of a single verification.
// It is created per call and scrubbed by release on every return path.
type verificationContext struct {
	r       [32]byte
	s       secp256k1.ModNScalar
	pkBytes [32]byte
	pk      curve.Point
	message []byte
	e       secp256k1.ModNScalar
}

func newVerificationContext(pk *PublicKey, sig *Signature, message []byte) *verificationContext {
	vc := &verificationContext{
		s:       sig.s,
		pkBytes: pk.raw,
		pk:      *pk.point,
		message: message,
	}
	copy(vc.r[:], sig.raw[:32])
	return vc
}

func (vc *verificationContext) verify() (bool, error) {
	digest := hash.Challenge.Sum(vc.r[:], vc.pkBytes[:], vc.message)
	vc.e = curve.ReduceScalar(&digest)
	security.SecureZero(digest[:])

	// R = s*G - e*P
	R, err := curve.SchnorrCombination(&vc.s, &vc.e, &vc.pk)
	if err != nil {
		return false, NewFault(KindArithmeticFault, FieldResult, err)
	}
	defer R.Clear()

	if R.IsInfinity() {
		return false, nil
	}
	if !R.HasEvenY() {
		return false, nil
	}

	rx := R.XBytes()
	return security.ConstantTimeEqual32(&rx, &vc.r), nil
}

func (vc *verificationContext) release() {
	security.SecureZero(vc.r[:])
	security.SecureZero(vc.pkBytes[:])
	security.ZeroScalar(&vc.s)
	security.ZeroScalar(&vc.e)
	vc.pk.Clear()
	vc.message = nil
}

// classifyCurveError maps curve package errors onto fault kinds
func classifyCurveError(field string, err error) error {
	switch {
	case errors.Is(err, curve.ErrInvalidLength):
		return NewFault(KindMalformedInput, field, err)
	case errors.Is(err, curve.ErrFieldOverflow),
		errors.Is(err, curve.ErrScalarOverflow),
		errors.Is(err, curve.ErrNotOnCurve):
		return NewFault(KindInvalidEncoding, field, err)
	default:
		return NewFault(KindArithmeticFault, field, err)
	}
}
