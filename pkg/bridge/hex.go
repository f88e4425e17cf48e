// Package bridge exposes the verifier to host runtimes that pass
// arguments as hex strings and look functions up by name.
package bridge

import (
	"encoding/hex"
	"fmt"

	"github.com/Caqil/schnorr-verify/pkg/schnorr"
)

// Argument names used in faults raised while decoding
const (
	ArgSignature = "signature"
	ArgMessage   = "message"
	ArgPublicKey = "public key"
)

// VerifyFunc is the static signature of an exported verification function.
// Arguments are hex strings in the order signature, message, public key.
type VerifyFunc func(sigHex, msgHex, pubHex string) (bool, error)

// DecodeHex decodes a hex argument. Decoding failures are reported as a
// MalformedInput fault wrapping ErrMalformedHex.
func DecodeHex(field, s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, schnorr.NewFault(schnorr.KindMalformedInput, field,
			fmt.Errorf("%w: %v", ErrMalformedHex, err))
	}
	return b, nil
}

// VerifyHex decodes its arguments and verifies with the BIP-340 verifier
func VerifyHex(sigHex, msgHex, pubHex string) (bool, error) {
	return HexVerifier(schnorr.BIP340{})(sigHex, msgHex, pubHex)
}

// HexVerifier adapts v to the hex calling convention
func HexVerifier(v schnorr.Verifier) VerifyFunc {
	if v == nil {
		v = schnorr.BIP340{}
	}
	return func(sigHex, msgHex, pubHex string) (bool, error) {
		sig, err := DecodeHex(ArgSignature, sigHex)
		if err != nil {
			return false, err
		}
		msg, err := DecodeHex(ArgMessage, msgHex)
		if err != nil {
			return false, err
		}
		pub, err := DecodeHex(ArgPublicKey, pubHex)
		if err != nil {
			return false, err
		}
		return v.Verify(pub, msg, sig)
	}
}

// Collapse folds a verification outcome into one boolean for hosts that
// only distinguish verified from not verified.
func Collapse(ok bool, err error) bool {
	return ok && err == nil
}
