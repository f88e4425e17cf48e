// Package security provides helpers for handling decoded verification buffers
package security

import (
	"crypto/subtle"
	"runtime"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// SecureZero overwrites a byte slice so decoded inputs do not outlive the call
// that owned them. The copy goes through subtle so the compiler keeps it.
func SecureZero(data []byte) {
	if len(data) == 0 {
		return
	}

	zeros := make([]byte, len(data))
	subtle.ConstantTimeCopy(1, data, zeros)

	runtime.KeepAlive(data)
}

// ZeroField clears a field element
func ZeroField(f *secp256k1.FieldVal) {
	if f == nil {
		return
	}
	f.Zero()
	runtime.KeepAlive(f)
}

// ZeroScalar clears a scalar
func ZeroScalar(s *secp256k1.ModNScalar) {
	if s == nil {
		return
	}
	s.Zero()
	runtime.KeepAlive(s)
}
