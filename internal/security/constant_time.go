package security

import (
	"crypto/subtle"
)

// ConstantTimeCompare reports whether a and b are equal without branching on
// their contents. Slices of different length compare unequal.
func ConstantTimeCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// ConstantTimeEqual32 compares two 32-byte values in constant time
func ConstantTimeEqual32(a, b *[32]byte) bool {
	if a == nil || b == nil {
		return a == b
	}
	return subtle.ConstantTimeCompare(a[:], b[:]) == 1
}
