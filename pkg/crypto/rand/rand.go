// Package rand provides cryptographically secure randomness for sampling
// decisions and test fixtures
package rand

import (
	"crypto/rand"
	"encoding/binary"
	"io"
)

// Reader is the default cryptographically secure random number generator
var Reader io.Reader = rand.Reader

// GenerateRandomBytes generates n cryptographically secure random bytes
func GenerateRandomBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, ErrInvalidLength
	}

	bytes := make([]byte, n)
	if _, err := io.ReadFull(Reader, bytes); err != nil {
		return nil, err
	}

	return bytes, nil
}

// Float64 returns a uniform value in [0, 1) built from 53 random bits
func Float64() (float64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(Reader, buf[:]); err != nil {
		return 0, err
	}

	v := binary.BigEndian.Uint64(buf[:]) >> 11
	return float64(v) / (1 << 53), nil
}
