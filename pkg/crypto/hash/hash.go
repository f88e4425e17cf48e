// Package hash provides the hash constructions used by BIP-340 verification
// and Nostr event identifiers.
package hash

import (
	"crypto/sha256"
	"encoding"
	"fmt"
	"hash"
)

// TagChallenge is the BIP-340 challenge tag
const TagChallenge = "BIP0340/challenge"

// Challenge is the precomputed tagger for the BIP-340 challenge hash
var Challenge = MustTagger(TagChallenge)

// Tagger computes tagged hashes sha256(sha256(tag) || sha256(tag) || data)
// for a fixed tag. The 64-byte prefix is exactly one SHA-256 block, so its
// compression state is captured once and restored for every hash.
type Tagger struct {
	midstate []byte
}

// NewTagger precomputes the midstate for tag
func NewTagger(tag string) (*Tagger, error) {
	tagHash := sha256.Sum256([]byte(tag))

	h := sha256.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])

	marshaler, ok := h.(encoding.BinaryMarshaler)
	if !ok {
		return nil, ErrMidstateUnsupported
	}
	state, err := marshaler.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMidstateUnsupported, err)
	}

	return &Tagger{midstate: state}, nil
}

// MustTagger is like NewTagger but panics on error.
// It is intended for package-level variables.
func MustTagger(tag string) *Tagger {
	t, err := NewTagger(tag)
	if err != nil {
		panic("hash: " + err.Error())
	}
	return t
}

// New returns a SHA-256 state that has already absorbed the tag prefix.
// Each call returns an independent state.
func (t *Tagger) New() hash.Hash {
	h := sha256.New()
	unmarshaler, ok := h.(encoding.BinaryUnmarshaler)
	if !ok {
		panic("hash: sha256 state cannot be restored")
	}
	if err := unmarshaler.UnmarshalBinary(t.midstate); err != nil {
		panic("hash: restoring sha256 midstate: " + err.Error())
	}
	return h
}

// Sum hashes the concatenation of parts under the tag
func (t *Tagger) Sum(parts ...[]byte) [32]byte {
	h := t.New()
	for _, p := range parts {
		h.Write(p)
	}

	var out [32]byte
	h.Sum(out[:0])
	return out
}

// TaggedHash computes a tagged hash without a precomputed midstate
func TaggedHash(tag string, parts ...[]byte) [32]byte {
	tagHash := sha256.Sum256([]byte(tag))

	h := sha256.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	for _, p := range parts {
		h.Write(p)
	}

	var out [32]byte
	h.Sum(out[:0])
	return out
}

// SHA256 hashes the concatenation of parts
func SHA256(parts ...[]byte) [32]byte {
	h := sha256.New()
	for _, p := range parts {
		h.Write(p)
	}

	var out [32]byte
	h.Sum(out[:0])
	return out
}
