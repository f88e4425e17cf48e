// Package event implements the Nostr event id and signature checks.
//
// An event id is the sha256 of the canonical serialization
//
//	[0,<pubkey>,<created_at>,<kind>,<tags>,<content>]
//
// and the signature is a BIP-340 signature over the 32 id bytes.
package event

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/Caqil/schnorr-verify/internal/security"
	"github.com/Caqil/schnorr-verify/pkg/bridge"
	"github.com/Caqil/schnorr-verify/pkg/crypto/hash"
	"github.com/Caqil/schnorr-verify/pkg/schnorr"
	"github.com/nbd-wtf/go-nostr"
)

// IDSize is the length of a decoded event id
const IDSize = 32

// Event is a signed Nostr event
type Event struct {
	ID        string     `json:"id"`
	PubKey    string     `json:"pubkey"`
	CreatedAt int64      `json:"created_at"`
	Kind      int        `json:"kind"`
	Tags      [][]string `json:"tags"`
	Content   string     `json:"content"`
	Sig       string     `json:"sig"`
}

// Parse decodes an event from JSON
func Parse(data []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}

	switch {
	case ev.ID == "":
		return nil, fmt.Errorf("%w: missing id", ErrMalformedEvent)
	case ev.PubKey == "":
		return nil, fmt.Errorf("%w: missing pubkey", ErrMalformedEvent)
	case ev.Sig == "":
		return nil, fmt.Errorf("%w: missing sig", ErrMalformedEvent)
	}
	return &ev, nil
}

// Serialize returns the canonical serialization the id is computed over.
// Strings are escaped the way NIP-01 requires: quote, backslash and control
// characters only.
func (ev *Event) Serialize() []byte {
	return ev.toNostr().Serialize()
}

func (ev *Event) toNostr() *nostr.Event {
	tags := make(nostr.Tags, len(ev.Tags))
	for i, tag := range ev.Tags {
		tags[i] = nostr.Tag(tag)
	}
	return &nostr.Event{
		ID:        ev.ID,
		PubKey:    ev.PubKey,
		CreatedAt: nostr.Timestamp(ev.CreatedAt),
		Kind:      ev.Kind,
		Tags:      tags,
		Content:   ev.Content,
		Sig:       ev.Sig,
	}
}

// Hash returns the sha256 of the canonical serialization
func (ev *Event) Hash() [IDSize]byte {
	return hash.SHA256(ev.Serialize())
}

// ComputeID returns the expected id as lowercase hex
func (ev *Event) ComputeID() string {
	h := ev.Hash()
	return hex.EncodeToString(h[:])
}

// CheckID verifies that ID is the hash of the event
func (ev *Event) CheckID() error {
	id, err := hex.DecodeString(ev.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	if err := security.ValidateLength("id", id, IDSize); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidID, err)
	}

	want := ev.Hash()
	if !security.ConstantTimeCompare(id, want[:]) {
		return fmt.Errorf("%w: expected %x", ErrInvalidID, want)
	}
	return nil
}

// VerifySignature checks the id and then the signature over it with v.
// A nil v uses the BIP-340 verifier. An id that does not match the event
// yields false without an error; verification faults are returned.
func (ev *Event) VerifySignature(v schnorr.Verifier) (bool, error) {
	if err := ev.CheckID(); err != nil {
		return false, nil
	}
	return bridge.HexVerifier(v)(ev.Sig, ev.ID, ev.PubKey)
}
