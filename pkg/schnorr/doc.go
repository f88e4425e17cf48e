// Package schnorr verifies BIP-340 Schnorr signatures over secp256k1.
//
// Verify takes a 32-byte x-only public key, a message of any length and a
// 64-byte signature r || s. It returns (true, nil) for a valid signature and
// (false, nil) for a well-formed signature that does not verify. Inputs that
// cannot be checked at all are reported as a *Fault:
//
//   - ErrMalformedInput: public key or signature has the wrong length
//   - ErrInvalidEncoding: r >= p, s >= n, or the public key is not the x
//     coordinate of a curve point
//   - ErrArithmeticFault: a group operation produced an invalid point
//
// The message is hashed into the challenge exactly as given; callers that
// sign a digest (such as a Nostr event id) pass the 32-byte digest.
//
// Verify keeps no state between calls and is safe for concurrent use.
package schnorr
