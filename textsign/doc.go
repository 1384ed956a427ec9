// Package textsign produces and checks authentication tags over arbitrary
// byte streams.
//
// Two algorithms are supported:
//
//   - blake3 (BLAKE3 keyed hash, 32-byte symmetric key, 32-byte tag)
//   - ed25519 (Edwards-Curve DSA, 32-byte seed and public key, 64-byte tag)
//
// Every operation reads its input to completion before computing, and the
// package holds no key cache or other shared state, so calls may run
// concurrently without coordination.
//
// # Keys
//
// Key files are raw bytes with no framing. A symmetric key source must hold
// at least 32 bytes; only the first 32 are used. Signing and verifying key
// sources must hold exactly 32 bytes, and a verifying key must decode to a
// point on the curve.
//
//	keys, err := textsign.GenerateKey(textsign.AlgorithmEd25519)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// keys[0] is the signing key, keys[1] the verifying key.
//
// # Signing and Verifying
//
// Sign and Verify drive the full pipeline: load the key, build the Signer or
// Verifier for the algorithm, and encode or decode the tag as URL-safe
// base64 without padding:
//
//	tag, err := textsign.Sign(msg, signingKey, textsign.AlgorithmEd25519)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ok, err := textsign.Verify(msg, verifyingKey, textsign.AlgorithmEd25519, tag)
//
// A tag that does not match is reported as false with a nil error. Errors
// are reserved for unreadable sources (ErrRead), bad keys (ErrKeyLength,
// ErrKeyEncoding) and malformed tags (ErrTagEncoding, ErrSignatureFormat).
//
// # Strict Verification
//
// Ed25519 signatures are checked with the cofactorless equation and reject
// small-order or non-canonically encoded points, so a signature cannot be
// altered into a second valid encoding of itself.
package textsign
