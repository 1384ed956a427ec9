package textsign

import (
	"crypto/hmac"
	"fmt"
	"io"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	"lukechampine.com/blake3"
)

// --- BLAKE3 keyed hash ---

type blake3Signer struct {
	key SymmetricKey
}

// NewBlake3Signer creates a Signer computing the keyed BLAKE3 hash of the
// message under key.
func NewBlake3Signer(key SymmetricKey) Signer {
	return &blake3Signer{key: key}
}

func (s *blake3Signer) Sign(r io.Reader) ([]byte, error) {
	msg, err := readAll(r)
	if err != nil {
		return nil, err
	}

	return keyedHash(s.key, msg), nil
}

func (s *blake3Signer) Algorithm() Algorithm { return AlgorithmBlake3 }

type blake3Verifier struct {
	key SymmetricKey
}

// NewBlake3Verifier creates a Verifier recomputing the keyed BLAKE3 hash
// under key. Tags of the wrong length never verify.
func NewBlake3Verifier(key SymmetricKey) Verifier {
	return &blake3Verifier{key: key}
}

func (v *blake3Verifier) Verify(r io.Reader, tag []byte) (bool, error) {
	msg, err := readAll(r)
	if err != nil {
		return false, err
	}

	return hmac.Equal(keyedHash(v.key, msg), tag), nil
}

func (v *blake3Verifier) Algorithm() Algorithm { return AlgorithmBlake3 }

func keyedHash(key SymmetricKey, message []byte) []byte {
	h := blake3.New(Blake3TagSize, key[:])
	h.Write(message)

	return h.Sum(nil)
}

// --- Ed25519 ---

// strictVerify rejects small-order and non-canonical points and uses the
// cofactorless equation, so each message has a single valid encoding of
// any given signature.
var strictVerify = &ed25519.Options{
	Verify: &ed25519.VerifyOptions{
		AllowSmallOrderA:   false,
		AllowSmallOrderR:   false,
		AllowNonCanonicalA: false,
		AllowNonCanonicalR: false,
		CofactorlessVerify: true,
	},
}

type ed25519Signer struct {
	key ed25519.PrivateKey
}

// NewEd25519Signer creates a Signer producing deterministic Ed25519
// signatures with key.
func NewEd25519Signer(key SigningKey) Signer {
	return &ed25519Signer{key: key.privateKey()}
}

func (s *ed25519Signer) Sign(r io.Reader) ([]byte, error) {
	msg, err := readAll(r)
	if err != nil {
		return nil, err
	}

	return ed25519.Sign(s.key, msg), nil
}

func (s *ed25519Signer) Algorithm() Algorithm { return AlgorithmEd25519 }

type ed25519Verifier struct {
	key ed25519.PublicKey
}

// NewEd25519Verifier creates a Verifier checking Ed25519 signatures against
// key with strict verification.
func NewEd25519Verifier(key VerifyingKey) Verifier {
	return &ed25519Verifier{key: ed25519.PublicKey(key.Bytes())}
}

func (v *ed25519Verifier) Verify(r io.Reader, tag []byte) (bool, error) {
	if err := checkSignatureFormat(tag); err != nil {
		return false, err
	}

	msg, err := readAll(r)
	if err != nil {
		return false, err
	}

	return ed25519.VerifyWithOptions(v.key, msg, tag, strictVerify), nil
}

func (v *ed25519Verifier) Algorithm() Algorithm { return AlgorithmEd25519 }

// checkSignatureFormat validates the R || S layout of an Ed25519 signature.
// S is a little-endian scalar below 2^253, so its top three bits are clear.
func checkSignatureFormat(sig []byte) error {
	if len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("%w: signature must be %d bytes, got %d", ErrSignatureFormat, ed25519.SignatureSize, len(sig))
	}

	if sig[ed25519.SignatureSize-1]&0xe0 != 0 {
		return fmt.Errorf("%w: signature scalar is out of range", ErrSignatureFormat)
	}

	return nil
}
