package textsign

import (
	"fmt"
	"io"

	"github.com/oasisprotocol/curve25519-voi/curve"
	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
)

// Key sizes in bytes.
const (
	SymmetricKeySize = 32
	SigningKeySize   = ed25519.SeedSize
	VerifyingKeySize = ed25519.PublicKeySize
)

// SymmetricKey is the 32-byte key of the keyed hash.
type SymmetricKey [SymmetricKeySize]byte

// NewSymmetricKey copies b into a SymmetricKey. b must be exactly 32 bytes.
func NewSymmetricKey(b []byte) (SymmetricKey, error) {
	var k SymmetricKey
	if len(b) != SymmetricKeySize {
		return k, fmt.Errorf("%w: symmetric key must be %d bytes, got %d", ErrKeyLength, SymmetricKeySize, len(b))
	}

	copy(k[:], b)

	return k, nil
}

// Bytes returns a copy of the raw key bytes.
func (k SymmetricKey) Bytes() []byte {
	return append([]byte(nil), k[:]...)
}

// SigningKey is an Ed25519 private key in its 32-byte seed form.
type SigningKey [SigningKeySize]byte

// NewSigningKey copies b into a SigningKey. b must be exactly 32 bytes.
func NewSigningKey(b []byte) (SigningKey, error) {
	var k SigningKey
	if len(b) != SigningKeySize {
		return k, fmt.Errorf("%w: signing key must be %d bytes, got %d", ErrKeyLength, SigningKeySize, len(b))
	}

	copy(k[:], b)

	return k, nil
}

// Bytes returns a copy of the seed bytes.
func (k SigningKey) Bytes() []byte {
	return append([]byte(nil), k[:]...)
}

// VerifyingKey derives the public half of the key pair.
func (k SigningKey) VerifyingKey() VerifyingKey {
	pub := k.privateKey().Public().(ed25519.PublicKey)

	var v VerifyingKey
	copy(v[:], pub)

	return v
}

func (k SigningKey) privateKey() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(k[:])
}

// VerifyingKey is an Ed25519 public key in compressed Edwards form.
type VerifyingKey [VerifyingKeySize]byte

// NewVerifyingKey copies b into a VerifyingKey. b must be exactly 32 bytes
// and decode to a point on the curve.
func NewVerifyingKey(b []byte) (VerifyingKey, error) {
	var k VerifyingKey
	if len(b) != VerifyingKeySize {
		return k, fmt.Errorf("%w: verifying key must be %d bytes, got %d", ErrKeyLength, VerifyingKeySize, len(b))
	}

	var compressed curve.CompressedEdwardsY
	copy(compressed[:], b)

	if _, err := curve.NewEdwardsPoint().SetCompressedY(&compressed); err != nil {
		return k, fmt.Errorf("%w: verifying key is not a curve point", ErrKeyEncoding)
	}

	copy(k[:], b)

	return k, nil
}

// Bytes returns a copy of the public key bytes.
func (k VerifyingKey) Bytes() []byte {
	return append([]byte(nil), k[:]...)
}

// LoadSymmetricKey reads r to completion and builds a SymmetricKey from the
// first 32 bytes. Longer inputs are truncated; shorter inputs fail with
// ErrKeyLength.
func LoadSymmetricKey(r io.Reader) (SymmetricKey, error) {
	b, err := readAll(r)
	if err != nil {
		return SymmetricKey{}, err
	}

	if len(b) < SymmetricKeySize {
		return SymmetricKey{}, fmt.Errorf("%w: symmetric key must be at least %d bytes, got %d", ErrKeyLength, SymmetricKeySize, len(b))
	}

	return NewSymmetricKey(b[:SymmetricKeySize])
}

// LoadSigningKey reads r to completion and builds a SigningKey. The source
// must hold exactly 32 bytes.
func LoadSigningKey(r io.Reader) (SigningKey, error) {
	b, err := readAll(r)
	if err != nil {
		return SigningKey{}, err
	}

	return NewSigningKey(b)
}

// LoadVerifyingKey reads r to completion and builds a VerifyingKey. The
// source must hold exactly 32 bytes encoding a valid curve point.
func LoadVerifyingKey(r io.Reader) (VerifyingKey, error) {
	b, err := readAll(r)
	if err != nil {
		return VerifyingKey{}, err
	}

	return NewVerifyingKey(b)
}

func readAll(r io.Reader) ([]byte, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return b, nil
}
