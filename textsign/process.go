package textsign

import (
	"fmt"
	"io"

	"github.com/vitalvas/textsign/log"
)

// NewSigner loads the signing key for alg from key and returns the matching
// Signer. For AlgorithmBlake3 key holds the symmetric key, for
// AlgorithmEd25519 the 32-byte signing seed.
func NewSigner(alg Algorithm, key io.Reader) (Signer, error) {
	switch alg {
	case AlgorithmBlake3:
		k, err := LoadSymmetricKey(key)
		if err != nil {
			return nil, err
		}

		return NewBlake3Signer(k), nil

	case AlgorithmEd25519:
		k, err := LoadSigningKey(key)
		if err != nil {
			return nil, err
		}

		return NewEd25519Signer(k), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
}

// NewVerifier loads the verification key for alg from key and returns the
// matching Verifier. For AlgorithmBlake3 key holds the symmetric key, for
// AlgorithmEd25519 the 32-byte verifying key.
func NewVerifier(alg Algorithm, key io.Reader) (Verifier, error) {
	switch alg {
	case AlgorithmBlake3:
		k, err := LoadSymmetricKey(key)
		if err != nil {
			return nil, err
		}

		return NewBlake3Verifier(k), nil

	case AlgorithmEd25519:
		k, err := LoadVerifyingKey(key)
		if err != nil {
			return nil, err
		}

		return NewEd25519Verifier(k), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
}

// Sign loads the key for alg, signs input read to completion and returns
// the encoded tag. No tag is returned when any step fails.
func Sign(input, key io.Reader, alg Algorithm) (string, error) {
	signer, err := NewSigner(alg, key)
	if err != nil {
		return "", err
	}

	tag, err := signer.Sign(input)
	if err != nil {
		return "", err
	}

	log.Debugf("signed input with %s, tag %d bytes", alg, len(tag))

	return EncodeTag(tag), nil
}

// Verify decodes encodedTag, loads the key for alg and checks the tag
// against input read to completion. It returns false with a nil error when
// the tag is well formed but does not match.
func Verify(input, key io.Reader, alg Algorithm, encodedTag string) (bool, error) {
	if !alg.Valid() {
		return false, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
	}

	tag, err := DecodeTag(encodedTag)
	if err != nil {
		return false, err
	}

	// The tag shape is checked before the key or the input is read.
	switch alg {
	case AlgorithmBlake3:
		if len(tag) != Blake3TagSize {
			return false, fmt.Errorf("%w: %s tag must be %d bytes, got %d", ErrTagEncoding, alg, Blake3TagSize, len(tag))
		}
	case AlgorithmEd25519:
		if err := checkSignatureFormat(tag); err != nil {
			return false, err
		}
	}

	verifier, err := NewVerifier(alg, key)
	if err != nil {
		return false, err
	}

	ok, err := verifier.Verify(input, tag)
	if err != nil {
		return false, err
	}

	log.Debugf("verified input with %s: %t", alg, ok)

	return ok, nil
}
