package textsign

import (
	"fmt"
	"io"
	"strings"
)

// Algorithm identifies the tag algorithm used to sign or verify a message.
type Algorithm string

const (
	// AlgorithmBlake3 is BLAKE3 in keyed mode with a 32-byte symmetric key.
	AlgorithmBlake3 Algorithm = "blake3"

	// AlgorithmEd25519 is Edwards-Curve Digital Signature Algorithm using
	// curve 25519.
	AlgorithmEd25519 Algorithm = "ed25519"
)

// Tag sizes in bytes.
const (
	Blake3TagSize  = 32
	Ed25519TagSize = 64
)

// Algorithms lists every supported algorithm in a stable order.
var Algorithms = []Algorithm{AlgorithmBlake3, AlgorithmEd25519}

// ParseAlgorithm returns the Algorithm named by s. Matching is
// case-insensitive and ignores surrounding whitespace.
func ParseAlgorithm(s string) (Algorithm, error) {
	alg := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	if !alg.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}

	return alg, nil
}

// String returns the algorithm name.
func (a Algorithm) String() string {
	return string(a)
}

// Valid reports whether a is a supported algorithm.
func (a Algorithm) Valid() bool {
	switch a {
	case AlgorithmBlake3, AlgorithmEd25519:
		return true
	}

	return false
}

// TagSize returns the length in bytes of tags produced by the algorithm,
// or zero for an unknown algorithm.
func (a Algorithm) TagSize() int {
	switch a {
	case AlgorithmBlake3:
		return Blake3TagSize
	case AlgorithmEd25519:
		return Ed25519TagSize
	}

	return 0
}

// Signer produces tags over a fully buffered message.
type Signer interface {
	// Sign reads r to completion and returns the tag over its contents.
	Sign(r io.Reader) ([]byte, error)

	// Algorithm returns the algorithm identifier for this signer.
	Algorithm() Algorithm
}

// Verifier checks tags over a fully buffered message.
type Verifier interface {
	// Verify reads r to completion and reports whether tag is valid for its
	// contents. A cryptographic mismatch is reported as false with a nil
	// error; errors are reserved for I/O and malformed tags.
	Verify(r io.Reader, tag []byte) (bool, error)

	// Algorithm returns the algorithm identifier for this verifier.
	Algorithm() Algorithm
}
