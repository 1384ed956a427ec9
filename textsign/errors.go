package textsign

import "errors"

// Input errors.
var (
	// ErrRead is returned when a message or key source cannot be read to
	// completion. The underlying I/O error is wrapped alongside it.
	ErrRead = errors.New("textsign: read failed")
)

// Key material errors.
var (
	// ErrKeyLength is returned when key bytes are shorter or longer than the
	// algorithm requires.
	ErrKeyLength = errors.New("textsign: invalid key length")

	// ErrKeyEncoding is returned when verifying key bytes do not decode to a
	// valid curve point.
	ErrKeyEncoding = errors.New("textsign: invalid key encoding")
)

// Tag errors.
var (
	// ErrTagEncoding is returned when an encoded tag is not valid URL-safe
	// base64 or decodes to the wrong length for the claimed algorithm.
	ErrTagEncoding = errors.New("textsign: invalid tag encoding")

	// ErrSignatureFormat is returned when a decoded tag is not a well-formed
	// Ed25519 signature.
	ErrSignatureFormat = errors.New("textsign: malformed signature")
)

// Algorithm errors.
var (
	// ErrUnknownAlgorithm is returned when an algorithm name or value is not
	// one of the supported algorithms.
	ErrUnknownAlgorithm = errors.New("textsign: unknown algorithm")
)
