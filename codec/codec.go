// Package codec converts between raw bytes and base64 text in the standard
// and URL-safe alphabets.
package codec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Format selects the base64 alphabet and padding.
type Format string

const (
	// FormatStandard is RFC 4648 base64 with padding.
	FormatStandard Format = "standard"
	// FormatURLSafe is the URL and filename safe alphabet without padding,
	// the same form used for signature tags.
	FormatURLSafe Format = "urlsafe"
)

// Formats lists the supported formats.
var Formats = []Format{FormatStandard, FormatURLSafe}

var (
	ErrUnknownFormat = errors.New("unknown base64 format")
	ErrRead          = errors.New("failed to read input")
	ErrDecode        = errors.New("invalid base64 input")
)

// ParseFormat resolves a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	if f.encoding() == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}

	return f, nil
}

func (f Format) encoding() *base64.Encoding {
	switch f {
	case FormatStandard:
		return base64.StdEncoding
	case FormatURLSafe:
		return base64.RawURLEncoding
	default:
		return nil
	}
}

// Encode reads r to completion and returns it base64 encoded in format f.
func Encode(r io.Reader, f Format) (string, error) {
	enc := f.encoding()
	if enc == nil {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRead, err)
	}

	return enc.EncodeToString(b), nil
}

// Decode reads r to completion and decodes it from format f. Leading and
// trailing whitespace, including the final newline, is ignored.
func Decode(r io.Reader, f Format) ([]byte, error) {
	enc := f.encoding()
	if enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	out, err := enc.DecodeString(string(bytes.TrimSpace(b)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return out, nil
}
