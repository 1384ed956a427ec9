package textsign

import (
	"encoding/base64"
	"fmt"
)

// EncodeTag renders tag as URL-safe base64 without padding.
func EncodeTag(tag []byte) string {
	return base64.RawURLEncoding.EncodeToString(tag)
}

// DecodeTag parses URL-safe unpadded base64 text into raw tag bytes.
func DecodeTag(s string) ([]byte, error) {
	tag, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTagEncoding, err)
	}

	return tag, nil
}
