package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("pipe closed")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("URLSafe")
	require.NoError(t, err)
	assert.Equal(t, FormatURLSafe, f)

	f, err = ParseFormat("standard")
	require.NoError(t, err)
	assert.Equal(t, FormatStandard, f)

	_, err = ParseFormat("base32")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestEncode(t *testing.T) {
	// 0xfb 0xff encodes to characters that differ between the alphabets.
	input := "hello\xfb\xff"

	tests := []struct {
		format Format
		want   string
	}{
		{format: FormatStandard, want: "aGVsbG/7/w=="},
		{format: FormatURLSafe, want: "aGVsbG_7_w"},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			got, err := Encode(strings.NewReader(input), tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		input   string
		want    string
		wantErr error
	}{
		{name: "standard", format: FormatStandard, input: "aGVsbG/7/w==", want: "hello\xfb\xff"},
		{name: "urlsafe", format: FormatURLSafe, input: "aGVsbG_7_w", want: "hello\xfb\xff"},
		{name: "trailing newline", format: FormatURLSafe, input: "  aGVsbG8\n", want: "hello"},
		{name: "wrong alphabet", format: FormatURLSafe, input: "aGVsbG/7/w==", wantErr: ErrDecode},
		{name: "padding in urlsafe", format: FormatURLSafe, input: "aGVsbG8=", wantErr: ErrDecode},
		{name: "unknown format", format: "base32", input: "", wantErr: ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(tt.input), tt.format)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestReadFailure(t *testing.T) {
	_, err := Encode(errReader{}, FormatStandard)
	assert.ErrorIs(t, err, ErrRead)

	_, err = Decode(errReader{}, FormatStandard)
	assert.ErrorIs(t, err, ErrRead)
}
