package csvconv

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const players = `Name,Position,Nationality
Ada,Forward,Swiss
"Bo, Jr.",Keeper,Kenyan
`

func TestRead(t *testing.T) {
	records, err := Read(strings.NewReader(players), 0)
	require.NoError(t, err)

	assert.Equal(t, []Record{
		{"Name": "Ada", "Position": "Forward", "Nationality": "Swiss"},
		{"Name": "Bo, Jr.", "Position": "Keeper", "Nationality": "Kenyan"},
	}, records)

	t.Run("custom delimiter", func(t *testing.T) {
		records, err := Read(strings.NewReader("a;b\n1;2\n"), ';')
		require.NoError(t, err)
		assert.Equal(t, []Record{{"a": "1", "b": "2"}}, records)
	})

	t.Run("header only", func(t *testing.T) {
		records, err := Read(strings.NewReader("a,b\n"), 0)
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Read(strings.NewReader(""), 0)
		assert.ErrorIs(t, err, ErrNoHeader)
	})

	t.Run("ragged row", func(t *testing.T) {
		_, err := Read(strings.NewReader("a,b\n1,2,3\n"), 0)
		assert.ErrorIs(t, err, ErrParse)
	})
}

func TestConvert(t *testing.T) {
	want := []map[string]any{
		{"Name": "Ada", "Position": "Forward", "Nationality": "Swiss"},
		{"Name": "Bo, Jr.", "Position": "Keeper", "Nationality": "Kenyan"},
	}

	t.Run("json", func(t *testing.T) {
		out, err := Convert(strings.NewReader(players), FormatJSON, 0)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), "[\n  {\n"))

		var got []map[string]any
		require.NoError(t, json.Unmarshal(out, &got))
		assert.Equal(t, want, got)
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := Convert(strings.NewReader(players), FormatYAML, 0)
		require.NoError(t, err)

		var got []map[string]any
		require.NoError(t, yaml.Unmarshal(out, &got))
		assert.Equal(t, want, got)
	})

	t.Run("toml", func(t *testing.T) {
		out, err := Convert(strings.NewReader(players), FormatTOML, 0)
		require.NoError(t, err)

		var got struct {
			Records []map[string]any `toml:"records"`
		}
		require.NoError(t, toml.Unmarshal(out, &got))
		assert.Equal(t, want, got.Records)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Convert(strings.NewReader(players), "xml", 0)
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("ini")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
