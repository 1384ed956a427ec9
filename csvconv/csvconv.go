// Package csvconv converts CSV tables with a header row into JSON, YAML or
// TOML documents.
package csvconv

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is an output document format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

var (
	ErrUnknownFormat = errors.New("unknown output format")
	ErrParse         = errors.New("invalid csv input")
	ErrNoHeader      = errors.New("csv input has no header row")
)

// ParseFormat resolves a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	switch f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Record is one CSV row keyed by the header names. Every value is a string.
type Record map[string]string

// Read parses CSV from r. The first row names the fields of every following
// row, and all rows must have the same number of fields.
func Read(r io.Reader, delimiter rune) ([]Record, error) {
	cr := csv.NewReader(r)
	if delimiter != 0 {
		cr.Comma = delimiter
	}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	records := make([]Record, 0, 128)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}

		rec := make(Record, len(header))
		for i, name := range header {
			rec[name] = row[i]
		}

		records = append(records, rec)
	}

	return records, nil
}

// Marshal renders records in format f. JSON and YAML documents are a
// top-level list; TOML has no top-level arrays, so the list is stored under
// the "records" key.
func Marshal(records []Record, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		return json.MarshalIndent(records, "", "  ")
	case FormatYAML:
		return yaml.Marshal(records)
	case FormatTOML:
		return toml.Marshal(map[string]any{"records": records})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Convert reads CSV from r and renders it in format f.
func Convert(r io.Reader, f Format, delimiter rune) ([]byte, error) {
	if _, err := ParseFormat(string(f)); err != nil {
		return nil, err
	}

	records, err := Read(r, delimiter)
	if err != nil {
		return nil, err
	}

	return Marshal(records, f)
}
