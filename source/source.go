// Package source resolves byte-source identifiers used on the command line.
// The identifier "-" denotes standard input; anything else is a file path.
package source

import (
	"errors"
	"io"
	"os"
)

// Stdin is the identifier for standard input.
const Stdin = "-"

// ErrNotExist is returned by Check for identifiers that do not resolve.
var ErrNotExist = errors.New("source: file does not exist")

// StdinReader is the reader returned for Stdin. Tests may replace it.
var StdinReader io.Reader = os.Stdin

// Open returns a reader for name. Closing the reader returned for standard
// input is a no-op.
func Open(name string) (io.ReadCloser, error) {
	if name == Stdin {
		return io.NopCloser(StdinReader), nil
	}

	return os.Open(name)
}

// Exists reports whether name refers to standard input or an existing
// regular file.
func Exists(name string) bool {
	if name == Stdin {
		return true
	}

	info, err := os.Stat(name)
	if err != nil {
		return false
	}

	return !info.IsDir()
}

// ReadFile reads name to completion.
func ReadFile(name string) ([]byte, error) {
	rc, err := Open(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return io.ReadAll(rc)
}

// Check returns ErrNotExist wrapped with name when Exists reports false.
func Check(name string) error {
	if !Exists(name) {
		return &os.PathError{Op: "open", Path: name, Err: ErrNotExist}
	}

	return nil
}
