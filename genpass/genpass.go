// Package genpass generates random passwords over selectable character
// classes.
package genpass

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// Character classes.
const (
	Upper   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lower   = "abcdefghijklmnopqrstuvwxyz"
	Numbers = "0123456789"
	Symbols = "!@#$%^&*_"
)

// DefaultLength is the password length used when Options.Length is zero.
const DefaultLength = 16

var (
	// ErrNoClasses is returned when every character class is disabled.
	ErrNoClasses = errors.New("genpass: at least one character class must be enabled")

	// ErrLength is returned when the requested length cannot hold one
	// character of each enabled class.
	ErrLength = errors.New("genpass: invalid password length")
)

// Options configures password generation.
type Options struct {
	// Length is the number of characters. Defaults to DefaultLength.
	Length int

	NoUpper   bool
	NoLower   bool
	NoNumbers bool
	NoSymbols bool

	// Rand is the entropy source. Defaults to crypto/rand.Reader.
	Rand io.Reader
}

// Generate returns a random password. The result holds at least one
// character of each enabled class; the remaining characters are drawn
// uniformly from the union of enabled classes and the whole password is
// shuffled.
func Generate(opts Options) (string, error) {
	length := opts.Length
	if length == 0 {
		length = DefaultLength
	}

	r := opts.Rand
	if r == nil {
		r = rand.Reader
	}

	var classes []string
	for _, c := range []struct {
		set      string
		disabled bool
	}{
		{Upper, opts.NoUpper},
		{Lower, opts.NoLower},
		{Numbers, opts.NoNumbers},
		{Symbols, opts.NoSymbols},
	} {
		if !c.disabled {
			classes = append(classes, c.set)
		}
	}

	if len(classes) == 0 {
		return "", ErrNoClasses
	}

	if length < len(classes) {
		return "", fmt.Errorf("%w: need at least %d characters, got %d", ErrLength, len(classes), length)
	}

	password := make([]byte, 0, length)
	chars := ""

	for _, set := range classes {
		c, err := pick(r, set)
		if err != nil {
			return "", err
		}

		password = append(password, c)
		chars += set
	}

	for len(password) < length {
		c, err := pick(r, chars)
		if err != nil {
			return "", err
		}

		password = append(password, c)
	}

	if err := shuffle(r, password); err != nil {
		return "", err
	}

	return string(password), nil
}

func pick(r io.Reader, set string) (byte, error) {
	i, err := randIntn(r, len(set))
	if err != nil {
		return 0, err
	}

	return set[i], nil
}

// shuffle is a Fisher-Yates shuffle driven by r.
func shuffle(r io.Reader, b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := randIntn(r, i+1)
		if err != nil {
			return err
		}

		b[i], b[j] = b[j], b[i]
	}

	return nil
}

func randIntn(r io.Reader, n int) (int, error) {
	v, err := rand.Int(r, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("genpass: read random: %w", err)
	}

	return int(v.Int64()), nil
}
