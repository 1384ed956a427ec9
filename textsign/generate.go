package textsign

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/vitalvas/textsign/genpass"
)

// Generator creates fresh key material. The zero value draws from
// crypto/rand and produces uniformly random symmetric keys.
type Generator struct {
	// Rand is the entropy source. Defaults to crypto/rand.Reader.
	Rand io.Reader

	// Printable, when true, mints symmetric keys as 32 random password
	// characters (upper, lower, digits and symbols) and uses their bytes as
	// the key. Such keys can be stored in text configuration, at the cost of
	// roughly 6.2 bits of entropy per byte instead of 8.
	Printable bool
}

// GenerateKey returns fresh key material for alg using the default
// Generator. See Generator.Generate for the buffer layout.
func GenerateKey(alg Algorithm) ([][]byte, error) {
	return Generator{}.Generate(alg)
}

// Generate returns fresh key material for alg. For AlgorithmBlake3 it
// returns a single 32-byte symmetric key. For AlgorithmEd25519 it returns
// the 32-byte signing key followed by the derived 32-byte verifying key.
// Nothing is persisted.
func (g Generator) Generate(alg Algorithm) ([][]byte, error) {
	switch alg {
	case AlgorithmBlake3:
		key, err := g.symmetricKey()
		if err != nil {
			return nil, err
		}

		return [][]byte{key.Bytes()}, nil

	case AlgorithmEd25519:
		sk, err := g.signingKey()
		if err != nil {
			return nil, err
		}

		return [][]byte{sk.Bytes(), sk.VerifyingKey().Bytes()}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, alg)
}

func (g Generator) entropy() io.Reader {
	if g.Rand != nil {
		return g.Rand
	}

	return rand.Reader
}

func (g Generator) symmetricKey() (SymmetricKey, error) {
	if g.Printable {
		pass, err := genpass.Generate(genpass.Options{
			Length: SymmetricKeySize,
			Rand:   g.Rand,
		})
		if err != nil {
			return SymmetricKey{}, fmt.Errorf("generate symmetric key: %w", err)
		}

		return NewSymmetricKey([]byte(pass))
	}

	b := make([]byte, SymmetricKeySize)
	if _, err := io.ReadFull(g.entropy(), b); err != nil {
		return SymmetricKey{}, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return NewSymmetricKey(b)
}

func (g Generator) signingKey() (SigningKey, error) {
	seed := make([]byte, SigningKeySize)
	if _, err := io.ReadFull(g.entropy(), seed); err != nil {
		return SigningKey{}, fmt.Errorf("%w: %w", ErrRead, err)
	}

	return NewSigningKey(seed)
}
