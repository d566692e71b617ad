// Package passgen generates printable passwords from character classes.
//
// It is only used to produce legacy BLAKE3 keys, which older tooling made
// out of 32-character passwords instead of raw random bytes.
package passgen

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/mrz1836/keysmith/internal/errors"
)

// Class is a bit set of character classes.
type Class uint8

// Character classes.
const (
	Upper Class = 1 << iota
	Lower
	Digit
	Symbol

	// AllClasses selects every class.
	AllClasses = Upper | Lower | Digit | Symbol
)

// MaxLength is the longest password Generate will produce.
const MaxLength = 255

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+"
)

// classSets lists each class with its alphabet, in the order the
// guaranteed characters are drawn.
var classSets = []struct { //nolint:gochecknoglobals // read-only table
	class Class
	chars string
}{
	{Upper, upperChars},
	{Lower, lowerChars},
	{Digit, digitChars},
	{Symbol, symbolChars},
}

// Generator draws passwords from a random source.
type Generator struct {
	rand io.Reader
}

// New creates a Generator reading from r. A nil r uses crypto/rand.Reader.
func New(r io.Reader) *Generator {
	if r == nil {
		r = rand.Reader
	}
	return &Generator{rand: r}
}

// Generate returns a password of exactly length characters containing at
// least one character of every selected class, in random order.
func (g *Generator) Generate(length int, classes Class) (string, error) {
	selected := 0
	for _, set := range classSets {
		if classes&set.class != 0 {
			selected++
		}
	}
	if selected == 0 {
		return "", errors.Wrap(errors.ErrEmptyValue, "no character classes selected")
	}
	if length < selected || length > MaxLength {
		return "", errors.Wrapf(errors.ErrInvalidLength, "password length %d must be between %d and %d", length, selected, MaxLength)
	}

	var alphabet []byte
	password := make([]byte, 0, length)
	for _, set := range classSets {
		if classes&set.class == 0 {
			continue
		}
		c, err := g.pick(set.chars)
		if err != nil {
			return "", err
		}
		password = append(password, c)
		alphabet = append(alphabet, set.chars...)
	}

	for len(password) < length {
		c, err := g.pick(string(alphabet))
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	if err := g.shuffle(password); err != nil {
		return "", err
	}
	return string(password), nil
}

func (g *Generator) pick(chars string) (byte, error) {
	i, err := g.intn(len(chars))
	if err != nil {
		return 0, err
	}
	return chars[i], nil
}

// shuffle is a Fisher-Yates shuffle.
func (g *Generator) shuffle(b []byte) error {
	for i := len(b) - 1; i > 0; i-- {
		j, err := g.intn(i + 1)
		if err != nil {
			return err
		}
		b[i], b[j] = b[j], b[i]
	}
	return nil
}

func (g *Generator) intn(n int) (int, error) {
	v, err := rand.Int(g.rand, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("drawing password character: %w: %w", errors.ErrRandomSource, err)
	}
	return int(v.Int64()), nil
}
