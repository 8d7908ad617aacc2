package crypto

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

	MinSecretLength = 8
	MaxSecretLength = 128
)

var (
	ErrSecretTooShort     = errors.New("secret length must be at least 8")
	ErrSecretTooLong      = errors.New("secret length must be at most 128")
	ErrNoCharacterClasses = errors.New("at least one character class must be selected")
	ErrLengthBelowClasses = errors.New("secret length must cover every selected character class")
)

// SecretOptions configures random supplier-secret generation.
type SecretOptions struct {
	Length  int
	Upper   bool
	Lower   bool
	Digits  bool
	Symbols bool
}

// DefaultSecretOptions returns 20 characters with all classes enabled,
// suitable for supplier portal passwords.
func DefaultSecretOptions() SecretOptions {
	return SecretOptions{Length: 20, Upper: true, Lower: true, Digits: true, Symbols: true}
}

// GenerateSecret creates a cryptographically random secret with at least
// one character from every selected class.
func GenerateSecret(opts SecretOptions) (string, error) {
	if opts.Length < MinSecretLength {
		return "", ErrSecretTooShort
	}
	if opts.Length > MaxSecretLength {
		return "", ErrSecretTooLong
	}

	var pool string
	var classes []string
	for _, c := range []struct {
		enabled bool
		chars   string
	}{
		{opts.Upper, upperChars},
		{opts.Lower, lowerChars},
		{opts.Digits, digitChars},
		{opts.Symbols, symbolChars},
	} {
		if c.enabled {
			pool += c.chars
			classes = append(classes, c.chars)
		}
	}

	if len(classes) == 0 {
		return "", ErrNoCharacterClasses
	}
	if opts.Length < len(classes) {
		return "", ErrLengthBelowClasses
	}

	out := make([]byte, opts.Length)

	// One guaranteed character per selected class, rest from the pool.
	for i, charset := range classes {
		ch, err := randChar(charset)
		if err != nil {
			return "", err
		}
		out[i] = ch
	}
	for i := len(classes); i < opts.Length; i++ {
		ch, err := randChar(pool)
		if err != nil {
			return "", err
		}
		out[i] = ch
	}

	if err := shuffle(out); err != nil {
		return "", err
	}

	return string(out), nil
}

func randChar(charset string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
	if err != nil {
		return 0, err
	}
	return charset[n.Int64()], nil
}

// shuffle is a Fisher-Yates shuffle driven by crypto/rand, so the
// guaranteed class characters do not sit at predictable positions.
func shuffle(data []byte) error {
	for i := len(data) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return err
		}
		data[i], data[j.Int64()] = data[j.Int64()], data[i]
	}
	return nil
}
