package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	// Base62 alphabet: 0-9, A-Z, a-z
	alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

	// DefaultLength is the default length for generated short IDs
	DefaultLength = 12
)

// Prefixes for entity types (Stripe-style)
const (
	PrefixPlan    = "plan"
	PrefixPayment = "pay"
)

// Generate creates a random short ID with the specified length using Base62
// encoding. The generated ID is cryptographically random and URL-safe.
func Generate(length int) (string, error) {
	if length <= 0 {
		length = DefaultLength
	}

	result := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(alphabet)))

	for i := 0; i < length; i++ {
		num, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("failed to generate random number: %w", err)
		}
		result[i] = alphabet[num.Int64()]
	}

	return string(result), nil
}

// GenerateWithPrefix creates a prefixed ID in the format "prefix_random".
func GenerateWithPrefix(prefix string, length int) (string, error) {
	shortID, err := Generate(length)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s_%s", prefix, shortID), nil
}

// MustGenerateWithPrefix creates a prefixed ID and panics on error.
func MustGenerateWithPrefix(prefix string, length int) string {
	shortID, err := GenerateWithPrefix(prefix, length)
	if err != nil {
		panic(err)
	}
	return shortID
}

// ValidatePrefix checks that sid carries the expected prefix.
func ValidatePrefix(sid, prefix string) error {
	if !strings.HasPrefix(sid, prefix+"_") {
		return fmt.Errorf("invalid ID format: expected %s_xxx, got %q", prefix, sid)
	}
	if len(sid) <= len(prefix)+1 {
		return fmt.Errorf("invalid ID format: missing random part in %q", sid)
	}
	return nil
}
