// Package id mints opaque identifiers used to correlate requests in logs.
package id

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

const (
	defaultBytes = 8
	maxLength    = 64
)

type Generator interface {
	NewID() (string, error)
}

// RandomGenerator returns hex encoded random ids of a fixed byte length.
type RandomGenerator struct {
	size int
}

func NewRandomGenerator(size int) *RandomGenerator {
	if size <= 0 {
		size = defaultBytes
	}
	return &RandomGenerator{size: size}
}

func (g *RandomGenerator) NewID() (string, error) {
	buf := make([]byte, g.size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	return hex.EncodeToString(buf), nil
}

// Valid reports whether a caller supplied id is safe to echo back and log.
func Valid(raw string) bool {
	if raw == "" || len(raw) > maxLength {
		return false
	}
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
