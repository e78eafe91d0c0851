// Package cryptox seals and checks note PINs.
//
// A PIN is stored either as plain text, which is what older rows and clients
// write, or sealed as "argon2id$<salt>$<key>" with base64 (raw, std) parts.
// MatchPIN accepts both forms.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	sealPrefix = "argon2id$"

	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	saltLen      = 16
)

var enc = base64.RawStdEncoding

// readRandom is a test seam for crypto/rand.
var readRandom = rand.Read

func derive(pin string, salt []byte) []byte {
	return argon2.IDKey([]byte(pin), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}

// SealPIN returns the argon2id form of pin.
func SealPIN(pin string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := readRandom(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	key := derive(pin, salt)
	return sealPrefix + enc.EncodeToString(salt) + "$" + enc.EncodeToString(key), nil
}

// IsSealed reports whether stored is in sealed form.
func IsSealed(stored string) bool {
	return strings.HasPrefix(stored, sealPrefix)
}

// MatchPIN reports whether candidate opens a note whose stored PIN is stored.
// An empty stored value never matches.
func MatchPIN(stored, candidate string) bool {
	if stored == "" {
		return false
	}
	if !IsSealed(stored) {
		return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
	}

	parts := strings.Split(strings.TrimPrefix(stored, sealPrefix), "$")
	if len(parts) != 2 {
		return false
	}
	salt, err := enc.DecodeString(parts[0])
	if err != nil {
		return false
	}
	want, err := enc.DecodeString(parts[1])
	if err != nil || len(want) != argonKeyLen {
		return false
	}
	return subtle.ConstantTimeCompare(derive(candidate, salt), want) == 1
}
