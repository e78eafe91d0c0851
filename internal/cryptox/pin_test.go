package cryptox

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPIN_Plain(t *testing.T) {
	assert.True(t, MatchPIN("1234", "1234"))
	assert.False(t, MatchPIN("1234", "1235"))
	assert.False(t, MatchPIN("1234", ""))
	assert.False(t, MatchPIN("", ""))
}

func TestSealPIN_RoundTrip(t *testing.T) {
	sealed, err := SealPIN("0912")
	require.NoError(t, err)

	assert.True(t, IsSealed(sealed))
	assert.NotContains(t, sealed, "0912")
	assert.True(t, MatchPIN(sealed, "0912"))
	assert.False(t, MatchPIN(sealed, "0913"))
}

func TestSealPIN_SaltedDifferently(t *testing.T) {
	a, err := SealPIN("same")
	require.NoError(t, err)
	b, err := SealPIN("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSealPIN_RandomError(t *testing.T) {
	orig := readRandom
	t.Cleanup(func() { readRandom = orig })
	readRandom = func([]byte) (int, error) { return 0, errors.New("no entropy") }

	_, err := SealPIN("1")
	require.ErrorContains(t, err, "failed to generate salt")
}

func TestMatchPIN_MalformedSealed(t *testing.T) {
	for _, stored := range []string{
		"argon2id$",
		"argon2id$only-one-part",
		"argon2id$!!!$AAAA",
		"argon2id$AAAA$" + strings.Repeat("A", 10),
	} {
		assert.False(t, MatchPIN(stored, "x"), stored)
	}
}
