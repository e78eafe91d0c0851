package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	WipeByteArray(buf)
	assert.Equal(t, []byte{0, 0, 0, 0, 0}, buf)
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	assert.Nil(t, StringPtr("   "))

	p := StringPtr("1234")
	require.NotNil(t, p)
	assert.Equal(t, "1234", *p)
}

func TestDeref(t *testing.T) {
	s := "x"
	assert.Equal(t, "x", Deref(&s))
	assert.Equal(t, "", Deref(nil))
}

func TestUserError_MatchesKindAndKeepsMessage(t *testing.T) {
	err := NewUserError(ErrWrongPIN, "Wrong PIN")
	wrapped := fmt.Errorf("unlock: %w", err)

	assert.True(t, errors.Is(wrapped, ErrWrongPIN))
	assert.False(t, errors.Is(wrapped, ErrLocked))
	assert.Equal(t, "Wrong PIN", Message(wrapped))
}

func TestMessage_PlainError(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "boom", Message(errors.New("boom")))
}
