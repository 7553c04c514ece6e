package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealer_RoundTrip(t *testing.T) {
	s, err := NewSealer("payout-key")
	require.NoError(t, err)

	sealed, err := s.Seal("owner@example.com")
	require.NoError(t, err)
	assert.NotContains(t, sealed, "owner@example.com")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", plain)
}

func TestSealer_FreshNoncePerSeal(t *testing.T) {
	s, _ := NewSealer("payout-key")

	a, _ := s.Seal("owner@example.com")
	b, _ := s.Seal("owner@example.com")

	assert.NotEqual(t, a, b)
}

func TestSealer_WrongKeyOrGarbage(t *testing.T) {
	s, _ := NewSealer("payout-key")
	other, _ := NewSealer("another-key")
	sealed, _ := s.Seal("owner@example.com")

	_, err := other.Open(sealed)
	assert.ErrorIs(t, err, ErrDecrypt)

	_, err = s.Open("not-base64!!")
	assert.ErrorIs(t, err, ErrDecrypt)

	_, err = s.Open("c2hvcnQ=")
	assert.ErrorIs(t, err, ErrDecrypt)
}

func TestNewSealer_RequiresKey(t *testing.T) {
	_, err := NewSealer("")
	assert.Error(t, err)
}
