package cryptox

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	password := []byte("secret-password")
	salt := []byte("fixed-salt")

	key1 := DeriveKey(password, salt)
	key2 := DeriveKey(password, salt)

	if !bytes.Equal(key1, key2) {
		t.Errorf("expected same result for same inputs, got different")
	}

	expectedHex := "9290403300158e19f27e48e7087f7383b03065bf5b25ef23ebc40229616cd8b3"
	if hex.EncodeToString(key1) != expectedHex {
		t.Errorf("expected %s, got %s", expectedHex, hex.EncodeToString(key1))
	}
}

func TestDeriveKey_DifferentSalts(t *testing.T) {
	password := []byte("secret-password")

	key1 := DeriveKey(password, []byte("salt-1"))
	key2 := DeriveKey(password, []byte("salt-2"))

	if bytes.Equal(key1, key2) {
		t.Errorf("expected different results for different salts, got same")
	}
}

func TestSealer_RoundTrip(t *testing.T) {
	s, err := NewSealer(DeriveKey([]byte("pw"), []byte("salt")))
	require.NoError(t, err)

	sealed, err := s.Seal([]byte("eyJhbGciOi.token"))
	require.NoError(t, err)
	require.NotContains(t, string(sealed), "token")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, "eyJhbGciOi.token", string(plain))
}

func TestSealer_FreshNoncePerSeal(t *testing.T) {
	s, err := NewSealer(DeriveKey([]byte("pw"), []byte("salt")))
	require.NoError(t, err)

	a, err := s.Seal([]byte("same"))
	require.NoError(t, err)
	b, err := s.Seal([]byte("same"))
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestSealer_WrongKeyFails(t *testing.T) {
	s1, err := NewSealer(DeriveKey([]byte("pw1"), []byte("salt")))
	require.NoError(t, err)
	s2, err := NewSealer(DeriveKey([]byte("pw2"), []byte("salt")))
	require.NoError(t, err)

	sealed, err := s1.Seal([]byte("secret"))
	require.NoError(t, err)

	_, err = s2.Open(sealed)
	require.Error(t, err)
}

func TestSealer_ShortInput(t *testing.T) {
	s, err := NewSealer(make([]byte, KeySize))
	require.NoError(t, err)

	_, err = s.Open([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrCiphertextTooShort)
}

func TestNewSealer_BadKeyLength(t *testing.T) {
	_, err := NewSealer([]byte("short"))
	require.Error(t, err)
}
