package security

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Passw0rd!", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotContains(t, string(hash), "Passw0rd!")

	ok, err := VerifyPassword("Passw0rd!", hash)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyPassword("wrong-password", hash)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	_, err := VerifyPassword("whatever", []byte("not-a-bcrypt-hash"))
	require.Error(t, err)
}

func TestHashPasswordDefaultCost(t *testing.T) {
	hash, err := HashPassword("Passw0rd!", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	require.Equal(t, bcrypt.DefaultCost, cost)
}
