package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "password123", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	assert.NoError(t, CheckPassword("password123", hash))
	assert.Error(t, CheckPassword("wrong-password", hash))
}

func TestHashPassword_RejectsOverlongInput(t *testing.T) {
	// bcrypt refuses inputs over 72 bytes rather than silently truncating
	long := strings.Repeat("a", 73)
	_, err := HashPassword(long, bcrypt.MinCost)
	assert.Error(t, err)
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	h1, err := HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
