package auth

import (
	"testing"

	"github.com/hcplayer1988/coderr/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func createTestHasher(t *testing.T) *bcryptHasher {
	t.Helper()

	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}}
	hasher, ok := NewBcryptHasher(cfg).(*bcryptHasher)
	require.True(t, ok)

	return hasher
}

func TestBcryptHasher_HashAndCheck(t *testing.T) {
	t.Parallel()

	hasher := createTestHasher(t)

	hash, err := hasher.Hash("supersecret")

	require.NoError(t, err)
	assert.NotEqual(t, "supersecret", hash)
	assert.True(t, hasher.Check("supersecret", hash))
	assert.False(t, hasher.Check("wrong", hash))
}

func TestBcryptHasher_HashesAreSalted(t *testing.T) {
	t.Parallel()

	hasher := createTestHasher(t)

	first, err := hasher.Hash("supersecret")
	require.NoError(t, err)
	second, err := hasher.Hash("supersecret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestNewBcryptHasher_CostOutOfRangeFallsBack(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Auth: &config.AuthConfig{BcryptCost: 99}}
	hasher, ok := NewBcryptHasher(cfg).(*bcryptHasher)
	require.True(t, ok)

	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}
