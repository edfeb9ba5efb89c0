package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	hasher := NewHasher(bcrypt.MinCost)

	digest, err := hasher.Hash("pass1234")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "pass1234", digest)

	assert.True(t, hasher.Verify("pass1234", digest))
	assert.False(t, hasher.Verify("pass12345", digest))
	assert.False(t, hasher.Verify("", digest))
}

func TestHasher_SaltsEveryHash(t *testing.T) {
	hasher := NewHasher(bcrypt.MinCost)

	first, err := hasher.Hash("pass1234")
	require.NoError(t, err)
	second, err := hasher.Hash("pass1234")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Verify("pass1234", first))
	assert.True(t, hasher.Verify("pass1234", second))
}

func TestNewHasher_ClampsInvalidCost(t *testing.T) {
	hasher := NewHasher(bcrypt.MaxCost + 1)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)

	hasher = NewHasher(-1)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}
