package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(4) // low cost keeps the test fast

	hashed, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hashed)

	assert.True(t, hasher.Compare(hashed, "correct horse battery staple"))
	assert.False(t, hasher.Compare(hashed, "wrong password"))
	assert.False(t, hasher.Compare("not a bcrypt hash", "anything"))
}

func TestBcryptHashesAreSalted(t *testing.T) {
	hasher := NewBcryptHasher(4)

	first, err := hasher.Hash("password")
	require.NoError(t, err)
	second, err := hasher.Hash("password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, hasher.Compare(first, "password"))
	assert.True(t, hasher.Compare(second, "password"))
}
