package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3nh4-forte")
	require.NoError(t, err)
	require.NotEqual(t, "s3nh4-forte", hash)

	assert.True(t, VerifyPassword("s3nh4-forte", hash))
	assert.False(t, VerifyPassword("senha-errada", hash))
}

func TestHashIsSalted(t *testing.T) {
	a, err := HashPassword("mesma-senha")
	require.NoError(t, err)
	b, err := HashPassword("mesma-senha")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
