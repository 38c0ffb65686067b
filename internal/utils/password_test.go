package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass", hash))
}

func TestRandomNumericString(t *testing.T) {
	s := RandomNumericString(4)
	require.Len(t, s, 4)
	for _, c := range s {
		assert.True(t, c >= '0' && c <= '9')
	}
}
