package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret!", 4)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", hash)

	assert.True(t, CheckPassword("s3cret!", hash))
	assert.False(t, CheckPassword("wrong", hash))
}

func TestHashPasswordClampsCost(t *testing.T) {
	hash, err := HashPassword("s3cret!", -1)
	require.NoError(t, err)
	assert.True(t, CheckPassword("s3cret!", hash))
}

func TestGenerateRandomPassword(t *testing.T) {
	p1 := GenerateRandomPassword(16)
	p2 := GenerateRandomPassword(16)
	assert.Len(t, p1, 16)
	assert.NotEqual(t, p1, p2)

	assert.Len(t, GenerateRandomPassword(0), 12)
}
