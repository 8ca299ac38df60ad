package utils_test

import (
	"testing"

	"github.com/athlog/training_log_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_NotPlaintext(t *testing.T) {
	password := "a long and winding password"

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	assert.NotEqual(t, password, hash)
	assert.NotEmpty(t, hash)
}

func TestCheckPasswordHash(t *testing.T) {
	password := "a long and winding password"

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	assert.True(t, utils.CheckPasswordHash(password, hash))
	assert.False(t, utils.CheckPasswordHash("not the password", hash))
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	password := "same input"

	hash1, err := utils.HashPassword(password)
	require.NoError(t, err)
	hash2, err := utils.HashPassword(password)
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
	assert.True(t, utils.CheckPasswordHash(password, hash1))
	assert.True(t, utils.CheckPasswordHash(password, hash2))
}
