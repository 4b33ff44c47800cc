package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"valid", "password123", nil},
		{"too short", "pass1", ErrPasswordTooShort},
		{"letters only", "passwordonly", ErrPasswordTooWeak},
		{"digits only", "1234567890", ErrPasswordTooWeak},
		{"exactly eight", "abcdefg1", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, tt.password, hash)
			assert.True(t, CheckPassword(tt.password, hash))
		})
	}
}

func TestCheckPassword_WrongPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	assert.False(t, CheckPassword("password124", hash))
	assert.False(t, CheckPassword("", hash))
	assert.False(t, CheckPassword("password123", "not-a-hash"))
}
