package user_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ec-shop/internal/apperr"
	"github.com/example/ec-shop/internal/auth"
	"github.com/example/ec-shop/internal/domain/user"
	"github.com/example/ec-shop/internal/infrastructure/store/mocks"
)

func TestService_Register(t *testing.T) {
	m := mocks.NewMemory()
	svc := user.NewService(m.Users())

	u, err := svc.Register(context.Background(), "Test User", "Test@Example.com", "password123")
	require.NoError(t, err)

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "test@example.com", u.Email, "email is lowercased")
	assert.Equal(t, user.DefaultAddress, u.Address)
	assert.True(t, u.WalletMoney.Equal(user.DefaultWalletMoney))
	assert.NotEqual(t, "password123", u.PasswordHash)
	assert.True(t, auth.CheckPassword("password123", u.PasswordHash))
}

func TestService_Register_EmailTaken(t *testing.T) {
	m := mocks.NewMemory()
	svc := user.NewService(m.Users())

	_, err := svc.Register(context.Background(), "First", "test@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "Second", "test@example.com", "password456")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindBadRequest))
	assert.Equal(t, "Email already taken", err.Error())
}

func TestService_Register_WeakPassword(t *testing.T) {
	m := mocks.NewMemory()
	svc := user.NewService(m.Users())

	_, err := svc.Register(context.Background(), "Test", "test@example.com", "short1")
	assert.ErrorIs(t, err, auth.ErrPasswordTooShort)

	_, err = svc.Register(context.Background(), "Test", "test@example.com", "lettersonly")
	assert.ErrorIs(t, err, auth.ErrPasswordTooWeak)
}

func TestService_GetByEmail_NotFound(t *testing.T) {
	m := mocks.NewMemory()
	svc := user.NewService(m.Users())

	_, err := svc.GetByEmail(context.Background(), "missing@example.com")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestService_SetAddress(t *testing.T) {
	m := mocks.NewMemory()
	svc := user.NewService(m.Users())

	u, err := svc.Register(context.Background(), "Test", "test@example.com", "password123")
	require.NoError(t, err)
	assert.False(t, u.HasSetNonDefaultAddress())

	require.NoError(t, svc.SetAddress(context.Background(), u, "221B Baker Street, London"))
	assert.True(t, u.HasSetNonDefaultAddress())

	stored, err := svc.GetByEmail(context.Background(), "test@example.com")
	require.NoError(t, err)
	assert.Equal(t, "221B Baker Street, London", stored.Address)
}
