package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/splitease/internal/models"
	"github.com/mmynk/splitease/internal/storage/memory"
)

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	a := NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)

	user, err := a.Register(ctx, "Alice@Example.com", "Alice", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "correct horse", user.PasswordHash)

	t.Run("login is case insensitive on email", func(t *testing.T) {
		got, err := a.Authenticate(ctx, "ALICE@example.com", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "alice@example.com", "battery staple")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := a.Authenticate(ctx, "bob@example.com", "correct horse")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := a.Register(ctx, "alice@example.com", "Other Alice", "another password")
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := a.Register(ctx, "carol@example.com", "Carol", "short")
		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("passwordless user cannot log in", func(t *testing.T) {
		require.NoError(t, store.CreateUser(ctx, models.NewUser("dave@example.com", "Dave", "")))
		_, err := a.Authenticate(ctx, "dave@example.com", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
