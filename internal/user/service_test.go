package user

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/dev-resources-backend/internal/auth"
	"github.com/nekogravitycat/dev-resources-backend/internal/pkg/kvstore"
)

func newTestService() Service {
	return NewService(
		NewKVRepository(kvstore.NewMemoryStore()),
		auth.NewBcryptPasswordHasherWithCost(4),
		nil,
	)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success normalizes email", func(t *testing.T) {
		svc := newTestService()
		u, err := svc.Register(ctx, "  Ada@Example.COM ", "password123", " Ada ")
		require.NoError(t, err)

		assert.NotEmpty(t, u.ID)
		assert.Equal(t, "ada@example.com", u.Email)
		assert.Equal(t, "Ada", u.DisplayName)
		assert.NotEqual(t, "password123", u.PasswordHash)

		got, err := svc.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.Email, got.Email)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.Register(ctx, "ada@example.com", "password123", "Ada")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "ADA@example.com", "password456", "Other")
		assert.ErrorIs(t, err, ErrEmailAlreadyUsed)
	})

	t.Run("Input checks", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.Register(ctx, "  ", "password123", "")
		assert.ErrorIs(t, err, ErrEmailRequired)

		_, err = svc.Register(ctx, "a@b.c", "short", "")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	registered, err := svc.Register(ctx, "ada@example.com", "password123", "Ada")
	require.NoError(t, err)

	t.Run("Success records last login", func(t *testing.T) {
		u, err := svc.Login(ctx, "ADA@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, u.ID)

		got, err := svc.GetByID(ctx, u.ID)
		require.NoError(t, err)
		assert.NotNil(t, got.LastLoginAt)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "ada@example.com", "nope-nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown email looks the same as a wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "who@example.com", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown id", func(t *testing.T) {
		_, err := svc.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

// flakyStore fails writes of user records while failRecords is set.
type flakyStore struct {
	kvstore.Store
	failRecords bool
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failRecords && strings.HasPrefix(key, "users/id/") {
		return errors.New("disk full")
	}
	return s.Store.Set(ctx, key, value)
}

func TestRegisterFailedWriteKeepsEmailFree(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{Store: kvstore.NewMemoryStore(), failRecords: true}
	svc := NewService(NewKVRepository(store), auth.NewBcryptPasswordHasherWithCost(4), nil)

	_, err := svc.Register(ctx, "ada@example.com", "password123", "Ada")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrEmailAlreadyUsed)

	store.failRecords = false
	u, err := svc.Register(ctx, "ada@example.com", "password123", "Ada")
	require.NoError(t, err)

	got, err := svc.Login(ctx, "ada@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
}
