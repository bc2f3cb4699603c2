package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nekogravitycat/dev-resources-backend/internal/pkg/kvstore"
)

// Repository defines methods for accessing user data from storage.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, u *User) error
	UpdateLastLogin(ctx context.Context, id string, t time.Time) error
}

type kvRepository struct {
	store kvstore.Store
}

// NewKVRepository keeps users in store under two keys: users/id/<id> holds
// the record and users/email/<email> holds the id.
func NewKVRepository(store kvstore.Store) Repository {
	return &kvRepository{store: store}
}

func idKey(id string) string       { return "users/id/" + id }
func emailKey(email string) string { return "users/email/" + email }

func (r *kvRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	id, err := r.store.Get(ctx, emailKey(email))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetByEmail failed: %w", err)
	}
	return r.GetByID(ctx, string(id))
}

func (r *kvRepository) GetByID(ctx context.Context, id string) (*User, error) {
	raw, err := r.store.Get(ctx, idKey(id))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetByID failed: %w", err)
	}

	var u User
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode user %s failed: %w", id, err)
	}
	return &u, nil
}

// Create writes the record before claiming the email, so a failed write never
// leaves the email pointing at a missing user. A record whose email claim
// loses the race stays unreachable.
func (r *kvRepository) Create(ctx context.Context, u *User) error {
	if err := r.put(ctx, u); err != nil {
		return err
	}
	if err := r.store.Create(ctx, emailKey(u.Email), []byte(u.ID)); err != nil {
		if errors.Is(err, kvstore.ErrExists) {
			return ErrEmailAlreadyUsed
		}
		return fmt.Errorf("Create user failed: %w", err)
	}
	return nil
}

func (r *kvRepository) UpdateLastLogin(ctx context.Context, id string, t time.Time) error {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	u.LastLoginAt = &t
	return r.put(ctx, u)
}

func (r *kvRepository) put(ctx context.Context, u *User) error {
	payload, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user failed: %w", err)
	}
	if err := r.store.Set(ctx, idKey(u.ID), payload); err != nil {
		return fmt.Errorf("save user failed: %w", err)
	}
	return nil
}
