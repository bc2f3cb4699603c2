package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/nekogravitycat/dev-resources-backend/internal/pkg/kvstore"
)

// ownedKeyPrefix is the key holding a user's serialized resource list.
const ownedKeyPrefix = "userResources:"

// OwnedKey returns the store key of userID's resource list.
func OwnedKey(userID string) string {
	return ownedKeyPrefix + userID
}

// Repository persists the resources owned by each user.
type Repository interface {
	ListOwned(ctx context.Context, userID string) ([]Resource, error)
	Create(ctx context.Context, userID string, res Resource) error
	// Update replaces the resource with the given id. It reports false and
	// leaves the list untouched when the id is not present.
	Update(ctx context.Context, userID, id string, res Resource) (bool, error)
	// Delete removes the resource with the given id. It reports false and
	// leaves the list untouched when the id is not present.
	Delete(ctx context.Context, userID, id string) (bool, error)
}

type kvRepository struct {
	store  kvstore.Store
	logger *zap.Logger
}

// NewKVRepository stores every user's list as one JSON array in store.
func NewKVRepository(store kvstore.Store, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &kvRepository{store: store, logger: logger}
}

func (r *kvRepository) ListOwned(ctx context.Context, userID string) ([]Resource, error) {
	raw, err := r.store.Get(ctx, OwnedKey(userID))
	if err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return []Resource{}, nil
		}
		return nil, fmt.Errorf("load owned resources failed: %w", err)
	}

	var list []Resource
	if err := json.Unmarshal(raw, &list); err != nil {
		// Unreadable payloads are treated as an empty list.
		r.logger.Warn("discarding malformed owned resource list",
			zap.String("user_id", userID), zap.Error(err))
		return []Resource{}, nil
	}
	if list == nil {
		list = []Resource{}
	}
	return list, nil
}

func (r *kvRepository) Create(ctx context.Context, userID string, res Resource) error {
	list, err := r.ListOwned(ctx, userID)
	if err != nil {
		return err
	}
	return r.save(ctx, userID, append(list, res))
}

func (r *kvRepository) Update(ctx context.Context, userID, id string, res Resource) (bool, error) {
	list, err := r.ListOwned(ctx, userID)
	if err != nil {
		return false, err
	}

	idx := indexOf(list, id)
	if idx < 0 {
		return false, nil
	}
	list[idx] = res
	return true, r.save(ctx, userID, list)
}

func (r *kvRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	list, err := r.ListOwned(ctx, userID)
	if err != nil {
		return false, err
	}

	idx := indexOf(list, id)
	if idx < 0 {
		return false, nil
	}
	list = append(list[:idx], list[idx+1:]...)
	return true, r.save(ctx, userID, list)
}

func (r *kvRepository) save(ctx context.Context, userID string, list []Resource) error {
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode owned resources failed: %w", err)
	}
	if err := r.store.Set(ctx, OwnedKey(userID), payload); err != nil {
		return fmt.Errorf("save owned resources failed: %w", err)
	}
	return nil
}

func indexOf(list []Resource, id string) int {
	for i, r := range list {
		if r.ID == id {
			return i
		}
	}
	return -1
}
