package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"payment-resolver/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

const maxIDAttempts = 10

// ErrIDSpaceBusy means no free id was found after repeated collisions.
var ErrIDSpaceBusy = errors.New("unable to allocate unique id")

// IdentityStore keeps IdObjects as JSON documents.
type IdentityStore struct {
	client *goredis.Client
	prefix string
}

// NewIdentityStore creates a Redis-backed identity store.
func NewIdentityStore(client *goredis.Client) *IdentityStore {
	return &IdentityStore{
		client: client,
		prefix: "id:",
	}
}

// Get returns nil, nil if the id does not exist.
func (s *IdentityStore) Get(ctx context.Context, id string) (*domain.IdObject, error) {
	val, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis identity get: %w", err)
	}

	obj := domain.NewIdObject(id)
	if err := json.Unmarshal(val, obj); err != nil {
		return nil, fmt.Errorf("decode identity %s: %w", id, err)
	}
	obj.ID = id
	return obj, nil
}

// Save writes obj. A record without an id gets a fresh one, claimed with
// SET NX so concurrent creators never share an id.
func (s *IdentityStore) Save(ctx context.Context, obj *domain.IdObject) (string, error) {
	if obj.ID != "" {
		buf, err := json.Marshal(obj)
		if err != nil {
			return "", err
		}
		if err := s.client.Set(ctx, s.prefix+obj.ID, buf, 0).Err(); err != nil {
			return "", fmt.Errorf("redis identity set: %w", err)
		}
		return obj.ID, nil
	}

	for i := 0; i < maxIDAttempts; i++ {
		obj.ID = domain.NewHexToken(1)
		buf, err := json.Marshal(obj)
		if err != nil {
			obj.ID = ""
			return "", err
		}
		_, err = s.client.SetArgs(ctx, s.prefix+obj.ID, buf, goredis.SetArgs{Mode: "NX"}).Result()
		if err == nil {
			return obj.ID, nil
		}
		if err != goredis.Nil {
			obj.ID = ""
			return "", fmt.Errorf("redis identity claim: %w", err)
		}
	}
	obj.ID = ""
	return "", ErrIDSpaceBusy
}

func (s *IdentityStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.prefix+id).Err(); err != nil {
		return fmt.Errorf("redis identity delete: %w", err)
	}
	return nil
}

func (s *IdentityStore) ListKeys(ctx context.Context) ([]string, error) {
	return scanKeys(ctx, s.client, s.prefix)
}
