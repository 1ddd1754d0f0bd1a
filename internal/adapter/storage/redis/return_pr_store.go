package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"payment-resolver/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// ReturnPRStore keeps encrypted return PaymentRequests by PRR id.
type ReturnPRStore struct {
	client *goredis.Client
	prefix string
}

// NewReturnPRStore creates a Redis-backed return PaymentRequest store.
func NewReturnPRStore(client *goredis.Client) *ReturnPRStore {
	return &ReturnPRStore{
		client: client,
		prefix: "rpr:",
	}
}

func (s *ReturnPRStore) Put(ctx context.Context, rpr *domain.ReturnPaymentRequest) error {
	buf, err := json.Marshal(rpr)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.prefix+rpr.ID, buf, 0).Err(); err != nil {
		return fmt.Errorf("redis return pr set: %w", err)
	}
	return nil
}

// Get returns nil, nil if the id does not exist.
func (s *ReturnPRStore) Get(ctx context.Context, id string) (*domain.ReturnPaymentRequest, error) {
	raw, err := s.client.Get(ctx, s.prefix+id).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis return pr get: %w", err)
	}
	var rpr domain.ReturnPaymentRequest
	if err := json.Unmarshal(raw, &rpr); err != nil {
		return nil, fmt.Errorf("decode return pr %s: %w", id, err)
	}
	return &rpr, nil
}

func (s *ReturnPRStore) ListAll(ctx context.Context) ([]*domain.ReturnPaymentRequest, error) {
	ids, err := scanKeys(ctx, s.client, s.prefix)
	if err != nil {
		return nil, err
	}

	out := make([]*domain.ReturnPaymentRequest, 0, len(ids))
	for _, id := range ids {
		rpr, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if rpr != nil {
			out = append(out, rpr)
		}
	}
	return out, nil
}

func (s *ReturnPRStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.prefix+id).Err(); err != nil {
		return fmt.Errorf("redis return pr delete: %w", err)
	}
	return nil
}
