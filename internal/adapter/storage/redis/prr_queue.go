package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"payment-resolver/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// PRRQueue keeps pending PaymentRequestRequests in one hash per endpoint.
type PRRQueue struct {
	client *goredis.Client
	prefix string
}

// NewPRRQueue creates a Redis-backed PRR queue.
func NewPRRQueue(client *goredis.Client) *PRRQueue {
	return &PRRQueue{
		client: client,
		prefix: "prr:",
	}
}

func (q *PRRQueue) Add(ctx context.Context, endpointID string, prr *domain.PaymentRequestRequest) error {
	buf, err := json.Marshal(prr)
	if err != nil {
		return err
	}
	if err := q.client.HSet(ctx, q.prefix+endpointID, prr.ID, buf).Err(); err != nil {
		return fmt.Errorf("redis prr add: %w", err)
	}
	return nil
}

// List returns the queue oldest first.
func (q *PRRQueue) List(ctx context.Context, endpointID string) ([]*domain.PaymentRequestRequest, error) {
	vals, err := q.client.HGetAll(ctx, q.prefix+endpointID).Result()
	if err != nil {
		return nil, fmt.Errorf("redis prr list: %w", err)
	}

	out := make([]*domain.PaymentRequestRequest, 0, len(vals))
	for id, raw := range vals {
		var prr domain.PaymentRequestRequest
		if err := json.Unmarshal([]byte(raw), &prr); err != nil {
			return nil, fmt.Errorf("decode prr %s: %w", id, err)
		}
		out = append(out, &prr)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SubmitDate != out[j].SubmitDate {
			return out[i].SubmitDate < out[j].SubmitDate
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Get returns nil, nil when the PRR is not queued for the endpoint.
func (q *PRRQueue) Get(ctx context.Context, endpointID, prrID string) (*domain.PaymentRequestRequest, error) {
	raw, err := q.client.HGet(ctx, q.prefix+endpointID, prrID).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis prr get: %w", err)
	}
	var prr domain.PaymentRequestRequest
	if err := json.Unmarshal(raw, &prr); err != nil {
		return nil, fmt.Errorf("decode prr %s: %w", prrID, err)
	}
	return &prr, nil
}

func (q *PRRQueue) Delete(ctx context.Context, endpointID, prrID string) error {
	if err := q.client.HDel(ctx, q.prefix+endpointID, prrID).Err(); err != nil {
		return fmt.Errorf("redis prr delete: %w", err)
	}
	return nil
}

// Endpoints lists the ids with a non-empty queue.
func (q *PRRQueue) Endpoints(ctx context.Context) ([]string, error) {
	return scanKeys(ctx, q.client, q.prefix)
}
