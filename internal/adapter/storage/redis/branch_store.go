package redis

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	goredis "github.com/redis/go-redis/v9"
)

// BranchStore keeps one hash per endpoint mapping branch to last index.
type BranchStore struct {
	client *goredis.Client
	prefix string
}

// NewBranchStore creates a Redis-backed branch index store.
func NewBranchStore(client *goredis.Client) *BranchStore {
	return &BranchStore{
		client: client,
		prefix: "branches:",
	}
}

func (s *BranchStore) GetIndex(ctx context.Context, id string, branch uint32) (int64, bool, error) {
	val, err := s.client.HGet(ctx, s.prefix+id, strconv.FormatUint(uint64(branch), 10)).Int64()
	if err != nil {
		if err == goredis.Nil {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("redis branch get: %w", err)
	}
	return val, true, nil
}

func (s *BranchStore) SetIndex(ctx context.Context, id string, branch uint32, index int64) error {
	err := s.client.HSet(ctx, s.prefix+id, strconv.FormatUint(uint64(branch), 10), index).Err()
	if err != nil {
		return fmt.Errorf("redis branch set: %w", err)
	}
	return nil
}

// Branches lists the branches with an issued index, ascending.
func (s *BranchStore) Branches(ctx context.Context, id string) ([]uint32, error) {
	fields, err := s.client.HKeys(ctx, s.prefix+id).Result()
	if err != nil {
		return nil, fmt.Errorf("redis branch list: %w", err)
	}

	out := make([]uint32, 0, len(fields))
	for _, f := range fields {
		b, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			continue
		}
		out = append(out, uint32(b))
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (s *BranchStore) DeleteAll(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.prefix+id).Err(); err != nil {
		return fmt.Errorf("redis branch delete: %w", err)
	}
	return nil
}
