package redis

import (
	"context"
	"fmt"

	"payment-resolver/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

const syncHeightKey = "last_blockheight"

// AddressCache maps every address seen on chain to the first block height
// it appeared in. It lives in its own database.
type AddressCache struct {
	client    *goredis.Client
	node      ports.BlockchainNode
	threshold int64
}

// NewAddressCache creates a cache that reports itself up to date while the
// sync height is within threshold blocks of the node tip.
func NewAddressCache(client *goredis.Client, node ports.BlockchainNode, threshold int64) *AddressCache {
	return &AddressCache{client: client, node: node, threshold: threshold}
}

func (c *AddressCache) IsAddressUsed(ctx context.Context, address string) (bool, error) {
	n, err := c.client.Exists(ctx, address).Result()
	if err != nil {
		return false, fmt.Errorf("redis address lookup: %w", err)
	}
	return n > 0, nil
}

// CurrentSyncHeight returns 0 before the first build.
func (c *AddressCache) CurrentSyncHeight(ctx context.Context) (int64, error) {
	h, err := c.client.Get(ctx, syncHeightKey).Int64()
	if err != nil {
		if err == goredis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("redis sync height: %w", err)
	}
	return h, nil
}

func (c *AddressCache) IsUpToDate(ctx context.Context) (bool, error) {
	synced, err := c.CurrentSyncHeight(ctx)
	if err != nil {
		return false, err
	}
	tip, err := c.node.GetBlockCount(ctx)
	if err != nil {
		return false, fmt.Errorf("node block count: %w", err)
	}
	return tip-synced <= c.threshold, nil
}

// MarkUsed records the first height an address was seen at. Later sightings
// keep the original height.
func (c *AddressCache) MarkUsed(ctx context.Context, address string, height int64) error {
	err := c.client.SetArgs(ctx, address, height, goredis.SetArgs{Mode: "NX"}).Err()
	if err != nil && err != goredis.Nil {
		return fmt.Errorf("redis mark used: %w", err)
	}
	return nil
}

func (c *AddressCache) SetSyncHeight(ctx context.Context, height int64) error {
	if err := c.client.Set(ctx, syncHeightKey, height, 0).Err(); err != nil {
		return fmt.Errorf("redis set sync height: %w", err)
	}
	return nil
}
