package redis

import (
	"context"

	goredis "github.com/redis/go-redis/v9"
)

// HealthCheck implements ports.HealthChecker for one Redis database.
type HealthCheck struct {
	client *goredis.Client
	name   string
}

// NewHealthCheck creates a Redis health checker reported under name.
func NewHealthCheck(client *goredis.Client, name string) *HealthCheck {
	if name == "" {
		name = "redis"
	}
	return &HealthCheck{client: client, name: name}
}

// Ping checks Redis connectivity.
func (h *HealthCheck) Ping(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}

// Name returns the dependency name.
func (h *HealthCheck) Name() string {
	return h.name
}
