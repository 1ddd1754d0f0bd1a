package postgres

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS identities (
		id         TEXT PRIMARY KEY,
		data       JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS audit_logs (
		id            UUID PRIMARY KEY,
		actor         TEXT,
		action        TEXT NOT NULL,
		resource_type TEXT NOT NULL,
		resource_id   TEXT,
		details       JSONB,
		ip_address    TEXT,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payment_request_logs (
		id            BIGSERIAL PRIMARY KEY,
		address       TEXT NOT NULL,
		signer        TEXT NOT NULL,
		amount        BIGINT NOT NULL,
		expires       BIGINT NOT NULL,
		memo          TEXT,
		payment_url   TEXT,
		merchant_data TEXT,
		created_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS notification_delivery_logs (
		id               UUID PRIMARY KEY,
		prr_id           TEXT NOT NULL,
		notification_url TEXT NOT NULL,
		payload          JSONB NOT NULL,
		http_status      INTEGER,
		attempt          INTEGER NOT NULL,
		status           TEXT NOT NULL,
		last_error       TEXT,
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_logs_resource ON audit_logs(resource_type, resource_id)`,
	`CREATE INDEX IF NOT EXISTS idx_pr_logs_address ON payment_request_logs(address)`,
	`CREATE INDEX IF NOT EXISTS idx_notification_prr ON notification_delivery_logs(prr_id)`,
}

// Migrate creates the tables when they do not exist.
func Migrate(ctx context.Context, pool Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
