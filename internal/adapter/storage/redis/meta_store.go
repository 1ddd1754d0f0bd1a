package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"payment-resolver/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// InvoiceMetaStore keeps the expected outputs of generated requests, one
// hash per merchant_data key. Entries expire at their expiration_date.
type InvoiceMetaStore struct {
	client *goredis.Client
	prefix string
}

// NewInvoiceMetaStore creates a Redis-backed invoice metadata store.
func NewInvoiceMetaStore(client *goredis.Client) *InvoiceMetaStore {
	return &InvoiceMetaStore{
		client: client,
		prefix: "invoice:",
	}
}

func (s *InvoiceMetaStore) Put(ctx context.Context, meta *domain.InvoiceMeta) error {
	key := s.prefix + meta.Key
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]any{
			"expiration_date":         meta.ExpirationDate,
			"payment_validation_data": meta.PaymentValidationData,
		})
		if meta.ExpirationDate > 0 {
			pipe.ExpireAt(ctx, key, time.Unix(meta.ExpirationDate, 0))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis invoice meta put: %w", err)
	}
	return nil
}

// Get returns nil, nil when the key is unknown.
func (s *InvoiceMetaStore) Get(ctx context.Context, key string) (*domain.InvoiceMeta, error) {
	vals, err := s.client.HGetAll(ctx, s.prefix+key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis invoice meta get: %w", err)
	}
	if len(vals) == 0 {
		return nil, nil
	}

	exp, _ := strconv.ParseInt(vals["expiration_date"], 10, 64)
	return &domain.InvoiceMeta{
		Key:                   key,
		ExpirationDate:        exp,
		PaymentValidationData: vals["payment_validation_data"],
	}, nil
}

func (s *InvoiceMetaStore) Purge(ctx context.Context, now time.Time) (int, error) {
	return purgeExpired(ctx, s.client, s.prefix, now)
}

// PaymentMetaStore keeps refund data per transaction hash.
type PaymentMetaStore struct {
	client *goredis.Client
	prefix string
}

// NewPaymentMetaStore creates a Redis-backed payment metadata store.
func NewPaymentMetaStore(client *goredis.Client) *PaymentMetaStore {
	return &PaymentMetaStore{
		client: client,
		prefix: "payment:",
	}
}

func (s *PaymentMetaStore) Put(ctx context.Context, meta *domain.PaymentMeta) error {
	refund, err := json.Marshal(meta.RefundTo)
	if err != nil {
		return err
	}

	key := s.prefix + meta.TxHash
	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]any{
			"memo":            meta.Memo,
			"refund_to":       string(refund),
			"expiration_date": meta.ExpirationDate,
		})
		if meta.ExpirationDate > 0 {
			pipe.ExpireAt(ctx, key, time.Unix(meta.ExpirationDate, 0))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis payment meta put: %w", err)
	}
	return nil
}

// Get returns nil, nil when the transaction is unknown.
func (s *PaymentMetaStore) Get(ctx context.Context, txHash string) (*domain.PaymentMeta, error) {
	vals, err := s.client.HGetAll(ctx, s.prefix+txHash).Result()
	if err != nil {
		return nil, fmt.Errorf("redis payment meta get: %w", err)
	}
	if len(vals) == 0 {
		return nil, nil
	}

	meta := &domain.PaymentMeta{TxHash: txHash, Memo: vals["memo"]}
	meta.ExpirationDate, _ = strconv.ParseInt(vals["expiration_date"], 10, 64)
	if raw := vals["refund_to"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &meta.RefundTo); err != nil {
			return nil, fmt.Errorf("decode refund_to for %s: %w", txHash, err)
		}
	}
	return meta, nil
}

func (s *PaymentMetaStore) Purge(ctx context.Context, now time.Time) (int, error) {
	return purgeExpired(ctx, s.client, s.prefix, now)
}

// purgeExpired deletes hashes whose expiration_date is set and before now.
// Key expiry normally removes them first; this catches entries written
// without a TTL.
func purgeExpired(ctx context.Context, client *goredis.Client, prefix string, now time.Time) (int, error) {
	keys, err := scanKeys(ctx, client, prefix)
	if err != nil {
		return 0, err
	}

	purged := 0
	for _, k := range keys {
		exp, err := client.HGet(ctx, prefix+k, "expiration_date").Int64()
		if err != nil {
			if err == goredis.Nil {
				continue
			}
			return purged, fmt.Errorf("redis purge read %s: %w", k, err)
		}
		if exp == 0 || exp >= now.Unix() {
			continue
		}
		if err := client.Del(ctx, prefix+k).Err(); err != nil {
			return purged, fmt.Errorf("redis purge delete %s: %w", k, err)
		}
		purged++
	}
	return purged, nil
}
