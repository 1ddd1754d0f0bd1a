package redis

import (
	"context"
	"fmt"
	"time"

	"payment-resolver/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// PaymentRequestLog writes one hash per generated payment request into the
// log database, keyed address-created-expires.
type PaymentRequestLog struct {
	client *goredis.Client
	log    zerolog.Logger
}

// NewPaymentRequestLog creates a Redis payment request logger.
func NewPaymentRequestLog(client *goredis.Client, log zerolog.Logger) *PaymentRequestLog {
	return &PaymentRequestLog{client: client, log: log}
}

func (l *PaymentRequestLog) LogPaymentRequest(ctx context.Context, entry *domain.PaymentRequestLog) error {
	created := entry.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	key := fmt.Sprintf("%s-%d-%d", entry.Address, created.Unix(), entry.Expires)

	err := l.client.HSet(ctx, key, map[string]any{
		"address":       entry.Address,
		"signer":        entry.Signer,
		"amount":        entry.Amount,
		"expires":       entry.Expires,
		"memo":          entry.Memo,
		"payment_url":   entry.PaymentURL,
		"merchant_data": entry.MerchantData,
	}).Err()
	if err != nil {
		return fmt.Errorf("redis pr log: %w", err)
	}

	l.log.Debug().Str("key", key).Msg("payment request logged")
	return nil
}
