package postgres

import (
	"context"
	"fmt"
	"time"

	"payment-resolver/internal/core/domain"
)

// PaymentRequestLogRepo records generated payment requests in a table.
type PaymentRequestLogRepo struct {
	pool Pool
}

// NewPaymentRequestLogRepo creates a new PaymentRequestLogRepo.
func NewPaymentRequestLogRepo(pool Pool) *PaymentRequestLogRepo {
	return &PaymentRequestLogRepo{pool: pool}
}

func (r *PaymentRequestLogRepo) LogPaymentRequest(ctx context.Context, e *domain.PaymentRequestLog) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO payment_request_logs (address, signer, amount, expires, memo, payment_url, merchant_data, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.Address, e.Signer, e.Amount, e.Expires, e.Memo, e.PaymentURL, e.MerchantData, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert payment request log: %w", err)
	}
	return nil
}
