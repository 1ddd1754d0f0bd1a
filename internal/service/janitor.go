package service

import (
	"context"
	"fmt"
	"time"

	"payment-resolver/internal/core/ports"

	"github.com/rs/zerolog"
)

// CleanupStats counts what a Janitor run removed.
type CleanupStats struct {
	PRRs         int
	Returns      int
	InvoiceMetas int
	PaymentMetas int
}

// Janitor expires queued PRRs, return PaymentRequests and payment metadata.
type Janitor struct {
	queue        ports.PRRQueue
	returns      ports.ReturnPRStore
	invoices     ports.InvoiceMetaStore
	payments     ports.PaymentMetaStore
	prrMaxAge    time.Duration
	returnMaxAge time.Duration
	log          zerolog.Logger
	now          func() time.Time
}

// NewJanitor creates a Janitor.
func NewJanitor(
	queue ports.PRRQueue,
	returns ports.ReturnPRStore,
	invoices ports.InvoiceMetaStore,
	payments ports.PaymentMetaStore,
	prrMaxAge, returnMaxAge time.Duration,
	log zerolog.Logger,
) *Janitor {
	return &Janitor{
		queue:        queue,
		returns:      returns,
		invoices:     invoices,
		payments:     payments,
		prrMaxAge:    prrMaxAge,
		returnMaxAge: returnMaxAge,
		log:          log,
		now:          time.Now,
	}
}

// Run performs one cleanup pass. A failing delete is logged and skipped;
// a failing listing aborts the pass.
func (j *Janitor) Run(ctx context.Context) (*CleanupStats, error) {
	now := j.now()
	stats := &CleanupStats{}

	n, err := j.purgePRRs(ctx, now)
	if err != nil {
		return stats, err
	}
	stats.PRRs = n

	if n, err = j.purgeReturns(ctx, now); err != nil {
		return stats, err
	}
	stats.Returns = n

	if stats.InvoiceMetas, err = j.invoices.Purge(ctx, now); err != nil {
		return stats, fmt.Errorf("purge invoice meta: %w", err)
	}
	if stats.PaymentMetas, err = j.payments.Purge(ctx, now); err != nil {
		return stats, fmt.Errorf("purge payment meta: %w", err)
	}

	j.log.Info().
		Int("prrs", stats.PRRs).
		Int("returns", stats.Returns).
		Int("invoice_metas", stats.InvoiceMetas).
		Int("payment_metas", stats.PaymentMetas).
		Msg("expired data removed")
	return stats, nil
}

func (j *Janitor) purgePRRs(ctx context.Context, now time.Time) (int, error) {
	endpoints, err := j.queue.Endpoints(ctx)
	if err != nil {
		return 0, fmt.Errorf("list prr endpoints: %w", err)
	}

	removed := 0
	for _, id := range endpoints {
		prrs, err := j.queue.List(ctx, id)
		if err != nil {
			return removed, fmt.Errorf("list prrs for %s: %w", id, err)
		}
		for _, prr := range prrs {
			if !prr.IsStale(now, j.prrMaxAge) {
				continue
			}
			if err := j.queue.Delete(ctx, id, prr.ID); err != nil {
				j.log.Warn().Err(err).Str("id", id).Str("prr_id", prr.ID).Msg("failed to delete expired prr")
				continue
			}
			removed++
		}
	}
	return removed, nil
}

func (j *Janitor) purgeReturns(ctx context.Context, now time.Time) (int, error) {
	rprs, err := j.returns.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("list return payment requests: %w", err)
	}

	removed := 0
	for _, rpr := range rprs {
		if !rpr.IsStale(now, j.returnMaxAge) {
			continue
		}
		if err := j.returns.Delete(ctx, rpr.ID); err != nil {
			j.log.Warn().Err(err).Str("prr_id", rpr.ID).Msg("failed to delete expired return payment request")
			continue
		}
		removed++
	}
	return removed, nil
}
