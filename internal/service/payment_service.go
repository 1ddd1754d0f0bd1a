package service

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"payment-resolver/internal/core/domain"
	"payment-resolver/internal/core/ports"
	"payment-resolver/pkg/apperror"
	"payment-resolver/pkg/bip70"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
	"github.com/rs/zerolog"
)

// PaymentConfig holds Payment processing limits.
type PaymentConfig struct {
	MaxSize       int
	SubmitRetries int
	SubmitBackoff time.Duration
	MetaRetention time.Duration
}

// PaymentServiceImpl implements ports.PaymentService.
type PaymentServiceImpl struct {
	invoices ports.InvoiceMetaStore
	payments ports.PaymentMetaStore
	node     ports.BlockchainNode
	params   *chaincfg.Params
	cfg      PaymentConfig
	log      zerolog.Logger
	now      func() time.Time
	sleep    func(time.Duration)
}

// NewPaymentService creates a new PaymentServiceImpl.
func NewPaymentService(
	invoices ports.InvoiceMetaStore,
	payments ports.PaymentMetaStore,
	node ports.BlockchainNode,
	params *chaincfg.Params,
	cfg PaymentConfig,
	log zerolog.Logger,
) *PaymentServiceImpl {
	if cfg.SubmitRetries <= 0 {
		cfg.SubmitRetries = 1
	}
	return &PaymentServiceImpl{
		invoices: invoices,
		payments: payments,
		node:     node,
		params:   params,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// Process validates a Payment against its invoice, broadcasts every
// transaction and returns the serialized PaymentACK.
func (s *PaymentServiceImpl) Process(ctx context.Context, sub ports.PaymentSubmission) ([]byte, error) {
	if len(sub.Body) == 0 {
		return nil, apperror.ErrPaymentDataMissing()
	}
	if !mediaTypeIs(sub.ContentType, domain.MIMEPayment) {
		return nil, apperror.ErrInvalidContentType()
	}
	if !mediaTypeIs(sub.Accept, domain.MIMEPaymentACK) {
		return nil, apperror.ErrInvalidAccept()
	}
	if s.cfg.MaxSize > 0 && len(sub.Body) > s.cfg.MaxSize {
		s.log.Warn().Str("id", sub.ID).Int("size", len(sub.Body)).Msg("payment exceeds size limit")
		return nil, apperror.ErrInvalidPayment()
	}

	var payment bip70.Payment
	if err := payment.Unmarshal(sub.Body); err != nil {
		s.log.Error().Err(err).Str("id", sub.ID).Msg("failed to parse payment")
		return nil, apperror.Internal("Exception Parsing Payment data.", err)
	}

	if len(payment.MerchantData) == 0 {
		return nil, apperror.Validation("Payment missing merchant_data field.")
	}

	meta, err := s.invoices.Get(ctx, string(payment.MerchantData))
	if err != nil {
		s.log.Error().Err(err).Str("id", sub.ID).Msg("failed to load invoice meta")
		return nil, apperror.ErrDatabaseError(err)
	}
	if meta == nil {
		return nil, apperror.ErrNotFound("Unable to Retrieve PaymentRequest associated with Payment.")
	}

	expected, err := meta.ExpectedOutputs()
	if err != nil {
		s.log.Error().Err(err).Str("merchant_data", meta.Key).Msg("invalid payment validation data")
		return nil, apperror.Validation("Unable to validate Payment.")
	}

	txs := make([]*wire.MsgTx, 0, len(payment.Transactions))
	for _, raw := range payment.Transactions {
		tx := wire.NewMsgTx(wire.TxVersion)
		if err := tx.Deserialize(bytes.NewReader(raw)); err != nil {
			s.log.Error().Err(err).Str("id", sub.ID).Msg("failed to parse payment transaction")
			return nil, apperror.Internal("Exception Parsing Payment data.", err)
		}
		txs = append(txs, tx)
	}

	for _, tx := range txs {
		for _, out := range tx.TxOut {
			addr, ok := bip70.ScriptAddress(out.PkScript, s.params)
			if !ok {
				continue
			}
			if want, found := expected[addr]; found && want == out.Value {
				delete(expected, addr)
			}
		}
	}
	if len(expected) > 0 {
		s.log.Warn().Str("id", sub.ID).Int("unmatched", len(expected)).Msg("payment does not satisfy payment request")
		return nil, apperror.ErrPaymentUnsatisfied()
	}

	hashes := make([]string, 0, len(txs))
	for _, tx := range txs {
		hash, err := s.submit(ctx, tx, sub.TestTransaction)
		if err != nil {
			s.log.Error().Err(err).Str("id", sub.ID).Str("tx", tx.TxHash().String()).Msg("transaction submission exhausted retries")
			return nil, apperror.ErrSubmitFailed(err)
		}
		hashes = append(hashes, hash)
	}

	refundTo := make([]string, 0, len(payment.RefundTo))
	for _, out := range payment.RefundTo {
		refundTo = append(refundTo, hex.EncodeToString(out.Script))
	}
	expiration := s.now().Add(s.cfg.MetaRetention).Unix()
	for _, hash := range hashes {
		pm := &domain.PaymentMeta{
			TxHash:         hash,
			Memo:           payment.Memo,
			RefundTo:       refundTo,
			ExpirationDate: expiration,
		}
		if err := s.payments.Put(ctx, pm); err != nil {
			s.log.Error().Err(err).Str("tx", hash).Msg("failed to store payment meta")
			return nil, apperror.ErrDatabaseError(err)
		}
	}

	s.log.Info().Str("id", sub.ID).Strs("txs", hashes).Msg("payment accepted")

	ack := bip70.PaymentACK{Payment: payment}
	return ack.Marshal(), nil
}

// submit broadcasts tx, retrying with a fixed backoff between attempts.
func (s *PaymentServiceImpl) submit(ctx context.Context, tx *wire.MsgTx, test bool) (string, error) {
	if test {
		return domain.TestTxHash, nil
	}

	var lastErr error
	for attempt := 1; attempt <= s.cfg.SubmitRetries; attempt++ {
		if attempt > 1 {
			s.sleep(s.cfg.SubmitBackoff)
		}
		hash, err := s.node.SendRawTransaction(ctx, tx)
		if err == nil {
			return hash, nil
		}
		lastErr = err
		s.log.Warn().Err(err).Int("attempt", attempt).Msg("transaction submission failed")
		if ctx.Err() != nil {
			break
		}
	}
	return "", fmt.Errorf("submit %s: %w", tx.TxHash(), lastErr)
}

// RefundAddress returns the refund data recorded for a submitted transaction.
func (s *PaymentServiceImpl) RefundAddress(ctx context.Context, txHash string) (*domain.PaymentMeta, error) {
	meta, err := s.payments.Get(ctx, txHash)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if meta == nil {
		return nil, apperror.ErrNotFound("Unable to Retrieve Payment Meta for Transaction")
	}
	meta.ExpirationDate = 0
	return meta, nil
}

// mediaTypeIs compares the media type of a header value, ignoring parameters.
func mediaTypeIs(header, want string) bool {
	mt, _, _ := strings.Cut(header, ";")
	return strings.EqualFold(strings.TrimSpace(mt), want)
}
