package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"payment-resolver/internal/core/domain"
	"payment-resolver/internal/core/ports"
	"payment-resolver/pkg/apperror"

	"github.com/rs/zerolog"
)

const missingReadyFields = "Missing Required Fields: id, receiver_pubkey, and/or encrypted_payment_request"

// PRRServiceImpl implements ports.PRRService.
type PRRServiceImpl struct {
	repo     ports.IdentityRepository
	queue    ports.PRRQueue
	returns  ports.ReturnPRStore
	notifier ports.NotificationService
	siteURL  string
	log      zerolog.Logger
	now      func() time.Time
}

// NewPRRService creates a new PRRServiceImpl. notifier may be nil.
func NewPRRService(
	repo ports.IdentityRepository,
	queue ports.PRRQueue,
	returns ports.ReturnPRStore,
	notifier ports.NotificationService,
	siteURL string,
	log zerolog.Logger,
) *PRRServiceImpl {
	return &PRRServiceImpl{
		repo:     repo,
		queue:    queue,
		returns:  returns,
		notifier: notifier,
		siteURL:  strings.TrimSuffix(siteURL, "/"),
		log:      log,
		now:      time.Now,
	}
}

type prrSubmission struct {
	Amount          json.Number `json:"amount"`
	NotificationURL string      `json:"notification_url"`
	X509Cert        string      `json:"x509_cert"`
	Signature       string      `json:"signature"`
}

// Submit queues a PaymentRequest Request for a prr_only endpoint and returns
// the URL the sender polls for the answer.
func (s *PRRServiceImpl) Submit(ctx context.Context, id, senderPubKey string, body []byte) (string, error) {
	obj, err := s.repo.Get(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("failed to load endpoint")
		return "", apperror.Internal("Exception Occurred, Please Try Again Later.", err)
	}
	if obj == nil {
		return "", apperror.ErrUnknownID()
	}
	if !obj.PRROnly {
		s.log.Warn().Str("id", id).Msg("payment request request submitted to non-prr endpoint")
		return "", apperror.Validation("Invalid PaymentRequest Request Endpoint")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
		return "", apperror.Validation("Invalid Request")
	}
	var sub prrSubmission
	if err := json.Unmarshal(body, &sub); err != nil {
		return "", apperror.Validation("Invalid Request")
	}

	var amount int64
	if sub.Amount != "" {
		amount, err = sub.Amount.Int64()
		if err != nil || amount < 0 {
			return "", apperror.Validation("Invalid Request")
		}
	}

	if sub.X509Cert != "" && sub.Signature == "" {
		return "", apperror.Validation("Requests including x509 cert must include signature")
	}

	prr := &domain.PaymentRequestRequest{
		ID:              domain.NewHexToken(3),
		SenderPubKey:    senderPubKey,
		Amount:          amount,
		NotificationURL: sub.NotificationURL,
		X509Cert:        sub.X509Cert,
		Signature:       sub.Signature,
		SubmitDate:      s.now().Unix(),
	}
	if err := s.queue.Add(ctx, id, prr); err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("failed to queue payment request request")
		return "", apperror.Internal("Unknown System Error, Please Try Again Later", err)
	}

	s.log.Info().Str("id", id).Str("prr_id", prr.ID).Msg("queued payment request request")
	return s.returnLocation(prr.ID), nil
}

// List returns the queued requests of an endpoint, oldest first.
func (s *PRRServiceImpl) List(ctx context.Context, id string) ([]*domain.PaymentRequestRequest, error) {
	prrs, err := s.queue.List(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("id", id).Msg("failed to list payment request requests")
		return nil, apperror.Internal("Unable to Retrieve Queued PR Requests", err)
	}
	if prrs == nil {
		prrs = []*domain.PaymentRequestRequest{}
	}
	return prrs, nil
}

type readyRequest struct {
	ID                      *string `json:"id"`
	ReceiverPubKey          *string `json:"receiver_pubkey"`
	EncryptedPaymentRequest *string `json:"encrypted_payment_request"`
}

// SubmitReturn stores the owner's answers. Each entry succeeds or fails on
// its own; a fulfilled PRR is removed from the queue.
func (s *PRRServiceImpl) SubmitReturn(ctx context.Context, id string, body []byte) (*ports.ReturnResult, error) {
	var payload struct {
		ReadyRequests json.RawMessage `json:"ready_requests"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, apperror.Validation("Invalid Request")
	}

	var items []json.RawMessage
	if err := json.Unmarshal(payload.ReadyRequests, &items); err != nil || len(items) == 0 {
		s.log.Warn().Str("id", id).Msg("submitted response has invalid ready_requests list")
		return nil, apperror.Validation("Missing or Empty ready_requests list")
	}

	failures := make(map[string][]string)
	for i, item := range items {
		var rr readyRequest
		if err := json.Unmarshal(item, &rr); err != nil || rr.ID == nil || rr.ReceiverPubKey == nil || rr.EncryptedPaymentRequest == nil {
			key := fmt.Sprintf("ready_requests[%d]", i)
			if rr.ID != nil {
				key = *rr.ID
			}
			failures[key] = append(failures[key], missingReadyFields)
			continue
		}

		rpr := &domain.ReturnPaymentRequest{
			ID:                      *rr.ID,
			ReceiverPubKey:          *rr.ReceiverPubKey,
			EncryptedPaymentRequest: *rr.EncryptedPaymentRequest,
			SubmitDate:              s.now().Unix(),
		}

		prr, err := s.queue.Get(ctx, id, rpr.ID)
		if err != nil {
			s.log.Warn().Err(err).Str("prr_id", rpr.ID).Msg("failed to load original payment request request")
		}

		if err := s.returns.Put(ctx, rpr); err != nil {
			s.log.Error().Err(err).Str("prr_id", rpr.ID).Msg("failed to store return payment request")
			failures[rpr.ID] = append(failures[rpr.ID], "Unable to Process Return PaymentRequest")
			continue
		}

		if err := s.queue.Delete(ctx, id, rpr.ID); err != nil {
			s.log.Warn().Err(err).Str("prr_id", rpr.ID).Msg("failed to delete fulfilled payment request request")
		}

		if prr != nil && prr.NotificationURL != "" && s.notifier != nil {
			if err := s.notifier.NotifyFulfilled(ctx, prr, s.returnLocation(rpr.ID)); err != nil {
				s.log.Warn().Err(err).Str("prr_id", rpr.ID).Msg("failed to schedule fulfilment notification")
			}
		}
	}

	failed := len(failures)
	result := &ports.ReturnResult{AcceptCount: len(items) - failed}
	if failed > 0 {
		result.Failures = failures
		return result, nil
	}

	s.log.Info().Str("id", id).Int("accepted", result.AcceptCount).Msg("accepted return payment requests")
	return result, nil
}

// GetReturn returns the stored answer for a PRR.
func (s *PRRServiceImpl) GetReturn(ctx context.Context, prrID string) (*domain.ReturnPaymentRequest, error) {
	rpr, err := s.returns.Get(ctx, prrID)
	if err != nil {
		s.log.Warn().Err(err).Str("prr_id", prrID).Msg("failed to load return payment request")
		return nil, apperror.Internal("PaymentRequest Not Found", err)
	}
	if rpr == nil {
		return nil, apperror.ErrNotFound("PaymentRequest Not Found or Not Yet Ready")
	}
	return rpr, nil
}

func (s *PRRServiceImpl) returnLocation(prrID string) string {
	return fmt.Sprintf("https://%s/pr/%s", s.siteURL, prrID)
}
