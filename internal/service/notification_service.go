package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"payment-resolver/internal/core/domain"
	"payment-resolver/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// notificationRetryIntervals are the waits between delivery attempts.
var notificationRetryIntervals = []time.Duration{
	15 * time.Second,
	60 * time.Second,
	2 * time.Minute,
	5 * time.Minute,
}

// NotificationPayload is POSTed to a PRR notification_url.
type NotificationPayload struct {
	ID       string `json:"id"`
	Location string `json:"location"`
}

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// notificationService implements ports.NotificationService.
type notificationService struct {
	repo       ports.NotificationRepository
	httpClient HTTPClient
	intervals  []time.Duration
	timeout    time.Duration
	log        zerolog.Logger
}

// NewNotificationService creates a new notification service.
// If repo is nil, delivery attempts are only logged.
func NewNotificationService(
	repo ports.NotificationRepository,
	httpClient HTTPClient,
	timeout time.Duration,
	log zerolog.Logger,
) ports.NotificationService {
	return &notificationService{
		repo:       repo,
		httpClient: httpClient,
		intervals:  notificationRetryIntervals,
		timeout:    timeout,
		log:        log,
	}
}

// NotifyFulfilled delivers the return location asynchronously with retries.
func (s *notificationService) NotifyFulfilled(ctx context.Context, prr *domain.PaymentRequestRequest, location string) error {
	if prr.NotificationURL == "" {
		return nil
	}

	payload, err := json.Marshal(NotificationPayload{ID: prr.ID, Location: location})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	now := time.Now().UTC()
	entry := &domain.NotificationDeliveryLog{
		ID:              uuid.New(),
		PRRID:           prr.ID,
		NotificationURL: prr.NotificationURL,
		Payload:         string(payload),
		Status:          domain.NotificationStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if s.repo != nil {
		if err := s.repo.Create(ctx, entry); err != nil {
			s.log.Warn().Err(err).Str("prr_id", prr.ID).Msg("notification: failed to record delivery")
		}
	}

	go s.deliverWithRetries(entry, payload)
	return nil
}

// deliverWithRetries attempts delivery until a 2xx or the intervals run out.
func (s *notificationService) deliverWithRetries(entry *domain.NotificationDeliveryLog, payload []byte) {
	for attempt := 0; attempt <= len(s.intervals); attempt++ {
		if attempt > 0 {
			time.Sleep(s.intervals[attempt-1])
		}
		entry.Attempt = attempt + 1

		status, err := s.post(entry.NotificationURL, payload)
		if status != 0 {
			entry.HTTPStatus = &status
		}
		if err == nil {
			entry.Status = domain.NotificationStatusDelivered
			entry.LastError = nil
			s.record(entry)
			s.log.Info().Str("prr_id", entry.PRRID).Int("attempt", entry.Attempt).Int("status", status).Msg("notification: delivered")
			return
		}

		msg := err.Error()
		entry.LastError = &msg
		s.record(entry)
		s.log.Warn().Err(err).Str("prr_id", entry.PRRID).Int("attempt", entry.Attempt).Msg("notification: delivery failed")
	}

	entry.Status = domain.NotificationStatusFailed
	s.record(entry)
	s.log.Error().Str("prr_id", entry.PRRID).Msg("notification: all retry attempts exhausted")
}

func (s *notificationService) post(url string, payload []byte) (int, error) {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("non-2xx response: %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}

func (s *notificationService) record(entry *domain.NotificationDeliveryLog) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Update(context.Background(), entry); err != nil {
		s.log.Warn().Err(err).Str("prr_id", entry.PRRID).Msg("notification: failed to update delivery log")
	}
}
