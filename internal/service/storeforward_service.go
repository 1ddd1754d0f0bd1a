package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"payment-resolver/internal/core/domain"
	"payment-resolver/internal/core/ports"
	"payment-resolver/pkg/apperror"
	"payment-resolver/pkg/bip70"

	"github.com/rs/zerolog"
)

// StoreForwardConfig limits presigned uploads.
type StoreForwardConfig struct {
	SiteURL          string
	PresignedPRLimit int
	MaxPRSize        int
}

// StoreForwardServiceImpl implements ports.StoreForwardService.
type StoreForwardServiceImpl struct {
	repo     ports.IdentityRepository
	branches ports.BranchIndexStore
	cfg      StoreForwardConfig
	log      zerolog.Logger
}

// NewStoreForwardService creates a new StoreForwardServiceImpl.
func NewStoreForwardService(
	repo ports.IdentityRepository,
	branches ports.BranchIndexStore,
	cfg StoreForwardConfig,
	log zerolog.Logger,
) *StoreForwardServiceImpl {
	return &StoreForwardServiceImpl{repo: repo, branches: branches, cfg: cfg, log: log}
}

// Register creates an empty endpoint owned by identity.
func (s *StoreForwardServiceImpl) Register(ctx context.Context, identity string) (*ports.Registration, error) {
	obj := domain.NewIdObject("")
	obj.AuthPublicKey = identity

	id, err := s.repo.Save(ctx, obj)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to register store-forward endpoint")
		return nil, apperror.ErrDatabaseError(err)
	}

	s.log.Info().Str("id", id).Msg("registered store-forward endpoint")
	return &ports.Registration{
		ID:       id,
		Endpoint: fmt.Sprintf("https://%s/resolve/%s", strings.TrimSuffix(s.cfg.SiteURL, "/"), id),
	}, nil
}

// Add validates every submitted presigned request, then appends them up to
// the per-endpoint limit. It returns how many were stored.
func (s *StoreForwardServiceImpl) Add(ctx context.Context, id string, body []byte) (int, error) {
	obj, err := s.load(ctx, id)
	if err != nil {
		return 0, err
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil || len(payload) == 0 {
		return 0, apperror.Validation("Invalid Request")
	}

	raw, ok := payload["presigned_payment_requests"]
	if !ok || isJSONEmpty(raw) {
		return 0, apperror.Validation("Missing presigned_payment_requests data")
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return 0, apperror.Validation("presigned_payment_requests data must be a list")
	}
	if len(items) == 0 {
		return 0, apperror.Validation("Missing presigned_payment_requests data")
	}

	entries := make([]string, 0, len(items))
	for _, item := range items {
		var entry string
		if err := json.Unmarshal(item, &entry); err != nil {
			return 0, apperror.Validation("Payment Request Must Be Hex Encoded")
		}
		if err := s.validatePresigned(entry); err != nil {
			s.log.Warn().Err(err).Str("id", obj.ID).Msg("rejected presigned payment request")
			return 0, err
		}
		entries = append(entries, strings.ToLower(entry))
	}

	added := 0
	for _, entry := range entries {
		if s.cfg.PresignedPRLimit > 0 && len(obj.PresignedPaymentRequests) >= s.cfg.PresignedPRLimit {
			s.log.Info().Str("id", obj.ID).Msg("presigned payment request limit reached")
			break
		}
		obj.PresignedPaymentRequests = append(obj.PresignedPaymentRequests, entry)
		added++
	}

	if added > 0 {
		if _, err := s.repo.Save(ctx, obj); err != nil {
			return 0, apperror.ErrDatabaseError(err)
		}
	}

	s.log.Info().Str("id", obj.ID).Int("added", added).Msg("added presigned payment requests")
	return added, nil
}

// Delete removes the endpoint and its branch cursors.
func (s *StoreForwardServiceImpl) Delete(ctx context.Context, id string) error {
	obj, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, obj.ID); err != nil {
		return apperror.ErrDatabaseError(err)
	}
	if err := s.branches.DeleteAll(ctx, obj.ID); err != nil {
		s.log.Warn().Err(err).Str("id", obj.ID).Msg("failed to delete branch cursors")
	}
	return nil
}

// Count reports how many presigned requests remain.
func (s *StoreForwardServiceImpl) Count(ctx context.Context, id string) (int, error) {
	obj, err := s.load(ctx, id)
	if err != nil {
		return 0, err
	}
	return len(obj.PresignedPaymentRequests), nil
}

func (s *StoreForwardServiceImpl) load(ctx context.Context, id string) (*domain.IdObject, error) {
	obj, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if obj == nil {
		return nil, apperror.ErrNotFound("Invalid Identifier")
	}
	return obj, nil
}

func (s *StoreForwardServiceImpl) validatePresigned(entry string) error {
	raw, err := hex.DecodeString(entry)
	if err != nil || len(raw) == 0 {
		return apperror.Validation("Payment Request Must Be Hex Encoded")
	}
	if s.cfg.MaxPRSize > 0 && len(raw) > s.cfg.MaxPRSize {
		return apperror.Validation("Invalid Payment Request Submitted")
	}

	var pr bip70.PaymentRequest
	if err := pr.Unmarshal(raw); err != nil {
		return apperror.Validation("Invalid Payment Request Submitted")
	}
	if _, err := pr.Details(); err != nil {
		return apperror.Validation("Invalid Payment Request Submitted")
	}
	return nil
}

func isJSONEmpty(raw json.RawMessage) bool {
	switch strings.TrimSpace(string(raw)) {
	case "", "null", `""`, "false", "0", "[]", "{}":
		return true
	}
	return false
}
