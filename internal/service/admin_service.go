package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"payment-resolver/internal/core/domain"
	"payment-resolver/internal/core/ports"
	"payment-resolver/pkg/apperror"

	"github.com/rs/zerolog"
)

type adminService struct {
	repo     ports.IdentityRepository
	branches ports.BranchIndexStore
	signer   ports.Signer
	log      zerolog.Logger
}

// NewAdminService creates the record management service behind /api.
func NewAdminService(
	repo ports.IdentityRepository,
	branches ports.BranchIndexStore,
	signer ports.Signer,
	log zerolog.Logger,
) ports.AdminService {
	return &adminService{
		repo:     repo,
		branches: branches,
		signer:   signer,
		log:      log,
	}
}

func (s *adminService) List(ctx context.Context) ([]*domain.IdObject, error) {
	keys, err := s.repo.ListKeys(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}

	objs := make([]*domain.IdObject, 0, len(keys))
	for _, key := range keys {
		obj, err := s.repo.Get(ctx, key)
		if err != nil {
			return nil, apperror.ErrDatabaseError(err)
		}
		if obj == nil {
			continue
		}
		objs = append(objs, obj.Redacted())
	}
	return objs, nil
}

func (s *adminService) Get(ctx context.Context, id string) (*domain.IdObject, error) {
	obj, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return obj.Redacted(), nil
}

func (s *adminService) Create(ctx context.Context, raw map[string]json.RawMessage) (*domain.IdObject, error) {
	obj := domain.NewIdObject("")
	return s.apply(ctx, obj, raw)
}

func (s *adminService) Update(ctx context.Context, id string, raw map[string]json.RawMessage) (*domain.IdObject, error) {
	obj, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.apply(ctx, obj, raw)
}

func (s *adminService) Delete(ctx context.Context, id string) error {
	obj, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, obj.ID); err != nil {
		return apperror.Internal("Exception occurred attempting to delete id object", err)
	}
	if err := s.branches.DeleteAll(ctx, obj.ID); err != nil {
		s.log.Warn().Err(err).Str("id", obj.ID).Msg("failed to delete branch cursors")
	}
	return nil
}

func (s *adminService) DeletePrivateKey(ctx context.Context, id string) error {
	obj, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	obj.PrivateKey = ""
	if _, err := s.repo.Save(ctx, obj); err != nil {
		return apperror.Internal("Exception occurred attempting to save id object", err)
	}
	return nil
}

func (s *adminService) apply(ctx context.Context, obj *domain.IdObject, raw map[string]json.RawMessage) (*domain.IdObject, error) {
	if err := obj.ApplyUpdate(raw); err != nil {
		var unknown *domain.ErrUnknownField
		if errors.As(err, &unknown) {
			return nil, apperror.Validation("Unknown key submitted")
		}
		return nil, apperror.Validation(fmt.Sprintf("Invalid value submitted: %v", err))
	}

	if obj.BIP70Enabled || obj.PrivateKey != "" {
		if err := s.signer.Bind(ctx, obj); err != nil {
			s.log.Warn().Err(err).Str("id", obj.ID).Msg("signer rejected record key material")
			return nil, apperror.Wrap("REQ_001", "Invalid signing key configuration", http.StatusBadRequest, err)
		}
	}

	if _, err := s.repo.Save(ctx, obj); err != nil {
		return nil, apperror.Internal("Exception occurred attempting to save id object", err)
	}
	return obj.Redacted(), nil
}

func (s *adminService) load(ctx context.Context, id string) (*domain.IdObject, error) {
	obj, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, apperror.ErrDatabaseError(err)
	}
	if obj == nil {
		return nil, apperror.ErrNotFound("Object not found for this ID.")
	}
	return obj, nil
}
