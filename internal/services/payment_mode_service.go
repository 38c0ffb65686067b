package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/landlordpro/backend/internal/dtos"
	"github.com/landlordpro/backend/internal/models"
	"github.com/landlordpro/backend/internal/repositories"
	"github.com/landlordpro/backend/internal/utils"
)

type PaymentModeService interface {
	Create(ctx context.Context, req dtos.CreatePaymentModeRequest) (*models.PaymentMode, error)
	Get(ctx context.Context, id uuid.UUID) (*models.PaymentMode, error)
	List(ctx context.Context, page utils.PageQuery) ([]*models.PaymentMode, int64, error)
	Update(ctx context.Context, id uuid.UUID, req dtos.UpdatePaymentModeRequest) (*models.PaymentMode, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type paymentModeService struct {
	modeRepo repositories.PaymentModeRepository
}

func NewPaymentModeService(modeRepo repositories.PaymentModeRepository) PaymentModeService {
	return &paymentModeService{modeRepo: modeRepo}
}

func (s *paymentModeService) Create(ctx context.Context, req dtos.CreatePaymentModeRequest) (*models.PaymentMode, error) {
	existing, err := s.modeRepo.GetByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &utils.AppError{
			StatusCode: 409,
			Code:       utils.ErrCodeConflict,
			Message:    "payment mode code already exists",
		}
	}

	m := &models.PaymentMode{
		ID:            uuid.New(),
		Code:          req.Code,
		DisplayName:   req.DisplayName,
		RequiresProof: req.RequiresProof,
		Description:   req.Description,
	}
	if err := s.modeRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *paymentModeService) Get(ctx context.Context, id uuid.UUID) (*models.PaymentMode, error) {
	m, err := s.modeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, utils.ErrNotFound
	}
	return m, nil
}

func (s *paymentModeService) List(ctx context.Context, page utils.PageQuery) ([]*models.PaymentMode, int64, error) {
	return s.modeRepo.List(ctx, page.Limit, page.Offset())
}

func (s *paymentModeService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdatePaymentModeRequest) (*models.PaymentMode, error) {
	if err := s.modeRepo.UpdateWithRetry(ctx, id, func(m *models.PaymentMode) error {
		if req.DisplayName != nil {
			m.DisplayName = *req.DisplayName
		}
		if req.RequiresProof != nil {
			m.RequiresProof = *req.RequiresProof
		}
		if req.Description != nil {
			m.Description = *req.Description
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *paymentModeService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.modeRepo.SoftDelete(ctx, id)
}
