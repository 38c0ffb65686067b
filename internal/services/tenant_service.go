package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/landlordpro/backend/internal/dtos"
	"github.com/landlordpro/backend/internal/models"
	"github.com/landlordpro/backend/internal/repositories"
	"github.com/landlordpro/backend/internal/utils"
)

type TenantService interface {
	Create(ctx context.Context, req dtos.CreateTenantRequest) (*models.Tenant, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	List(ctx context.Context, page utils.PageQuery) ([]*models.Tenant, int64, error)
	Update(ctx context.Context, id uuid.UUID, req dtos.UpdateTenantRequest) (*models.Tenant, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type tenantService struct {
	tenantRepo repositories.TenantRepository
	leaseRepo  repositories.LeaseRepository
}

func NewTenantService(tenantRepo repositories.TenantRepository, leaseRepo repositories.LeaseRepository) TenantService {
	return &tenantService{tenantRepo: tenantRepo, leaseRepo: leaseRepo}
}

func (s *tenantService) Create(ctx context.Context, req dtos.CreateTenantRequest) (*models.Tenant, error) {
	t := &models.Tenant{
		ID:       uuid.New(),
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	}
	if err := s.tenantRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *tenantService) Get(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	t, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, utils.ErrNotFound
	}
	return t, nil
}

func (s *tenantService) List(ctx context.Context, page utils.PageQuery) ([]*models.Tenant, int64, error) {
	return s.tenantRepo.List(ctx, page.Limit, page.Offset())
}

func (s *tenantService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateTenantRequest) (*models.Tenant, error) {
	if err := s.tenantRepo.UpdateWithRetry(ctx, id, func(t *models.Tenant) error {
		if req.FullName != nil {
			t.FullName = *req.FullName
		}
		if req.Email != nil {
			t.Email = *req.Email
		}
		if req.Phone != nil {
			t.Phone = req.Phone
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *tenantService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	// Refuse to remove a tenant holding an active lease.
	active := models.LeaseStatusActive
	leases, err := s.leaseRepo.ListAll(ctx, repositories.LeaseFilter{Status: &active, TenantID: &id})
	if err != nil {
		return err
	}
	if len(leases) > 0 {
		return &utils.AppError{
			StatusCode: 409,
			Code:       utils.ErrCodeConflict,
			Message:    "tenant has active leases",
		}
	}
	return s.tenantRepo.SoftDelete(ctx, id)
}
