package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/landlordpro/backend/internal/dtos"
	"github.com/landlordpro/backend/internal/models"
	"github.com/landlordpro/backend/internal/repositories"
	"github.com/landlordpro/backend/internal/utils"
)

type LocalFilterParams struct {
	Status     *string
	PropertyID *uuid.UUID
	FloorID    *uuid.UUID
}

type LocalService interface {
	Create(ctx context.Context, actor Actor, req dtos.CreateLocalRequest) (*models.Local, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Local, error)
	List(ctx context.Context, actor Actor, params LocalFilterParams, page utils.PageQuery) ([]*models.Local, int64, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req dtos.UpdateLocalRequest) (*models.Local, error)
	// UpdateStatus is the narrow mutation open to employees.
	UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (*models.Local, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	Restore(ctx context.Context, actor Actor, id uuid.UUID) (*models.Local, error)
}

type localService struct {
	localRepo repositories.LocalRepository
	floorRepo repositories.FloorRepository
	propRepo  repositories.PropertyRepository
}

func NewLocalService(
	localRepo repositories.LocalRepository,
	floorRepo repositories.FloorRepository,
	propRepo repositories.PropertyRepository,
) LocalService {
	return &localService{localRepo: localRepo, floorRepo: floorRepo, propRepo: propRepo}
}

func (s *localService) ownerProperty(ctx context.Context, propertyID uuid.UUID) (*models.Property, error) {
	p, err := s.propRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.ErrNotFound
	}
	return p, nil
}

func (s *localService) Create(ctx context.Context, actor Actor, req dtos.CreateLocalRequest) (*models.Local, error) {
	f, err := s.floorRepo.GetByID(ctx, req.FloorID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, utils.ErrNotFound
	}
	p, err := s.ownerProperty(ctx, f.PropertyID)
	if err != nil {
		return nil, err
	}
	if !CanAccessProperty(actor, p) {
		return nil, utils.ErrNotFound
	}
	if !CanMutateProperty(actor, p) {
		return nil, utils.ErrForbidden
	}

	status := models.LocalStatusAvailable
	if req.Status != "" {
		status, err = models.ParseLocalStatus(req.Status)
		if err != nil {
			return nil, &utils.AppError{
				StatusCode: 400,
				Code:       utils.ErrCodeValidation,
				Message:    err.Error(),
			}
		}
	}

	l := &models.Local{
		ID:            uuid.New(),
		ReferenceCode: req.ReferenceCode,
		Status:        status,
		SizeM2:        req.SizeM2,
		PropertyID:    f.PropertyID,
		FloorID:       f.ID,
	}
	if err := s.localRepo.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *localService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Local, error) {
	l, err := s.localRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, utils.ErrNotFound
	}
	p, err := s.ownerProperty(ctx, l.PropertyID)
	if err != nil {
		return nil, err
	}
	if !CanAccessProperty(actor, p) {
		return nil, utils.ErrNotFound
	}
	return l, nil
}

func (s *localService) List(ctx context.Context, actor Actor, params LocalFilterParams, page utils.PageQuery) ([]*models.Local, int64, error) {
	filter := repositories.LocalFilter{
		PropertyID: params.PropertyID,
		FloorID:    params.FloorID,
		ManagerID:  actor.ScopeManagerID(),
	}
	if params.Status != nil {
		status, err := models.ParseLocalStatus(*params.Status)
		if err != nil {
			return nil, 0, &utils.AppError{
				StatusCode: 400,
				Code:       utils.ErrCodeValidation,
				Message:    err.Error(),
			}
		}
		filter.Status = &status
	}
	return s.localRepo.List(ctx, filter, page.Limit, page.Offset())
}

func (s *localService) Update(ctx context.Context, actor Actor, id uuid.UUID, req dtos.UpdateLocalRequest) (*models.Local, error) {
	l, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	p, err := s.ownerProperty(ctx, l.PropertyID)
	if err != nil {
		return nil, err
	}
	if !CanMutateProperty(actor, p) {
		return nil, utils.ErrForbidden
	}

	// Moving a local to another floor keeps it inside the same property.
	if req.FloorID != nil && *req.FloorID != l.FloorID {
		f, err := s.floorRepo.GetByID(ctx, *req.FloorID)
		if err != nil {
			return nil, err
		}
		if f == nil || f.PropertyID != l.PropertyID {
			return nil, &utils.AppError{
				StatusCode: 400,
				Code:       utils.ErrCodeValidation,
				Message:    "floor_id must belong to the same property",
			}
		}
	}

	if err := s.localRepo.UpdateWithRetry(ctx, id, func(stored *models.Local) error {
		if req.ReferenceCode != nil {
			stored.ReferenceCode = *req.ReferenceCode
		}
		if req.SizeM2 != nil {
			stored.SizeM2 = *req.SizeM2
		}
		if req.FloorID != nil {
			stored.FloorID = *req.FloorID
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return s.localRepo.GetByID(ctx, id)
}

func (s *localService) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) (*models.Local, error) {
	parsed, err := models.ParseLocalStatus(status)
	if err != nil {
		return nil, &utils.AppError{
			StatusCode: 400,
			Code:       utils.ErrCodeValidation,
			Message:    err.Error(),
		}
	}

	l, err := s.localRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, utils.ErrNotFound
	}
	p, err := s.ownerProperty(ctx, l.PropertyID)
	if err != nil {
		return nil, err
	}
	// Employees may flip status even though they cannot edit structure.
	if actor.IsManager() && !CanAccessProperty(actor, p) {
		return nil, utils.ErrNotFound
	}

	if err := s.localRepo.UpdateWithRetry(ctx, id, func(stored *models.Local) error {
		stored.Status = parsed
		return nil
	}); err != nil {
		return nil, err
	}
	return s.localRepo.GetByID(ctx, id)
}

func (s *localService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	l, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	p, err := s.ownerProperty(ctx, l.PropertyID)
	if err != nil {
		return err
	}
	if !CanMutateProperty(actor, p) {
		return utils.ErrForbidden
	}
	return s.localRepo.SoftDelete(ctx, id)
}

func (s *localService) Restore(ctx context.Context, actor Actor, id uuid.UUID) (*models.Local, error) {
	if !actor.IsAdmin() {
		return nil, utils.ErrForbidden
	}
	l, err := s.localRepo.GetByIDAny(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, utils.ErrNotFound
	}
	if l.DeletedAt == nil {
		return l, nil
	}
	if err := s.localRepo.Restore(ctx, id); err != nil {
		return nil, err
	}
	return s.localRepo.GetByID(ctx, id)
}
