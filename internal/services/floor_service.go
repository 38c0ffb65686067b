package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/landlordpro/backend/internal/dtos"
	"github.com/landlordpro/backend/internal/models"
	"github.com/landlordpro/backend/internal/repositories"
	"github.com/landlordpro/backend/internal/utils"
)

type FloorService interface {
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Floor, error)
	List(ctx context.Context, actor Actor, propertyID *uuid.UUID, page utils.PageQuery) ([]*models.Floor, int64, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req dtos.UpdateFloorRequest) (*models.Floor, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	ListLocals(ctx context.Context, actor Actor, floorID uuid.UUID, page utils.PageQuery) ([]*models.Local, int64, error)
}

type floorService struct {
	floorRepo repositories.FloorRepository
	localRepo repositories.LocalRepository
	propRepo  repositories.PropertyRepository
}

func NewFloorService(
	floorRepo repositories.FloorRepository,
	localRepo repositories.LocalRepository,
	propRepo repositories.PropertyRepository,
) FloorService {
	return &floorService{floorRepo: floorRepo, localRepo: localRepo, propRepo: propRepo}
}

// resolve loads the floor and its property and applies the ownership
// check. Out-of-scope floors read as not found.
func (s *floorService) resolve(ctx context.Context, actor Actor, id uuid.UUID) (*models.Floor, *models.Property, error) {
	f, err := s.floorRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if f == nil {
		return nil, nil, utils.ErrNotFound
	}
	p, err := s.propRepo.GetByID(ctx, f.PropertyID)
	if err != nil {
		return nil, nil, err
	}
	if p == nil || !CanAccessProperty(actor, p) {
		return nil, nil, utils.ErrNotFound
	}
	return f, p, nil
}

func (s *floorService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Floor, error) {
	f, _, err := s.resolve(ctx, actor, id)
	return f, err
}

func (s *floorService) List(ctx context.Context, actor Actor, propertyID *uuid.UUID, page utils.PageQuery) ([]*models.Floor, int64, error) {
	filter := repositories.FloorFilter{
		PropertyID: propertyID,
		ManagerID:  actor.ScopeManagerID(),
	}
	return s.floorRepo.List(ctx, filter, page.Limit, page.Offset())
}

func (s *floorService) Update(ctx context.Context, actor Actor, id uuid.UUID, req dtos.UpdateFloorRequest) (*models.Floor, error) {
	_, p, err := s.resolve(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !CanMutateProperty(actor, p) {
		return nil, utils.ErrForbidden
	}

	if err := s.floorRepo.UpdateWithRetry(ctx, id, func(f *models.Floor) error {
		if req.Name != nil {
			f.Name = *req.Name
		}
		if req.Level != nil {
			f.Level = *req.Level
		}
		return nil
	}); err != nil {
		// Levels are unique per property among live rows; surface the
		// constraint as a conflict instead of a 500.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, &utils.AppError{
				StatusCode: http.StatusConflict,
				Code:       utils.ErrCodeConflict,
				Message:    "level already in use on this property",
			}
		}
		return nil, err
	}
	return s.floorRepo.GetByID(ctx, id)
}

func (s *floorService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	_, p, err := s.resolve(ctx, actor, id)
	if err != nil {
		return err
	}
	if !CanMutateProperty(actor, p) {
		return utils.ErrForbidden
	}
	return s.floorRepo.SoftDelete(ctx, id)
}

func (s *floorService) ListLocals(ctx context.Context, actor Actor, floorID uuid.UUID, page utils.PageQuery) ([]*models.Local, int64, error) {
	if _, _, err := s.resolve(ctx, actor, floorID); err != nil {
		return nil, 0, err
	}
	filter := repositories.LocalFilter{FloorID: &floorID}
	return s.localRepo.List(ctx, filter, page.Limit, page.Offset())
}
