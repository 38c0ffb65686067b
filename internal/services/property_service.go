package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/landlordpro/backend/internal/dtos"
	"github.com/landlordpro/backend/internal/models"
	"github.com/landlordpro/backend/internal/repositories"
	"github.com/landlordpro/backend/internal/utils"
)

type PropertyService interface {
	// Create inserts the property plus one floor row per configured
	// level (basement included) in a single transaction. Admin only.
	Create(ctx context.Context, actor Actor, req dtos.CreatePropertyRequest) (*models.Property, []*models.Floor, error)
	Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Property, error)
	List(ctx context.Context, actor Actor, page utils.PageQuery) ([]*models.Property, int64, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, req dtos.UpdatePropertyRequest) (*models.Property, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	AssignManager(ctx context.Context, actor Actor, id uuid.UUID, managerID *uuid.UUID) (*models.Property, error)
	ListFloors(ctx context.Context, actor Actor, propertyID uuid.UUID) ([]*models.Floor, error)
	ListLocals(ctx context.Context, actor Actor, propertyID uuid.UUID, page utils.PageQuery) ([]*models.Local, int64, error)
}

type propertyService struct {
	propRepo  repositories.PropertyRepository
	floorRepo repositories.FloorRepository
	localRepo repositories.LocalRepository
	userRepo  repositories.UserRepository
}

func NewPropertyService(
	propRepo repositories.PropertyRepository,
	floorRepo repositories.FloorRepository,
	localRepo repositories.LocalRepository,
	userRepo repositories.UserRepository,
) PropertyService {
	return &propertyService{
		propRepo:  propRepo,
		floorRepo: floorRepo,
		localRepo: localRepo,
		userRepo:  userRepo,
	}
}

func (s *propertyService) Create(ctx context.Context, actor Actor, req dtos.CreatePropertyRequest) (*models.Property, []*models.Floor, error) {
	if !actor.IsAdmin() {
		return nil, nil, utils.ErrForbidden
	}

	if req.ManagerID != nil {
		mgr, err := s.userRepo.GetByID(ctx, *req.ManagerID)
		if err != nil {
			return nil, nil, err
		}
		if mgr == nil || mgr.Role != models.RoleManager {
			return nil, nil, &utils.AppError{
				StatusCode: 400,
				Code:       utils.ErrCodeValidation,
				Message:    "manager_id does not reference a manager account",
			}
		}
	}

	p := &models.Property{
		ID:             uuid.New(),
		ManagerID:      req.ManagerID,
		Name:           req.Name,
		Location:       req.Location,
		Description:    req.Description,
		NumberOfFloors: req.NumberOfFloors,
		HasBasement:    req.HasBasement,
	}
	floors := BuildFloors(p)

	if err := s.propRepo.CreateWithFloors(ctx, p, floors); err != nil {
		return nil, nil, err
	}
	utils.Logger.Infof("Created property %s with %d floors", p.ID, len(floors))
	return p, floors, nil
}

// BuildFloors derives the floor rows for a property: level -1 for the
// basement when configured, then levels 0..N-1 with level 0 named
// "Ground Floor".
func BuildFloors(p *models.Property) []*models.Floor {
	var floors []*models.Floor
	if p.HasBasement {
		floors = append(floors, &models.Floor{
			ID:         uuid.New(),
			PropertyID: p.ID,
			Name:       "Basement",
			Level:      -1,
		})
	}
	for i := int16(0); i < p.NumberOfFloors; i++ {
		name := fmt.Sprintf("Floor %d", i)
		if i == 0 {
			name = "Ground Floor"
		}
		floors = append(floors, &models.Floor{
			ID:         uuid.New(),
			PropertyID: p.ID,
			Name:       name,
			Level:      i,
		})
	}
	return floors
}

func (s *propertyService) Get(ctx context.Context, actor Actor, id uuid.UUID) (*models.Property, error) {
	p, err := s.propRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !CanAccessProperty(actor, p) {
		return nil, utils.ErrNotFound
	}
	return p, nil
}

func (s *propertyService) List(ctx context.Context, actor Actor, page utils.PageQuery) ([]*models.Property, int64, error) {
	filter := repositories.PropertyFilter{ManagerID: actor.ScopeManagerID()}
	return s.propRepo.List(ctx, filter, page.Limit, page.Offset())
}

func (s *propertyService) Update(ctx context.Context, actor Actor, id uuid.UUID, req dtos.UpdatePropertyRequest) (*models.Property, error) {
	p, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !CanMutateProperty(actor, p) {
		return nil, utils.ErrForbidden
	}

	if err := s.propRepo.UpdateWithRetry(ctx, id, func(stored *models.Property) error {
		if req.Name != nil {
			stored.Name = *req.Name
		}
		if req.Location != nil {
			stored.Location = *req.Location
		}
		if req.Description != nil {
			stored.Description = *req.Description
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return s.propRepo.GetByID(ctx, id)
}

func (s *propertyService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return utils.ErrForbidden
	}
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return s.propRepo.SoftDelete(ctx, id)
}

func (s *propertyService) AssignManager(ctx context.Context, actor Actor, id uuid.UUID, managerID *uuid.UUID) (*models.Property, error) {
	if !actor.IsAdmin() {
		return nil, utils.ErrForbidden
	}
	p, err := s.propRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, utils.ErrNotFound
	}

	if managerID != nil {
		mgr, err := s.userRepo.GetByID(ctx, *managerID)
		if err != nil {
			return nil, err
		}
		if mgr == nil || mgr.Role != models.RoleManager {
			return nil, &utils.AppError{
				StatusCode: 400,
				Code:       utils.ErrCodeValidation,
				Message:    "manager_id does not reference a manager account",
			}
		}
	}

	if err := s.propRepo.AssignManager(ctx, id, managerID); err != nil {
		return nil, err
	}
	return s.propRepo.GetByID(ctx, id)
}

func (s *propertyService) ListFloors(ctx context.Context, actor Actor, propertyID uuid.UUID) ([]*models.Floor, error) {
	if _, err := s.Get(ctx, actor, propertyID); err != nil {
		return nil, err
	}
	return s.floorRepo.ListByPropertyID(ctx, propertyID)
}

func (s *propertyService) ListLocals(ctx context.Context, actor Actor, propertyID uuid.UUID, page utils.PageQuery) ([]*models.Local, int64, error) {
	if _, err := s.Get(ctx, actor, propertyID); err != nil {
		return nil, 0, err
	}
	filter := repositories.LocalFilter{PropertyID: &propertyID}
	return s.localRepo.List(ctx, filter, page.Limit, page.Offset())
}
