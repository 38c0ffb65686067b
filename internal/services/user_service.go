package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/landlordpro/backend/internal/dtos"
	"github.com/landlordpro/backend/internal/models"
	"github.com/landlordpro/backend/internal/repositories"
	"github.com/landlordpro/backend/internal/utils"
)

type UserService interface {
	Register(ctx context.Context, req dtos.RegisterRequest) (*models.User, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, roleFilter *string, page utils.PageQuery) ([]*models.User, int64, error)
	Update(ctx context.Context, id uuid.UUID, req dtos.UpdateUserRequest) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req dtos.UpdateProfileRequest) (*models.User, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
}

type userService struct {
	userRepo repositories.UserRepository
	propRepo repositories.PropertyRepository
}

func NewUserService(userRepo repositories.UserRepository, propRepo repositories.PropertyRepository) UserService {
	return &userService{userRepo: userRepo, propRepo: propRepo}
}

func (s *userService) Register(ctx context.Context, req dtos.RegisterRequest) (*models.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, utils.ErrEmailExists
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:           uuid.New(),
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	utils.Logger.Infof("Registered %s account for %s", role, u.Email)
	return u, nil
}

func (s *userService) Get(ctx context.Context, id uuid.UUID) (*models.User, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, utils.ErrNotFound
	}
	return u, nil
}

func (s *userService) List(ctx context.Context, roleFilter *string, page utils.PageQuery) ([]*models.User, int64, error) {
	var role *models.RoleType
	if roleFilter != nil {
		parsed, err := models.ParseRole(*roleFilter)
		if err != nil {
			return nil, 0, &utils.AppError{
				StatusCode: 400,
				Code:       utils.ErrCodeValidation,
				Message:    err.Error(),
			}
		}
		role = &parsed
	}
	return s.userRepo.List(ctx, role, page.Limit, page.Offset())
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req dtos.UpdateUserRequest) (*models.User, error) {
	if req.Email != nil {
		existing, err := s.userRepo.GetByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, utils.ErrEmailExists
		}
	}

	if err := s.userRepo.UpdateWithRetry(ctx, id, func(u *models.User) error {
		if req.FullName != nil {
			u.FullName = *req.FullName
		}
		if req.Email != nil {
			u.Email = *req.Email
		}
		if req.Role != nil {
			role, err := models.ParseRole(*req.Role)
			if err != nil {
				return err
			}
			u.Role = role
		}
		if req.Avatar != nil {
			u.Avatar = req.Avatar
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *userService) UpdateProfile(ctx context.Context, id uuid.UUID, req dtos.UpdateProfileRequest) (*models.User, error) {
	if err := s.userRepo.UpdateWithRetry(ctx, id, func(u *models.User) error {
		if req.FullName != nil {
			u.FullName = *req.FullName
		}
		if req.Password != nil {
			hash, err := utils.HashPassword(*req.Password)
			if err != nil {
				return err
			}
			u.PasswordHash = hash
		}
		if req.Avatar != nil {
			u.Avatar = req.Avatar
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *userService) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.userRepo.SetActive(ctx, id, active)
}
