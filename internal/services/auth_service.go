package services

import (
	"context"
	"time"

	"github.com/landlordpro/backend/internal/dtos"
	"github.com/landlordpro/backend/internal/repositories"
	"github.com/landlordpro/backend/internal/utils"
)

const accessTokenTTL = 12 * time.Hour

type AuthService interface {
	Login(ctx context.Context, req dtos.LoginRequest) (*dtos.LoginResponse, error)
}

type authService struct {
	userRepo repositories.UserRepository
	jwtSvc   JWTService
}

func NewAuthService(userRepo repositories.UserRepository, jwtSvc JWTService) AuthService {
	return &authService{userRepo: userRepo, jwtSvc: jwtSvc}
}

func (s *authService) Login(ctx context.Context, req dtos.LoginRequest) (*dtos.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, utils.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, utils.ErrAccountDisabled
	}

	token, err := s.jwtSvc.GenerateAccessToken(user.ID, user.Role, accessTokenTTL)
	if err != nil {
		return nil, err
	}

	utils.Logger.Infof("User %s logged in", user.Email)
	return &dtos.LoginResponse{
		Success: true,
		Token:   token,
		User:    dtos.NewUserDTO(user),
	}, nil
}
