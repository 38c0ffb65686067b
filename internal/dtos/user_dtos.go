package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/landlordpro/backend/internal/models"
)

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,min=2,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=admin manager employee"`
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=120"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=admin manager employee"`
	Avatar   *string `json:"avatar,omitempty"`
}

type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=2,max=120"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
	Avatar   *string `json:"avatar,omitempty"`
}

// UserDTO is the public view of a user; the password hash never leaves
// the service layer.
type UserDTO struct {
	ID        uuid.UUID       `json:"id"`
	FullName  string          `json:"full_name"`
	Email     string          `json:"email"`
	Role      models.RoleType `json:"role"`
	Avatar    *string         `json:"avatar,omitempty"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

func NewUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		Avatar:    u.Avatar,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func NewUserDTOs(users []*models.User) []UserDTO {
	out := make([]UserDTO, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserDTO(u))
	}
	return out
}
