package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type RoleType string

const (
	RoleAdmin    RoleType = "admin"
	RoleManager  RoleType = "manager"
	RoleEmployee RoleType = "employee"
)

// ParseRole converts a string to the enum, rejecting unknown values.
func ParseRole(s string) (RoleType, error) {
	switch RoleType(s) {
	case RoleAdmin, RoleManager, RoleEmployee:
		return RoleType(s), nil
	default:
		return "", fmt.Errorf("invalid role: %q", s)
	}
}

type User struct {
	Versioned

	ID           uuid.UUID  `json:"id"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         RoleType   `json:"role"`
	Avatar       *string    `json:"avatar,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

func (u *User) GetID() string { return u.ID.String() }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
