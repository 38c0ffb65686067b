package dtos

import "github.com/google/uuid"

type CreateLocalRequest struct {
	ReferenceCode string    `json:"reference_code" validate:"required,min=1,max=40"`
	Status        string    `json:"status" validate:"omitempty,oneof=available occupied maintenance"`
	SizeM2        float64   `json:"size_m2" validate:"required,gt=0"`
	FloorID       uuid.UUID `json:"floor_id" validate:"required"`
}

type UpdateLocalRequest struct {
	ReferenceCode *string    `json:"reference_code,omitempty" validate:"omitempty,min=1,max=40"`
	SizeM2        *float64   `json:"size_m2,omitempty" validate:"omitempty,gt=0"`
	FloorID       *uuid.UUID `json:"floor_id,omitempty"`
}

// UpdateLocalStatusRequest is the narrow status-only mutation open to
// any authenticated user.
type UpdateLocalStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available occupied maintenance"`
}
