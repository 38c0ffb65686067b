package dtos

import "github.com/google/uuid"

// Dates travel as "2006-01-02" strings; the service parses and
// enforces end > start.
type CreateLeaseRequest struct {
	TenantID    uuid.UUID `json:"tenant_id" validate:"required"`
	LocalID     uuid.UUID `json:"local_id" validate:"required"`
	StartDate   string    `json:"start_date" validate:"required"`
	EndDate     string    `json:"end_date" validate:"required"`
	LeaseAmount float64   `json:"lease_amount" validate:"required,gt=0"`
}

type UpdateLeaseRequest struct {
	StartDate   *string  `json:"start_date,omitempty"`
	EndDate     *string  `json:"end_date,omitempty"`
	LeaseAmount *float64 `json:"lease_amount,omitempty" validate:"omitempty,gt=0"`
	Status      *string  `json:"status,omitempty" validate:"omitempty,oneof=active expired cancelled"`
}

type ExpireLeasesResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Expired int64  `json:"expired"`
}
