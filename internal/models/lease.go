package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type LeaseStatusType string

const (
	LeaseStatusActive    LeaseStatusType = "active"
	LeaseStatusExpired   LeaseStatusType = "expired"
	LeaseStatusCancelled LeaseStatusType = "cancelled"
)

func ParseLeaseStatus(s string) (LeaseStatusType, error) {
	switch LeaseStatusType(s) {
	case LeaseStatusActive, LeaseStatusExpired, LeaseStatusCancelled:
		return LeaseStatusType(s), nil
	default:
		return "", fmt.Errorf("invalid lease status: %q", s)
	}
}

// Lease binds one tenant to one local for a bounded period.
// Reference is generated at creation time and never user-supplied.
// The only automatic transition is active -> expired once EndDate passes.
type Lease struct {
	Versioned

	ID          uuid.UUID       `json:"id"`
	Reference   string          `json:"reference"`
	TenantID    uuid.UUID       `json:"tenant_id"`
	LocalID     uuid.UUID       `json:"local_id"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	LeaseAmount float64         `json:"lease_amount"`
	Status      LeaseStatusType `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   *time.Time      `json:"deleted_at,omitempty"`
}

func (l *Lease) GetID() string { return l.ID.String() }
