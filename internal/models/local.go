package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type LocalStatusType string

const (
	LocalStatusAvailable   LocalStatusType = "available"
	LocalStatusOccupied    LocalStatusType = "occupied"
	LocalStatusMaintenance LocalStatusType = "maintenance"
)

func ParseLocalStatus(s string) (LocalStatusType, error) {
	switch LocalStatusType(s) {
	case LocalStatusAvailable, LocalStatusOccupied, LocalStatusMaintenance:
		return LocalStatusType(s), nil
	default:
		return "", fmt.Errorf("invalid local status: %q", s)
	}
}

// Local is a rentable unit (office/shop/apartment) on a specific floor.
// PropertyID always matches the floor's owning property.
type Local struct {
	Versioned

	ID            uuid.UUID       `json:"id"`
	ReferenceCode string          `json:"reference_code"`
	Status        LocalStatusType `json:"status"`
	SizeM2        float64         `json:"size_m2"`
	PropertyID    uuid.UUID       `json:"property_id"`
	FloorID       uuid.UUID       `json:"floor_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     *time.Time      `json:"deleted_at,omitempty"`
}

func (l *Local) GetID() string { return l.ID.String() }
