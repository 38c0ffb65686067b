package models

import (
	"time"

	"github.com/google/uuid"
)

// Property is a managed building complex. Floors are created alongside it,
// one row per configured level.
type Property struct {
	Versioned

	ID             uuid.UUID  `json:"id"`
	ManagerID      *uuid.UUID `json:"manager_id,omitempty"`
	Name           string     `json:"name"`
	Location       string     `json:"location"`
	Description    string     `json:"description"`
	NumberOfFloors int16      `json:"number_of_floors"`
	HasBasement    bool       `json:"has_basement"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at,omitempty"`
}

func (p *Property) GetID() string { return p.ID.String() }
