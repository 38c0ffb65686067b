package models

import (
	"time"

	"github.com/google/uuid"
)

// Floor represents a level within a property. Level is unique within a
// property among live rows; -1 denotes the basement.
type Floor struct {
	Versioned

	ID         uuid.UUID  `json:"id"`
	PropertyID uuid.UUID  `json:"property_id"`
	Name       string     `json:"name"`
	Level      int16      `json:"level"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

func (f *Floor) GetID() string { return f.ID.String() }
