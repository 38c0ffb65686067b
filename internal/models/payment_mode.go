package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentMode is static reference data (cash, bank transfer, ...).
type PaymentMode struct {
	Versioned

	ID            uuid.UUID  `json:"id"`
	Code          string     `json:"code"`
	DisplayName   string     `json:"display_name"`
	RequiresProof bool       `json:"requires_proof"`
	Description   string     `json:"description"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

func (m *PaymentMode) GetID() string { return m.ID.String() }
