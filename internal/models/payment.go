package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment records a paid period on a lease. ProofURL points to an
// uploaded receipt when the payment mode requires one.
type Payment struct {
	Versioned

	ID            uuid.UUID  `json:"id"`
	LeaseID       uuid.UUID  `json:"lease_id"`
	PaymentModeID uuid.UUID  `json:"payment_mode_id"`
	Amount        float64    `json:"amount"`
	PeriodStart   time.Time  `json:"period_start"`
	PeriodEnd     time.Time  `json:"period_end"`
	InvoiceNumber string     `json:"invoice_number"`
	ProofURL      *string    `json:"proof_url,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	DeletedAt     *time.Time `json:"deleted_at,omitempty"`
}

func (p *Payment) GetID() string { return p.ID.String() }
