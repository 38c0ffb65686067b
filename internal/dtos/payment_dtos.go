package dtos

import "github.com/google/uuid"

// CreatePaymentRequest is decoded from multipart form fields; the
// optional proof file rides alongside as "proof".
type CreatePaymentRequest struct {
	LeaseID       uuid.UUID `json:"lease_id" validate:"required"`
	PaymentModeID uuid.UUID `json:"payment_mode_id" validate:"required"`
	Amount        float64   `json:"amount" validate:"required,gt=0"`
	PeriodStart   string    `json:"period_start" validate:"required"`
	PeriodEnd     string    `json:"period_end" validate:"required"`
	InvoiceNumber string    `json:"invoice_number" validate:"required,min=1,max=60"`
}

type UpdatePaymentRequest struct {
	Amount        *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	PeriodStart   *string  `json:"period_start,omitempty"`
	PeriodEnd     *string  `json:"period_end,omitempty"`
	InvoiceNumber *string  `json:"invoice_number,omitempty" validate:"omitempty,min=1,max=60"`
}

type CreatePaymentModeRequest struct {
	Code          string `json:"code" validate:"required,min=2,max=40"`
	DisplayName   string `json:"display_name" validate:"required,min=2,max=80"`
	RequiresProof bool   `json:"requires_proof"`
	Description   string `json:"description"`
}

type UpdatePaymentModeRequest struct {
	DisplayName   *string `json:"display_name,omitempty" validate:"omitempty,min=2,max=80"`
	RequiresProof *bool   `json:"requires_proof,omitempty"`
	Description   *string `json:"description,omitempty"`
}
