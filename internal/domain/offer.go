package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OfferStatus is the lifecycle state of a financing offer. Pending is the
// initial state; approved and rejected are terminal.
type OfferStatus string

const (
	OfferStatusPending  OfferStatus = "pending"
	OfferStatusApproved OfferStatus = "approved"
	OfferStatusRejected OfferStatus = "rejected"
)

// Valid reports whether s is one of the known offer statuses.
func (s OfferStatus) Valid() bool {
	switch s {
	case OfferStatusPending, OfferStatusApproved, OfferStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether s is a final state.
func (s OfferStatus) Terminal() bool {
	return s == OfferStatusApproved || s == OfferStatusRejected
}

// Offer is a financier's proposed terms to fund one invoice.
type Offer struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	InvoiceID       uuid.UUID       `json:"invoice_id" db:"invoice_id"`
	FinancierID     uuid.UUID       `json:"financier_id" db:"financier_id"`
	AmountRequested decimal.Decimal `json:"amount_requested" db:"amount_requested"`
	InterestRate    decimal.Decimal `json:"interest_rate" db:"interest_rate"` // annual, percent
	Terms           string          `json:"terms,omitempty" db:"terms"`
	Status          OfferStatus     `json:"status" db:"status"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`

	// Populated by repository joins where the caller needs the invoice
	// context (portfolio summaries project interest to the due date).
	Invoice *Invoice `json:"invoice,omitempty" db:"-"`
}

// DTOs for requests and responses

type CreateOfferRequest struct {
	InvoiceID       uuid.UUID       `json:"invoice_id" validate:"required"`
	FinancierID     uuid.UUID       `json:"financier_id" validate:"required"`
	AmountRequested decimal.Decimal `json:"amount_requested" validate:"required"`
	InterestRate    decimal.Decimal `json:"interest_rate" validate:"required"`
	Terms           string          `json:"terms"`
}

type OfferDecisionRequest struct {
	Status OfferStatus `json:"status" validate:"required,oneof=approved rejected"`
}
