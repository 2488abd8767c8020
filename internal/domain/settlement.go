package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settlement is the computed payout breakdown for one approved offer once at
// least one buyer payment exists. Settlements are derived data: immutable
// once generated and never revised in place. Regenerating for an invoice
// produces a new set; superseding the old one is the caller's decision.
type Settlement struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	InvoiceID     uuid.UUID       `json:"invoice_id" db:"invoice_id"`
	OfferID       uuid.UUID       `json:"offer_id" db:"offer_id"`
	Principal     decimal.Decimal `json:"principal" db:"principal"`
	Interest      decimal.Decimal `json:"interest" db:"interest"`
	TotalDue      decimal.Decimal `json:"total_due" db:"total_due"`
	PlatformFee   decimal.Decimal `json:"platform_fee" db:"platform_fee"`
	AmountSettled decimal.Decimal `json:"amount_settled" db:"amount_settled"`
	FundedDays    int             `json:"funded_days" db:"funded_days"`
	GeneratedAt   time.Time       `json:"generated_at" db:"generated_at"`

	// PaymentIDs records the payment set the settlement drew from, as known
	// at generation time. A reference, not ownership.
	PaymentIDs []uuid.UUID `json:"payment_ids" db:"-"`
}

type GenerateSettlementsResponse struct {
	InvoiceID   uuid.UUID     `json:"invoice_id"`
	Settlements []*Settlement `json:"settlements"`
}
