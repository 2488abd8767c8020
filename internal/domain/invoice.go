package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	customError "github.com/invofin/settlement-engine/pkg/errors"
)

// InvoiceStatus is the lifecycle state of a receivable on the platform.
type InvoiceStatus string

const (
	InvoiceStatusPending  InvoiceStatus = "pending"
	InvoiceStatusApproved InvoiceStatus = "approved"
	InvoiceStatusFunded   InvoiceStatus = "funded"
	InvoiceStatusPaid     InvoiceStatus = "paid"
	InvoiceStatusOverdue  InvoiceStatus = "overdue"
)

// Valid reports whether s is one of the known invoice statuses.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusApproved, InvoiceStatusFunded,
		InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// Invoice is a seller's unpaid receivable made available for financing.
// It is the aggregate root: offers and payments belong to exactly one invoice.
type Invoice struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	InvoiceNumber string          `json:"invoice_number" db:"invoice_number"`
	SellerID      uuid.UUID       `json:"seller_id" db:"seller_id"`
	BuyerName     string          `json:"buyer_name" db:"buyer_name"`
	BuyerGSTIN    string          `json:"buyer_gstin,omitempty" db:"buyer_gstin"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	DueDate       time.Time       `json:"due_date" db:"due_date"`
	Status        InvoiceStatus   `json:"status" db:"status"`
	IsFinanced    bool            `json:"is_financed" db:"is_financed"`
	UploadedAt    time.Time       `json:"uploaded_at" db:"uploaded_at"`

	// Populated by repository joins, not stored on the invoices row.
	Offers   []*Offer   `json:"offers,omitempty" db:"-"`
	Payments []*Payment `json:"payments,omitempty" db:"-"`
}

// Validate checks the creation-time invariants: a positive face amount and a
// due date that does not precede the upload date.
func (i *Invoice) Validate() error {
	if !i.Amount.IsPositive() {
		return customError.WrapInvalidAmount(i.Amount.String(), "invoice face amount must be positive")
	}
	if i.DueDate.Before(i.UploadedAt) {
		return customError.WrapInvalidDateRange(i.UploadedAt, i.DueDate)
	}
	return nil
}

// TotalReceived sums the recorded payments against the invoice.
func (i *Invoice) TotalReceived() decimal.Decimal {
	return TotalPaid(i.Payments)
}

// DTOs for requests and responses

type CreateInvoiceRequest struct {
	InvoiceNumber string          `json:"invoice_number" validate:"required"`
	SellerID      uuid.UUID       `json:"seller_id" validate:"required"`
	BuyerName     string          `json:"buyer_name" validate:"required"`
	BuyerGSTIN    string          `json:"buyer_gstin"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	DueDate       time.Time       `json:"due_date" validate:"required"`
}

type InvoiceResponse struct {
	Invoice       *Invoice        `json:"invoice"`
	TotalReceived decimal.Decimal `json:"total_received"`
	FundedPercent decimal.Decimal `json:"funded_percent"`
}
