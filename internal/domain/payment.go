package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is the remittance channel a buyer used.
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheque       PaymentMethod = "cheque"
	PaymentMethodUPI          PaymentMethod = "upi"
	PaymentMethodNEFT         PaymentMethod = "neft"
	PaymentMethodRTGS         PaymentMethod = "rtgs"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodOther        PaymentMethod = "other"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodCheque, PaymentMethodUPI,
		PaymentMethodNEFT, PaymentMethodRTGS, PaymentMethodCash, PaymentMethodOther:
		return true
	}
	return false
}

// Payment is a buyer remittance recorded against an invoice. Payments are
// append-only; once recorded they are never mutated or deleted.
type Payment struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	InvoiceID uuid.UUID       `json:"invoice_id" db:"invoice_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Method    PaymentMethod   `json:"method" db:"method"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// TotalPaid sums the amounts of a payment collection.
func TotalPaid(payments []*Payment) decimal.Decimal {
	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total
}

// DTOs for requests and responses

type RecordPaymentRequest struct {
	InvoiceID uuid.UUID       `json:"invoice_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"required"`
	Method    PaymentMethod   `json:"method" validate:"required,oneof=bank_transfer cheque upi neft rtgs cash other"`
}
