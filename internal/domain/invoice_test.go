package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	customError "github.com/invofin/settlement-engine/pkg/errors"
)

func TestInvoiceValidate(t *testing.T) {
	uploaded := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		invoice  Invoice
		expected error
	}{
		{
			name: "valid invoice",
			invoice: Invoice{
				Amount:     decimal.NewFromInt(100000),
				DueDate:    uploaded.AddDate(0, 0, 60),
				UploadedAt: uploaded,
			},
			expected: nil,
		},
		{
			name: "due date equals upload date",
			invoice: Invoice{
				Amount:     decimal.NewFromInt(100000),
				DueDate:    uploaded,
				UploadedAt: uploaded,
			},
			expected: nil,
		},
		{
			name: "zero amount",
			invoice: Invoice{
				Amount:     decimal.Zero,
				DueDate:    uploaded.AddDate(0, 0, 60),
				UploadedAt: uploaded,
			},
			expected: customError.ErrInvalidAmount,
		},
		{
			name: "negative amount",
			invoice: Invoice{
				Amount:     decimal.NewFromInt(-500),
				DueDate:    uploaded.AddDate(0, 0, 60),
				UploadedAt: uploaded,
			},
			expected: customError.ErrInvalidAmount,
		},
		{
			name: "due date precedes upload date",
			invoice: Invoice{
				Amount:     decimal.NewFromInt(100000),
				DueDate:    uploaded.AddDate(0, 0, -1),
				UploadedAt: uploaded,
			},
			expected: customError.ErrInvalidDateRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.invoice.Validate()
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestStatusEnums(t *testing.T) {
	assert.True(t, InvoiceStatusFunded.Valid())
	assert.False(t, InvoiceStatus("financed").Valid())

	assert.True(t, OfferStatusApproved.Valid())
	assert.True(t, OfferStatusApproved.Terminal())
	assert.False(t, OfferStatusPending.Terminal())
	assert.False(t, OfferStatus("accepted").Valid())

	assert.True(t, PaymentMethodNEFT.Valid())
	assert.False(t, PaymentMethod("wire").Valid())
}

func TestTotalPaid(t *testing.T) {
	payments := []*Payment{
		{Amount: decimal.NewFromInt(30000)},
		{Amount: decimal.RequireFromString("12500.50")},
	}

	assert.True(t, TotalPaid(payments).Equal(decimal.RequireFromString("42500.50")))
	assert.True(t, TotalPaid(nil).IsZero())
}
