package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invofin/settlement-engine/internal/domain"
)

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	// Create creates a new invoice
	Create(ctx context.Context, invoice *domain.Invoice) error

	// GetByID retrieves an invoice with its offers and payments populated
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)

	// GetBySellerID retrieves all invoices uploaded by a seller
	GetBySellerID(ctx context.Context, sellerID uuid.UUID) ([]*domain.Invoice, error)

	// GetAvailable retrieves invoices open for financing offers
	GetAvailable(ctx context.Context) ([]*domain.Invoice, error)

	// UpdateStatus updates the status of an invoice
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) error

	// SetFinanced flips the isFinanced flag on an invoice
	SetFinanced(ctx context.Context, id uuid.UUID, financed bool) error

	// GetFundedDueBefore retrieves funded invoices whose due date has passed
	GetFundedDueBefore(ctx context.Context, cutoff time.Time) ([]*domain.Invoice, error)
}

// OfferRepository defines the interface for offer data operations
type OfferRepository interface {
	// Create creates a new offer
	Create(ctx context.Context, offer *domain.Offer) error

	// GetByID retrieves an offer by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Offer, error)

	// GetByInvoiceID retrieves all offers on an invoice, oldest first
	GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]*domain.Offer, error)

	// GetByFinancierID retrieves a financier's offers with invoices populated
	GetByFinancierID(ctx context.Context, financierID uuid.UUID) ([]*domain.Offer, error)

	// UpdateStatus updates the status of an offer
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OfferStatus) error
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	// Create creates a new payment record
	Create(ctx context.Context, payment *domain.Payment) error

	// GetByInvoiceID retrieves all payments for an invoice, oldest first
	GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]*domain.Payment, error)

	// GetTotalPaid calculates total amount paid against an invoice
	GetTotalPaid(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error)
}

// SettlementRepository defines the interface for settlement data operations
type SettlementRepository interface {
	// CreateBatch persists a generated settlement set atomically
	CreateBatch(ctx context.Context, settlements []*domain.Settlement) error

	// GetByInvoiceID retrieves all settlements generated for an invoice
	GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]*domain.Settlement, error)
}
