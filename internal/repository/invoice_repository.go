package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/invofin/settlement-engine/internal/domain"
)

type invoiceRepository struct {
	db *sqlx.DB
}

func NewInvoiceRepository(db *sqlx.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	query := `
		INSERT INTO invoices (id, invoice_number, seller_id, buyer_name, buyer_gstin, amount, due_date, status, is_financed, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		invoice.ID,
		invoice.InvoiceNumber,
		invoice.SellerID,
		invoice.BuyerName,
		invoice.BuyerGSTIN,
		invoice.Amount,
		invoice.DueDate,
		invoice.Status,
		invoice.IsFinanced,
		invoice.UploadedAt,
	)

	return err
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	query := `
		SELECT id, invoice_number, seller_id, buyer_name, buyer_gstin, amount, due_date, status, is_financed, uploaded_at
		FROM invoices
		WHERE id = $1
	`

	var invoice domain.Invoice
	if err := r.db.GetContext(ctx, &invoice, query, id); err != nil {
		return nil, err
	}

	offersQuery := `
		SELECT id, invoice_id, financier_id, amount_requested, interest_rate, terms, status, created_at
		FROM offers
		WHERE invoice_id = $1
		ORDER BY created_at
	`
	if err := r.db.SelectContext(ctx, &invoice.Offers, offersQuery, id); err != nil {
		return nil, err
	}

	paymentsQuery := `
		SELECT id, invoice_id, amount, method, created_at
		FROM payments
		WHERE invoice_id = $1
		ORDER BY created_at
	`
	if err := r.db.SelectContext(ctx, &invoice.Payments, paymentsQuery, id); err != nil {
		return nil, err
	}

	return &invoice, nil
}

func (r *invoiceRepository) GetBySellerID(ctx context.Context, sellerID uuid.UUID) ([]*domain.Invoice, error) {
	query := `
		SELECT id, invoice_number, seller_id, buyer_name, buyer_gstin, amount, due_date, status, is_financed, uploaded_at
		FROM invoices
		WHERE seller_id = $1
		ORDER BY uploaded_at DESC
	`

	var invoices []*domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query, sellerID); err != nil {
		return nil, err
	}

	return invoices, nil
}

func (r *invoiceRepository) GetAvailable(ctx context.Context) ([]*domain.Invoice, error) {
	query := `
		SELECT id, invoice_number, seller_id, buyer_name, buyer_gstin, amount, due_date, status, is_financed, uploaded_at
		FROM invoices
		WHERE status IN ('pending', 'approved') AND is_financed = FALSE
		ORDER BY due_date
	`

	var invoices []*domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query); err != nil {
		return nil, err
	}

	return invoices, nil
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) error {
	query := `
		UPDATE invoices
		SET status = $2
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

func (r *invoiceRepository) SetFinanced(ctx context.Context, id uuid.UUID, financed bool) error {
	query := `
		UPDATE invoices
		SET is_financed = $2
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, financed)
	return err
}

func (r *invoiceRepository) GetFundedDueBefore(ctx context.Context, cutoff time.Time) ([]*domain.Invoice, error) {
	query := `
		SELECT id, invoice_number, seller_id, buyer_name, buyer_gstin, amount, due_date, status, is_financed, uploaded_at
		FROM invoices
		WHERE status = 'funded' AND due_date < $1
		ORDER BY due_date
	`

	var invoices []*domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, query, cutoff); err != nil {
		return nil, err
	}

	return invoices, nil
}
