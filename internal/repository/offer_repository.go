package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/invofin/settlement-engine/internal/domain"
)

type offerRepository struct {
	db *sqlx.DB
}

func NewOfferRepository(db *sqlx.DB) OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) Create(ctx context.Context, offer *domain.Offer) error {
	query := `
		INSERT INTO offers (id, invoice_id, financier_id, amount_requested, interest_rate, terms, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		offer.ID,
		offer.InvoiceID,
		offer.FinancierID,
		offer.AmountRequested,
		offer.InterestRate,
		offer.Terms,
		offer.Status,
		offer.CreatedAt,
	)

	return err
}

func (r *offerRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Offer, error) {
	query := `
		SELECT id, invoice_id, financier_id, amount_requested, interest_rate, terms, status, created_at
		FROM offers
		WHERE id = $1
	`

	var offer domain.Offer
	if err := r.db.GetContext(ctx, &offer, query, id); err != nil {
		return nil, err
	}

	return &offer, nil
}

func (r *offerRepository) GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]*domain.Offer, error) {
	query := `
		SELECT id, invoice_id, financier_id, amount_requested, interest_rate, terms, status, created_at
		FROM offers
		WHERE invoice_id = $1
		ORDER BY created_at
	`

	var offers []*domain.Offer
	if err := r.db.SelectContext(ctx, &offers, query, invoiceID); err != nil {
		return nil, err
	}

	return offers, nil
}

func (r *offerRepository) GetByFinancierID(ctx context.Context, financierID uuid.UUID) ([]*domain.Offer, error) {
	query := `
		SELECT id, invoice_id, financier_id, amount_requested, interest_rate, terms, status, created_at
		FROM offers
		WHERE financier_id = $1
		ORDER BY created_at DESC
	`

	var offers []*domain.Offer
	if err := r.db.SelectContext(ctx, &offers, query, financierID); err != nil {
		return nil, err
	}

	if len(offers) == 0 {
		return offers, nil
	}

	// Populate the invoice on each offer; portfolio summaries project
	// interest to the invoice due date.
	invoiceIDs := make([]uuid.UUID, 0, len(offers))
	for _, offer := range offers {
		invoiceIDs = append(invoiceIDs, offer.InvoiceID)
	}

	invoicesQuery := `
		SELECT id, invoice_number, seller_id, buyer_name, buyer_gstin, amount, due_date, status, is_financed, uploaded_at
		FROM invoices
		WHERE id = ANY($1)
	`

	var invoices []*domain.Invoice
	if err := r.db.SelectContext(ctx, &invoices, invoicesQuery, pq.Array(invoiceIDs)); err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*domain.Invoice, len(invoices))
	for _, invoice := range invoices {
		byID[invoice.ID] = invoice
	}
	for _, offer := range offers {
		offer.Invoice = byID[offer.InvoiceID]
	}

	return offers, nil
}

func (r *offerRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OfferStatus) error {
	query := `
		UPDATE offers
		SET status = $2
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}
