package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/invofin/settlement-engine/internal/domain"
)

type settlementRepository struct {
	db *sqlx.DB
}

func NewSettlementRepository(db *sqlx.DB) SettlementRepository {
	return &settlementRepository{db: db}
}

func (r *settlementRepository) CreateBatch(ctx context.Context, settlements []*domain.Settlement) error {
	query := `
		INSERT INTO settlements (id, invoice_id, offer_id, principal, interest, total_due, platform_fee, amount_settled, funded_days, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	refQuery := `
		INSERT INTO settlement_payments (settlement_id, payment_id)
		VALUES ($1, $2)
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, settlement := range settlements {
		_, err = tx.ExecContext(ctx, query,
			settlement.ID,
			settlement.InvoiceID,
			settlement.OfferID,
			settlement.Principal,
			settlement.Interest,
			settlement.TotalDue,
			settlement.PlatformFee,
			settlement.AmountSettled,
			settlement.FundedDays,
			settlement.GeneratedAt,
		)
		if err != nil {
			return err
		}

		for _, paymentID := range settlement.PaymentIDs {
			if _, err = tx.ExecContext(ctx, refQuery, settlement.ID, paymentID); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func (r *settlementRepository) GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]*domain.Settlement, error) {
	query := `
		SELECT id, invoice_id, offer_id, principal, interest, total_due, platform_fee, amount_settled, funded_days, generated_at
		FROM settlements
		WHERE invoice_id = $1
		ORDER BY generated_at, offer_id
	`

	var settlements []*domain.Settlement
	if err := r.db.SelectContext(ctx, &settlements, query, invoiceID); err != nil {
		return nil, err
	}

	refQuery := `
		SELECT payment_id
		FROM settlement_payments
		WHERE settlement_id = $1
		ORDER BY payment_id
	`

	for _, settlement := range settlements {
		var paymentIDs []uuid.UUID
		if err := r.db.SelectContext(ctx, &paymentIDs, refQuery, settlement.ID); err != nil {
			return nil, err
		}
		settlement.PaymentIDs = paymentIDs
	}

	return settlements, nil
}
