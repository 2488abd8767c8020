package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invofin/settlement-engine/internal/domain"
	customError "github.com/invofin/settlement-engine/pkg/errors"
)

// AllocationPolicy names the strategy for dividing an invoice's payment pool
// among multiple simultaneously-approved offers.
type AllocationPolicy string

const (
	// AllocationIndependent settles each approved offer against its own full
	// requested amount; the payment pool is not split. This is the active
	// policy. Pro-rata allocation by requested amount would be a second
	// policy here if product ever requires it.
	AllocationIndependent AllocationPolicy = "independent"
)

// Engine computes settlements and portfolio rollups. It is a pure library:
// no I/O, no clock reads, every result a deterministic function of the
// inputs and the configured rates.
type Engine struct {
	platformFeeRate decimal.Decimal // fraction of interest, e.g. 0.02
	minRate         decimal.Decimal // annual percent
	maxRate         decimal.Decimal // annual percent
	allocation      AllocationPolicy
}

// New builds an Engine with the platform's fee rate (a decimal fraction of
// interest earned) and the allowed annual interest rate bounds in percent.
func New(platformFeeRate, minRate, maxRate decimal.Decimal) *Engine {
	return &Engine{
		platformFeeRate: platformFeeRate,
		minRate:         minRate,
		maxRate:         maxRate,
		allocation:      AllocationIndependent,
	}
}

// Allocation returns the active payment allocation policy.
func (e *Engine) Allocation() AllocationPolicy {
	return e.allocation
}

// ValidateOffer checks an offer's amount and rate against the invoice face
// amount and the platform rate bounds. Invalid inputs are reported, never
// clamped.
func (e *Engine) ValidateOffer(invoice *domain.Invoice, offer *domain.Offer) error {
	if !offer.AmountRequested.IsPositive() {
		return customError.WrapInvalidAmount(offer.AmountRequested.String(), "offer amount must be positive")
	}
	if offer.AmountRequested.GreaterThan(invoice.Amount) {
		return customError.WrapInvalidAmount(offer.AmountRequested.String(), "offer amount exceeds invoice face amount")
	}
	if offer.InterestRate.LessThan(e.minRate) || offer.InterestRate.GreaterThan(e.maxRate) {
		return customError.WrapInvalidRate(offer.InterestRate.String(), e.minRate.String(), e.maxRate.String())
	}
	return nil
}

// Generate produces one settlement per approved offer, in input order.
//
// Per offer: fundedDays = max(1, days from offer creation to asOf);
// interest accrues on the full requested amount; the platform fee is levied
// on interest earned, not principal; amountSettled = totalDue - platformFee,
// so amountSettled + platformFee always reconciles to totalDue exactly.
//
// Preconditions: at least one approved offer and a positive payment total.
// Anything less fails with NotEligible rather than producing an empty or
// zero-valued settlement.
//
// Settlement IDs are left for the caller to assign; everything the engine
// fills in is deterministic for fixed inputs.
func (e *Engine) Generate(invoice *domain.Invoice, approvedOffers []*domain.Offer, payments []*domain.Payment, asOf time.Time) ([]*domain.Settlement, error) {
	if len(approvedOffers) == 0 {
		return nil, customError.WrapNotEligible("no approved offers available for settlement")
	}
	if !domain.TotalPaid(payments).IsPositive() {
		return nil, customError.WrapNotEligible("no payments received for this invoice")
	}

	paymentIDs := make([]uuid.UUID, 0, len(payments))
	for _, p := range payments {
		paymentIDs = append(paymentIDs, p.ID)
	}

	settlements := make([]*domain.Settlement, 0, len(approvedOffers))
	for _, offer := range approvedOffers {
		if err := e.ValidateOffer(invoice, offer); err != nil {
			return nil, err
		}

		fundedDays := DaysElapsed(offer.CreatedAt, asOf)
		if fundedDays < 1 {
			fundedDays = 1
		}

		interest := Accrue(offer.AmountRequested, offer.InterestRate, fundedDays)
		totalDue := offer.AmountRequested.Add(interest)
		platformFee := interest.Mul(e.platformFeeRate).Round(2)
		amountSettled := totalDue.Sub(platformFee)

		settlements = append(settlements, &domain.Settlement{
			InvoiceID:     invoice.ID,
			OfferID:       offer.ID,
			Principal:     offer.AmountRequested,
			Interest:      interest,
			TotalDue:      totalDue,
			PlatformFee:   platformFee,
			AmountSettled: amountSettled,
			FundedDays:    fundedDays,
			GeneratedAt:   asOf,
			PaymentIDs:    paymentIDs,
		})
	}

	return settlements, nil
}
