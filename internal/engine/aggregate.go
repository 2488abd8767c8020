package engine

import (
	"github.com/shopspring/decimal"

	"github.com/invofin/settlement-engine/internal/domain"
)

// PortfolioSummary is the dashboard rollup over a financier's offers.
type PortfolioSummary struct {
	TotalOffers    int             `json:"total_offers"`
	PendingOffers  int             `json:"pending_offers"`
	ApprovedOffers int             `json:"approved_offers"`
	RejectedOffers int             `json:"rejected_offers"`
	TotalInvested  decimal.Decimal `json:"total_invested"`
	TotalEarnings  decimal.Decimal `json:"total_earnings"`
	AverageReturn  decimal.Decimal `json:"average_return"` // percent
}

// Summarize reduces an offer collection to portfolio totals. Invested is the
// sum of approved offer amounts. Earnings are projected to each offer's
// invoice due date rather than to "now": a settlement may not exist yet, so
// the due date is the only defensible horizon. Offers without a populated
// invoice contribute to invested but not to earnings. AverageReturn is 0
// when nothing is invested.
func Summarize(offers []*domain.Offer) PortfolioSummary {
	p := Partition(offers)
	summary := PortfolioSummary{
		TotalOffers:    len(offers),
		PendingOffers:  len(p.Pending),
		ApprovedOffers: len(p.Approved),
		RejectedOffers: len(p.Rejected),
		TotalInvested:  decimal.Zero,
		TotalEarnings:  decimal.Zero,
		AverageReturn:  decimal.Zero,
	}

	for _, offer := range p.Approved {
		summary.TotalInvested = summary.TotalInvested.Add(offer.AmountRequested)
		if offer.Invoice == nil {
			continue
		}
		days := DaysElapsed(offer.CreatedAt, offer.Invoice.DueDate)
		summary.TotalEarnings = summary.TotalEarnings.Add(Accrue(offer.AmountRequested, offer.InterestRate, days))
	}

	if summary.TotalInvested.IsPositive() {
		summary.AverageReturn = summary.TotalEarnings.
			Div(summary.TotalInvested).
			Mul(hundred).
			Round(2)
	}

	return summary
}

// FundedPercent returns the share of the invoice face amount covered by
// approved offers, in percent. Not capped at 100: an over-funded invoice is
// a data anomaly the caller should see, not one the engine hides.
func FundedPercent(invoice *domain.Invoice, offers []*domain.Offer) decimal.Decimal {
	if !invoice.Amount.IsPositive() {
		return decimal.Zero
	}
	funded := decimal.Zero
	for _, offer := range EligibleForSettlement(offers) {
		funded = funded.Add(offer.AmountRequested)
	}
	return funded.Div(invoice.Amount).Mul(hundred).Round(2)
}
