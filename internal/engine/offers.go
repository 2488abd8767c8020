package engine

import (
	"github.com/invofin/settlement-engine/internal/domain"
)

// OfferPartition groups an invoice's offers by status. Each slice preserves
// the relative order of the input.
type OfferPartition struct {
	Pending  []*domain.Offer
	Approved []*domain.Offer
	Rejected []*domain.Offer
}

// Partition splits offers by status. Pure: no side effects on the input.
func Partition(offers []*domain.Offer) OfferPartition {
	var p OfferPartition
	for _, offer := range offers {
		switch offer.Status {
		case domain.OfferStatusPending:
			p.Pending = append(p.Pending, offer)
		case domain.OfferStatusApproved:
			p.Approved = append(p.Approved, offer)
		case domain.OfferStatusRejected:
			p.Rejected = append(p.Rejected, offer)
		}
	}
	return p
}

// EligibleForSettlement returns exactly the approved offers, in input order.
// Approved is the only status eligible for settlement generation.
func EligibleForSettlement(offers []*domain.Offer) []*domain.Offer {
	return Partition(offers).Approved
}
