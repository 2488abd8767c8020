package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/invofin/settlement-engine/internal/domain"
)

func TestPartition(t *testing.T) {
	a := &domain.Offer{ID: uuid.New(), Status: domain.OfferStatusApproved}
	b := &domain.Offer{ID: uuid.New(), Status: domain.OfferStatusPending}
	c := &domain.Offer{ID: uuid.New(), Status: domain.OfferStatusApproved}
	d := &domain.Offer{ID: uuid.New(), Status: domain.OfferStatusRejected}
	e := &domain.Offer{ID: uuid.New(), Status: domain.OfferStatusPending}

	p := Partition([]*domain.Offer{a, b, c, d, e})

	// Relative input order survives within each group.
	assert.Equal(t, []*domain.Offer{b, e}, p.Pending)
	assert.Equal(t, []*domain.Offer{a, c}, p.Approved)
	assert.Equal(t, []*domain.Offer{d}, p.Rejected)
}

func TestPartition_Empty(t *testing.T) {
	p := Partition(nil)

	assert.Empty(t, p.Pending)
	assert.Empty(t, p.Approved)
	assert.Empty(t, p.Rejected)
}

func TestEligibleForSettlement(t *testing.T) {
	a := &domain.Offer{ID: uuid.New(), Status: domain.OfferStatusPending}
	b := &domain.Offer{ID: uuid.New(), Status: domain.OfferStatusApproved}
	c := &domain.Offer{ID: uuid.New(), Status: domain.OfferStatusRejected}
	d := &domain.Offer{ID: uuid.New(), Status: domain.OfferStatusApproved}

	eligible := EligibleForSettlement([]*domain.Offer{a, b, c, d})

	assert.Equal(t, []*domain.Offer{b, d}, eligible)
}
