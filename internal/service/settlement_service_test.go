package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/invofin/settlement-engine/internal/config"
	"github.com/invofin/settlement-engine/internal/domain"
	"github.com/invofin/settlement-engine/internal/mocks"
	customError "github.com/invofin/settlement-engine/pkg/errors"
)

func testConfig() *config.Config {
	return &config.Config{
		Business: config.BusinessConfig{
			PlatformFeeRate: "0.02",
			MinInterestRate: "0.5",
			MaxInterestRate: "25",
			SummaryCacheTTL: "5m",
		},
	}
}

type serviceMocks struct {
	invoiceRepo    *mocks.MockInvoiceRepository
	offerRepo      *mocks.MockOfferRepository
	paymentRepo    *mocks.MockPaymentRepository
	settlementRepo *mocks.MockSettlementRepository
}

func newTestService() (*SettlementService, *serviceMocks) {
	m := &serviceMocks{
		invoiceRepo:    &mocks.MockInvoiceRepository{},
		offerRepo:      &mocks.MockOfferRepository{},
		paymentRepo:    &mocks.MockPaymentRepository{},
		settlementRepo: &mocks.MockSettlementRepository{},
	}
	svc := NewSettlementService(m.invoiceRepo, m.offerRepo, m.paymentRepo, m.settlementRepo, nil, testConfig())
	return svc, m
}

func fundedInvoice(invoiceID uuid.UUID, fundedAt time.Time) *domain.Invoice {
	offer := &domain.Offer{
		ID:              uuid.New(),
		InvoiceID:       invoiceID,
		AmountRequested: decimal.NewFromInt(100000),
		InterestRate:    decimal.NewFromInt(12),
		Status:          domain.OfferStatusApproved,
		CreatedAt:       fundedAt,
	}
	payment := &domain.Payment{
		ID:        uuid.New(),
		InvoiceID: invoiceID,
		Amount:    decimal.NewFromInt(60000),
		Method:    domain.PaymentMethodUPI,
	}
	return &domain.Invoice{
		ID:         invoiceID,
		Amount:     decimal.NewFromInt(150000),
		DueDate:    fundedAt.AddDate(0, 0, 120),
		Status:     domain.InvoiceStatusFunded,
		IsFinanced: true,
		UploadedAt: fundedAt.AddDate(0, 0, -10),
		Offers:     []*domain.Offer{offer},
		Payments:   []*domain.Payment{payment},
	}
}

func TestGenerateSettlements_Success(t *testing.T) {
	svc, m := newTestService()

	invoiceID := uuid.New()
	fundedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	asOf := fundedAt.AddDate(0, 0, 90)
	invoice := fundedInvoice(invoiceID, fundedAt)

	m.invoiceRepo.On("GetByID", mock.Anything, invoiceID).Return(invoice, nil)
	m.settlementRepo.On("CreateBatch", mock.Anything, mock.MatchedBy(func(settlements []*domain.Settlement) bool {
		return len(settlements) == 1 && settlements[0].ID != uuid.Nil
	})).Return(nil)

	settlements, err := svc.GenerateSettlements(context.Background(), invoiceID, asOf)

	require.NoError(t, err)
	require.Len(t, settlements, 1)
	assert.True(t, settlements[0].Interest.Equal(decimal.RequireFromString("2958.90")))
	assert.True(t, settlements[0].PlatformFee.Equal(decimal.RequireFromString("59.18")))
	assert.True(t, settlements[0].AmountSettled.Equal(decimal.RequireFromString("102899.72")))

	m.invoiceRepo.AssertExpectations(t)
	m.settlementRepo.AssertExpectations(t)
}

func TestGenerateSettlements_NotEligibleWithoutApprovedOffers(t *testing.T) {
	svc, m := newTestService()

	invoiceID := uuid.New()
	fundedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	invoice := fundedInvoice(invoiceID, fundedAt)
	invoice.Offers[0].Status = domain.OfferStatusPending

	m.invoiceRepo.On("GetByID", mock.Anything, invoiceID).Return(invoice, nil)

	settlements, err := svc.GenerateSettlements(context.Background(), invoiceID, fundedAt.AddDate(0, 0, 90))

	assert.Nil(t, settlements)
	assert.ErrorIs(t, err, customError.ErrNotEligible)
	m.settlementRepo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestGenerateSettlements_InvoiceNotFound(t *testing.T) {
	svc, m := newTestService()

	invoiceID := uuid.New()
	m.invoiceRepo.On("GetByID", mock.Anything, invoiceID).Return(nil, sql.ErrNoRows)

	settlements, err := svc.GenerateSettlements(context.Background(), invoiceID, time.Now())

	assert.Nil(t, settlements)
	assert.ErrorIs(t, err, customError.ErrInvoiceNotFound)
}

func TestRecordPayment_MarksInvoicePaidWhenCovered(t *testing.T) {
	svc, m := newTestService()

	invoiceID := uuid.New()
	fundedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	invoice := fundedInvoice(invoiceID, fundedAt)

	m.invoiceRepo.On("GetByID", mock.Anything, invoiceID).Return(invoice, nil)
	m.paymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
		return p.InvoiceID == invoiceID && p.Amount.Equal(decimal.NewFromInt(90000))
	})).Return(nil)
	m.paymentRepo.On("GetTotalPaid", mock.Anything, invoiceID).Return(decimal.NewFromInt(150000), nil)
	m.invoiceRepo.On("UpdateStatus", mock.Anything, invoiceID, domain.InvoiceStatusPaid).Return(nil)

	payment, err := svc.RecordPayment(context.Background(), &domain.RecordPaymentRequest{
		InvoiceID: invoiceID,
		Amount:    decimal.NewFromInt(90000),
		Method:    domain.PaymentMethodNEFT,
	}, fundedAt.AddDate(0, 0, 30))

	require.NoError(t, err)
	assert.Equal(t, domain.PaymentMethodNEFT, payment.Method)

	m.invoiceRepo.AssertExpectations(t)
	m.paymentRepo.AssertExpectations(t)
}

func TestRecordPayment_RejectsNonPositiveAmount(t *testing.T) {
	svc, _ := newTestService()

	payment, err := svc.RecordPayment(context.Background(), &domain.RecordPaymentRequest{
		InvoiceID: uuid.New(),
		Amount:    decimal.Zero,
		Method:    domain.PaymentMethodCash,
	}, time.Now())

	assert.Nil(t, payment)
	assert.ErrorIs(t, err, customError.ErrInvalidAmount)
}

func TestMakeOffer_RejectsRateAboveCeiling(t *testing.T) {
	svc, m := newTestService()

	invoiceID := uuid.New()
	fundedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	invoice := fundedInvoice(invoiceID, fundedAt)

	m.invoiceRepo.On("GetByID", mock.Anything, invoiceID).Return(invoice, nil)

	offer, err := svc.MakeOffer(context.Background(), &domain.CreateOfferRequest{
		InvoiceID:       invoiceID,
		FinancierID:     uuid.New(),
		AmountRequested: decimal.NewFromInt(50000),
		InterestRate:    decimal.NewFromInt(40),
	}, fundedAt)

	assert.Nil(t, offer)
	assert.ErrorIs(t, err, customError.ErrInvalidRate)
	m.offerRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDecideOffer_ApprovalFundsInvoice(t *testing.T) {
	svc, m := newTestService()

	offerID := uuid.New()
	invoiceID := uuid.New()
	offer := &domain.Offer{
		ID:          offerID,
		InvoiceID:   invoiceID,
		FinancierID: uuid.New(),
		Status:      domain.OfferStatusPending,
	}

	m.offerRepo.On("GetByID", mock.Anything, offerID).Return(offer, nil)
	m.offerRepo.On("UpdateStatus", mock.Anything, offerID, domain.OfferStatusApproved).Return(nil)
	m.invoiceRepo.On("UpdateStatus", mock.Anything, invoiceID, domain.InvoiceStatusFunded).Return(nil)
	m.invoiceRepo.On("SetFinanced", mock.Anything, invoiceID, true).Return(nil)

	decided, err := svc.DecideOffer(context.Background(), offerID, domain.OfferStatusApproved)

	require.NoError(t, err)
	assert.Equal(t, domain.OfferStatusApproved, decided.Status)

	m.offerRepo.AssertExpectations(t)
	m.invoiceRepo.AssertExpectations(t)
}

func TestDecideOffer_TerminalOfferConflicts(t *testing.T) {
	svc, m := newTestService()

	offerID := uuid.New()
	offer := &domain.Offer{
		ID:     offerID,
		Status: domain.OfferStatusRejected,
	}

	m.offerRepo.On("GetByID", mock.Anything, offerID).Return(offer, nil)

	decided, err := svc.DecideOffer(context.Background(), offerID, domain.OfferStatusApproved)

	assert.Nil(t, decided)
	assert.ErrorIs(t, err, customError.ErrOfferAlreadyFinal)
	m.offerRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetPortfolioSummary_WithoutCache(t *testing.T) {
	svc, m := newTestService()

	financierID := uuid.New()
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	offers := []*domain.Offer{
		{
			ID:              uuid.New(),
			FinancierID:     financierID,
			AmountRequested: decimal.NewFromInt(100000),
			InterestRate:    decimal.NewFromInt(12),
			Status:          domain.OfferStatusApproved,
			CreatedAt:       created,
			Invoice: &domain.Invoice{
				ID:      uuid.New(),
				Amount:  decimal.NewFromInt(150000),
				DueDate: created.AddDate(0, 0, 90),
			},
		},
	}

	m.offerRepo.On("GetByFinancierID", mock.Anything, financierID).Return(offers, nil)

	summary, err := svc.GetPortfolioSummary(context.Background(), financierID)

	require.NoError(t, err)
	assert.Equal(t, 1, summary.ApprovedOffers)
	assert.True(t, summary.TotalInvested.Equal(decimal.NewFromInt(100000)))
	assert.True(t, summary.TotalEarnings.Equal(decimal.RequireFromString("2958.90")))

	m.offerRepo.AssertExpectations(t)
}

func TestMarkOverdueInvoices(t *testing.T) {
	svc, m := newTestService()

	asOf := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	first := &domain.Invoice{ID: uuid.New(), Status: domain.InvoiceStatusFunded}
	second := &domain.Invoice{ID: uuid.New(), Status: domain.InvoiceStatusFunded}

	m.invoiceRepo.On("GetFundedDueBefore", mock.Anything, asOf).Return([]*domain.Invoice{first, second}, nil)
	m.invoiceRepo.On("UpdateStatus", mock.Anything, first.ID, domain.InvoiceStatusOverdue).Return(nil)
	m.invoiceRepo.On("UpdateStatus", mock.Anything, second.ID, domain.InvoiceStatusOverdue).Return(nil)

	updated, err := svc.MarkOverdueInvoices(context.Background(), asOf)

	require.NoError(t, err)
	assert.Equal(t, 2, updated)
	m.invoiceRepo.AssertExpectations(t)
}
