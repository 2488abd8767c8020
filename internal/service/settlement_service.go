package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/invofin/settlement-engine/internal/config"
	"github.com/invofin/settlement-engine/internal/domain"
	"github.com/invofin/settlement-engine/internal/engine"
	"github.com/invofin/settlement-engine/internal/logger"
	"github.com/invofin/settlement-engine/internal/repository"
	customError "github.com/invofin/settlement-engine/pkg/errors"
)

// SettlementService orchestrates the marketplace records around the pure
// calculation engine: it loads invoices, offers and payments, hands them to
// the engine, and persists what comes back.
type SettlementService struct {
	invoiceRepo    repository.InvoiceRepository
	offerRepo      repository.OfferRepository
	paymentRepo    repository.PaymentRepository
	settlementRepo repository.SettlementRepository
	engine         *engine.Engine
	redis          *redis.Client
	config         *config.Config
	log            zerolog.Logger
}

func NewSettlementService(
	invoiceRepo repository.InvoiceRepository,
	offerRepo repository.OfferRepository,
	paymentRepo repository.PaymentRepository,
	settlementRepo repository.SettlementRepository,
	redisClient *redis.Client,
	cfg *config.Config,
) *SettlementService {
	return &SettlementService{
		invoiceRepo:    invoiceRepo,
		offerRepo:      offerRepo,
		paymentRepo:    paymentRepo,
		settlementRepo: settlementRepo,
		engine:         engine.New(cfg.GetPlatformFeeRate(), cfg.GetMinInterestRate(), cfg.GetMaxInterestRate()),
		redis:          redisClient,
		config:         cfg,
		log:            logger.WithComponent("settlement_service"),
	}
}

// CreateInvoice validates and stores a newly uploaded invoice.
func (s *SettlementService) CreateInvoice(ctx context.Context, request *domain.CreateInvoiceRequest, now time.Time) (*domain.Invoice, error) {
	invoice := &domain.Invoice{
		ID:            uuid.New(),
		InvoiceNumber: request.InvoiceNumber,
		SellerID:      request.SellerID,
		BuyerName:     request.BuyerName,
		BuyerGSTIN:    request.BuyerGSTIN,
		Amount:        request.Amount,
		DueDate:       request.DueDate,
		Status:        domain.InvoiceStatusPending,
		UploadedAt:    now,
	}

	if err := invoice.Validate(); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return invoice, nil
}

// GetInvoice returns an invoice with its offers, payments and rollups.
func (s *SettlementService) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*domain.InvoiceResponse, error) {
	invoice, err := s.getInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	return &domain.InvoiceResponse{
		Invoice:       invoice,
		TotalReceived: invoice.TotalReceived(),
		FundedPercent: engine.FundedPercent(invoice, invoice.Offers),
	}, nil
}

// GetSellerInvoices returns the invoices uploaded by a seller.
func (s *SettlementService) GetSellerInvoices(ctx context.Context, sellerID uuid.UUID) ([]*domain.Invoice, error) {
	invoices, err := s.invoiceRepo.GetBySellerID(ctx, sellerID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return invoices, nil
}

// GetAvailableInvoices returns invoices open for financing.
func (s *SettlementService) GetAvailableInvoices(ctx context.Context) ([]*domain.Invoice, error) {
	invoices, err := s.invoiceRepo.GetAvailable(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return invoices, nil
}

// MakeOffer validates a financier's proposed terms against the invoice and
// the platform rate bounds, then stores the offer in pending state.
func (s *SettlementService) MakeOffer(ctx context.Context, request *domain.CreateOfferRequest, now time.Time) (*domain.Offer, error) {
	invoice, err := s.getInvoice(ctx, request.InvoiceID)
	if err != nil {
		return nil, err
	}

	offer := &domain.Offer{
		ID:              uuid.New(),
		InvoiceID:       request.InvoiceID,
		FinancierID:     request.FinancierID,
		AmountRequested: request.AmountRequested,
		InterestRate:    request.InterestRate,
		Terms:           request.Terms,
		Status:          domain.OfferStatusPending,
		CreatedAt:       now,
	}

	if err := s.engine.ValidateOffer(invoice, offer); err != nil {
		return nil, err
	}

	if err := s.offerRepo.Create(ctx, offer); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateSummary(ctx, offer.FinancierID)

	return offer, nil
}

// DecideOffer moves a pending offer to approved or rejected. Approval marks
// the invoice funded and financed. Terminal offers cannot be decided again.
func (s *SettlementService) DecideOffer(ctx context.Context, offerID uuid.UUID, status domain.OfferStatus) (*domain.Offer, error) {
	if !status.Terminal() {
		return nil, customError.WrapNotEligible(fmt.Sprintf("offer decision must be approved or rejected, got %q", status))
	}

	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapOfferNotFound(offerID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if offer.Status.Terminal() {
		return nil, customError.WrapOfferAlreadyFinal(offerID.String(), string(offer.Status))
	}

	if err := s.offerRepo.UpdateStatus(ctx, offerID, status); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	offer.Status = status

	if status == domain.OfferStatusApproved {
		if err := s.invoiceRepo.UpdateStatus(ctx, offer.InvoiceID, domain.InvoiceStatusFunded); err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
		if err := s.invoiceRepo.SetFinanced(ctx, offer.InvoiceID, true); err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
	}

	s.invalidateSummary(ctx, offer.FinancierID)

	return offer, nil
}

// GetFinancierOffers returns a financier's offers with invoices populated.
func (s *SettlementService) GetFinancierOffers(ctx context.Context, financierID uuid.UUID) ([]*domain.Offer, error) {
	offers, err := s.offerRepo.GetByFinancierID(ctx, financierID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return offers, nil
}

// RecordPayment appends a buyer remittance to an invoice. Once the payment
// total covers the face amount, the invoice is marked paid.
func (s *SettlementService) RecordPayment(ctx context.Context, request *domain.RecordPaymentRequest, now time.Time) (*domain.Payment, error) {
	if !request.Amount.IsPositive() {
		return nil, customError.WrapInvalidAmount(request.Amount.String(), "payment amount must be positive")
	}

	invoice, err := s.getInvoice(ctx, request.InvoiceID)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		ID:        uuid.New(),
		InvoiceID: invoice.ID,
		Amount:    request.Amount,
		Method:    request.Method,
		CreatedAt: now,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	totalPaid, err := s.paymentRepo.GetTotalPaid(ctx, invoice.ID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	if totalPaid.GreaterThanOrEqual(invoice.Amount) && invoice.Status != domain.InvoiceStatusPaid {
		if err := s.invoiceRepo.UpdateStatus(ctx, invoice.ID, domain.InvoiceStatusPaid); err != nil {
			return nil, customError.WrapDatabaseError(err)
		}
	}

	return payment, nil
}

// GenerateSettlements runs the engine over an invoice's approved offers and
// payments as of the given instant and persists the resulting set.
// Regeneration appends a new set; prior settlements are never revised.
func (s *SettlementService) GenerateSettlements(ctx context.Context, invoiceID uuid.UUID, asOf time.Time) ([]*domain.Settlement, error) {
	invoice, err := s.getInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	approved := engine.EligibleForSettlement(invoice.Offers)

	settlements, err := s.engine.Generate(invoice, approved, invoice.Payments, asOf)
	if err != nil {
		return nil, err
	}

	for _, settlement := range settlements {
		settlement.ID = uuid.New()
	}

	if err := s.settlementRepo.CreateBatch(ctx, settlements); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.log.Info().
		Str("invoice_id", invoiceID.String()).
		Int("settlements", len(settlements)).
		Msg("settlements generated")

	return settlements, nil
}

// GetSettlements returns the settlements generated for an invoice.
func (s *SettlementService) GetSettlements(ctx context.Context, invoiceID uuid.UUID) ([]*domain.Settlement, error) {
	settlements, err := s.settlementRepo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return settlements, nil
}

// GetPortfolioSummary returns a financier's dashboard rollup, cache-aside
// over Redis. Cache failures degrade to recomputation, never to an error.
func (s *SettlementService) GetPortfolioSummary(ctx context.Context, financierID uuid.UUID) (*engine.PortfolioSummary, error) {
	cacheKey := summaryCacheKey(financierID)

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var summary engine.PortfolioSummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("portfolio summary cache read failed")
		}
	}

	offers, err := s.offerRepo.GetByFinancierID(ctx, financierID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	summary := engine.Summarize(offers)

	if s.redis != nil {
		if payload, err := json.Marshal(summary); err == nil {
			if err := s.redis.Set(ctx, cacheKey, payload, s.config.GetSummaryCacheTTL()).Err(); err != nil {
				s.log.Warn().Err(err).Msg("portfolio summary cache write failed")
			}
		}
	}

	return &summary, nil
}

// MarkOverdueInvoices flips funded invoices past their due date to overdue.
// Returns the number of invoices updated. Used by the scheduler.
func (s *SettlementService) MarkOverdueInvoices(ctx context.Context, asOf time.Time) (int, error) {
	invoices, err := s.invoiceRepo.GetFundedDueBefore(ctx, asOf)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	updated := 0
	for _, invoice := range invoices {
		if err := s.invoiceRepo.UpdateStatus(ctx, invoice.ID, domain.InvoiceStatusOverdue); err != nil {
			s.log.Error().Err(err).Str("invoice_id", invoice.ID.String()).Msg("failed to mark invoice overdue")
			continue
		}
		updated++
	}

	return updated, nil
}

func (s *SettlementService) getInvoice(ctx context.Context, invoiceID uuid.UUID) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapInvoiceNotFound(invoiceID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return invoice, nil
}

func (s *SettlementService) invalidateSummary(ctx context.Context, financierID uuid.UUID) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, summaryCacheKey(financierID)).Err(); err != nil {
		s.log.Warn().Err(err).Msg("portfolio summary cache invalidation failed")
	}
}

func summaryCacheKey(financierID uuid.UUID) string {
	return fmt.Sprintf("portfolio:summary:%s", financierID)
}
