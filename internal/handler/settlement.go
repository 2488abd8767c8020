package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/invofin/settlement-engine/internal/domain"
	"github.com/invofin/settlement-engine/internal/service"
	customError "github.com/invofin/settlement-engine/pkg/errors"
	"github.com/invofin/settlement-engine/pkg/response"
)

type SettlementHandler struct {
	service   *service.SettlementService
	validator *validator.Validate
}

func NewSettlementHandler(service *service.SettlementService) *SettlementHandler {
	return &SettlementHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateInvoice handles POST /invoices
func (h *SettlementHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	invoice, err := h.service.CreateInvoice(r.Context(), &request, time.Now())
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, invoice)
}

// GetInvoice handles GET /invoices/{invoiceId}
func (h *SettlementHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	invoiceID, ok := pathUUID(w, r, "invoiceId")
	if !ok {
		return
	}

	invoice, err := h.service.GetInvoice(r.Context(), invoiceID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, invoice)
}

// GetSellerInvoices handles GET /invoices/seller/{sellerId}
func (h *SettlementHandler) GetSellerInvoices(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := pathUUID(w, r, "sellerId")
	if !ok {
		return
	}

	invoices, err := h.service.GetSellerInvoices(r.Context(), sellerID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, invoices)
}

// GetAvailableInvoices handles GET /invoices/available
func (h *SettlementHandler) GetAvailableInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.service.GetAvailableInvoices(r.Context())
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, invoices)
}

// RecordPayment handles POST /payments
func (h *SettlementHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var request domain.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	payment, err := h.service.RecordPayment(r.Context(), &request, time.Now())
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, payment)
}

// CreateOffer handles POST /offers
func (h *SettlementHandler) CreateOffer(w http.ResponseWriter, r *http.Request) {
	var request domain.CreateOfferRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	offer, err := h.service.MakeOffer(r.Context(), &request, time.Now())
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, offer)
}

// GetFinancierOffers handles GET /offers/financier/{financierId}
func (h *SettlementHandler) GetFinancierOffers(w http.ResponseWriter, r *http.Request) {
	financierID, ok := pathUUID(w, r, "financierId")
	if !ok {
		return
	}

	offers, err := h.service.GetFinancierOffers(r.Context(), financierID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, offers)
}

// AcceptOffer handles PUT /offers/{offerId}/accept
func (h *SettlementHandler) AcceptOffer(w http.ResponseWriter, r *http.Request) {
	h.decideOffer(w, r, domain.OfferStatusApproved)
}

// RejectOffer handles PUT /offers/{offerId}/reject
func (h *SettlementHandler) RejectOffer(w http.ResponseWriter, r *http.Request) {
	h.decideOffer(w, r, domain.OfferStatusRejected)
}

func (h *SettlementHandler) decideOffer(w http.ResponseWriter, r *http.Request, status domain.OfferStatus) {
	offerID, ok := pathUUID(w, r, "offerId")
	if !ok {
		return
	}

	offer, err := h.service.DecideOffer(r.Context(), offerID, status)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, offer)
}

// GenerateSettlements handles POST /settlements/{invoiceId}/generate
func (h *SettlementHandler) GenerateSettlements(w http.ResponseWriter, r *http.Request) {
	invoiceID, ok := pathUUID(w, r, "invoiceId")
	if !ok {
		return
	}

	settlements, err := h.service.GenerateSettlements(r.Context(), invoiceID, time.Now())
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, &domain.GenerateSettlementsResponse{
		InvoiceID:   invoiceID,
		Settlements: settlements,
	})
}

// GetSettlements handles GET /settlements/{invoiceId}
func (h *SettlementHandler) GetSettlements(w http.ResponseWriter, r *http.Request) {
	invoiceID, ok := pathUUID(w, r, "invoiceId")
	if !ok {
		return
	}

	settlements, err := h.service.GetSettlements(r.Context(), invoiceID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, &domain.GenerateSettlementsResponse{
		InvoiceID:   invoiceID,
		Settlements: settlements,
	})
}

// GetPortfolioSummary handles GET /portfolio/{financierId}/summary
func (h *SettlementHandler) GetPortfolioSummary(w http.ResponseWriter, r *http.Request) {
	financierID, ok := pathUUID(w, r, "financierId")
	if !ok {
		return
	}

	summary, err := h.service.GetPortfolioSummary(r.Context(), financierID)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, summary)
}

func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		response.BadRequest(w, "invalid "+name, err)
		return uuid.Nil, false
	}
	return id, true
}

func writeBusinessError(w http.ResponseWriter, err error) {
	var bizErr *customError.BusinessError
	if !errors.As(err, &bizErr) {
		response.InternalServerError(w, "unexpected error", err)
		return
	}

	switch bizErr.Code {
	case customError.ErrCodeInvoiceNotFound, customError.ErrCodeOfferNotFound:
		response.NotFound(w, bizErr.Message)
	case customError.ErrCodeNotEligible,
		customError.ErrCodeInvalidAmount,
		customError.ErrCodeInvalidRate,
		customError.ErrCodeInvalidDateRange:
		response.UnprocessableEntity(w, bizErr.Message, bizErr.Err)
	case customError.ErrCodeOfferAlreadyFinal:
		response.Conflict(w, bizErr.Message, bizErr.Err)
	default:
		response.InternalServerError(w, bizErr.Message, bizErr.Err)
	}
}
