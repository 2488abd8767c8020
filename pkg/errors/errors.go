package errors

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors
var (
	ErrNotEligible       = errors.New("invoice is not eligible for settlement")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidRate       = errors.New("interest rate outside platform bounds")
	ErrInvalidDateRange  = errors.New("date range is invalid")
	ErrInvoiceNotFound   = errors.New("invoice not found")
	ErrOfferNotFound     = errors.New("offer not found")
	ErrOfferAlreadyFinal = errors.New("offer is already in a terminal state")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeNotEligible       = "NOT_ELIGIBLE"
	ErrCodeInvalidAmount     = "INVALID_AMOUNT"
	ErrCodeInvalidRate       = "INVALID_RATE"
	ErrCodeInvalidDateRange  = "INVALID_DATE_RANGE"
	ErrCodeInvoiceNotFound   = "INVOICE_NOT_FOUND"
	ErrCodeOfferNotFound     = "OFFER_NOT_FOUND"
	ErrCodeOfferAlreadyFinal = "OFFER_ALREADY_FINAL"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeCacheError        = "CACHE_ERROR"
)

// Wrap common errors with business context

func WrapNotEligible(reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeNotEligible,
		reason,
		ErrNotEligible,
	)
}

func WrapInvalidAmount(amount, reason string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidAmount,
		fmt.Sprintf("%s: %s", reason, amount),
		ErrInvalidAmount,
	)
}

func WrapInvalidRate(rate, min, max string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidRate,
		fmt.Sprintf("interest rate %s%% is outside the allowed range %s%% to %s%%", rate, min, max),
		ErrInvalidRate,
	)
}

func WrapInvalidDateRange(start, end time.Time) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidDateRange,
		fmt.Sprintf("end date %s precedes start date %s", end.Format("2006-01-02"), start.Format("2006-01-02")),
		ErrInvalidDateRange,
	)
}

func WrapInvoiceNotFound(invoiceID string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvoiceNotFound,
		fmt.Sprintf("Invoice with ID %s not found", invoiceID),
		ErrInvoiceNotFound,
	)
}

func WrapOfferNotFound(offerID string) *BusinessError {
	return NewBusinessError(
		ErrCodeOfferNotFound,
		fmt.Sprintf("Offer with ID %s not found", offerID),
		ErrOfferNotFound,
	)
}

func WrapOfferAlreadyFinal(offerID, status string) *BusinessError {
	return NewBusinessError(
		ErrCodeOfferAlreadyFinal,
		fmt.Sprintf("Offer %s is already %s", offerID, status),
		ErrOfferAlreadyFinal,
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		err,
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		err,
	)
}
