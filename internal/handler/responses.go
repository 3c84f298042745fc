package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// PageResponse wraps a paged collection with its total count.
type PageResponse struct {
	Data  interface{} `json:"data"`
	Page  int         `json:"page"`
	Total int         `json:"total"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; nothing left to write.
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgUnavailableError    = "Server is busy. Please try again."
	ErrMsgProfileNotFoundErr  = "Profile not found"
	ErrMsgCaseNotFoundErr     = "Case not found"
	ErrMsgItemNotFoundErr     = "Item not found"
	ErrMsgNoCaseOwnedErr      = "You don't own that case"
	ErrMsgNoKeyOwnedErr       = "You don't have a key for that case"
	ErrMsgDailyLimitErr       = "Daily case opening limit reached"
	ErrMsgNotEnoughCoinsErr   = "Not enough coins"
	ErrMsgInvalidAmountErr    = "Amount must be positive"
	ErrMsgNotOwnerErr         = "You don't own that item"
	ErrMsgItemLockedErr       = "That item is locked"
	ErrMsgAlreadyListedErr    = "That item is already listed"
	ErrMsgListingNotFoundErr  = "Listing not found"
	ErrMsgListingNotActiveErr = "Listing is no longer available"
	ErrMsgInvalidPriceErr     = "Price is out of the allowed range"
	ErrMsgOwnListingErr       = "You cannot buy your own listing"
	ErrMsgMaxListingsErr      = "You have too many active listings"
	ErrMsgDailyNotReadyErr    = "Daily reward already claimed. Come back later."
	ErrMsgStarterClaimedErr   = "Starter pack already claimed"
	ErrMsgNotForSaleErr       = "That item is not sold in the shop"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP
// responses. Transient persistence conflicts surface as 503 so clients
// know a retry is safe.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrProfileNotFound), errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgProfileNotFoundErr
	case errors.Is(err, domain.ErrCaseNotFound):
		return http.StatusNotFound, ErrMsgCaseNotFoundErr
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrItemDefNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundErr
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound, ErrMsgListingNotFoundErr
	case errors.Is(err, domain.ErrNoCaseOwned):
		return http.StatusBadRequest, ErrMsgNoCaseOwnedErr
	case errors.Is(err, domain.ErrNoKeyOwned):
		return http.StatusBadRequest, ErrMsgNoKeyOwnedErr
	case errors.Is(err, domain.ErrDailyLimitReached):
		return http.StatusTooManyRequests, ErrMsgDailyLimitErr
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughCoinsErr
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountErr
	case errors.Is(err, domain.ErrNotOwner):
		return http.StatusForbidden, ErrMsgNotOwnerErr
	case errors.Is(err, domain.ErrItemLocked):
		return http.StatusConflict, ErrMsgItemLockedErr
	case errors.Is(err, domain.ErrAlreadyListed):
		return http.StatusConflict, ErrMsgAlreadyListedErr
	case errors.Is(err, domain.ErrListingNotActive):
		return http.StatusConflict, ErrMsgListingNotActiveErr
	case errors.Is(err, domain.ErrInvalidPrice):
		return http.StatusBadRequest, ErrMsgInvalidPriceErr
	case errors.Is(err, domain.ErrCannotBuyOwnListing):
		return http.StatusBadRequest, ErrMsgOwnListingErr
	case errors.Is(err, domain.ErrMaxListingsReached):
		return http.StatusBadRequest, ErrMsgMaxListingsErr
	case errors.Is(err, domain.ErrDailyNotReady):
		return http.StatusTooManyRequests, ErrMsgDailyNotReadyErr
	case errors.Is(err, domain.ErrStarterPackClaimed):
		return http.StatusConflict, ErrMsgStarterClaimedErr
	case errors.Is(err, domain.ErrNotForSale), errors.Is(err, domain.ErrKeyNotFound):
		return http.StatusNotFound, ErrMsgNotForSaleErr
	case errors.Is(err, domain.ErrPersistenceConflict):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	case errors.Is(err, domain.ErrCorruptDropTable), errors.Is(err, domain.ErrEmptyRarityPool):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}

// respondServiceError maps a service error and sends it.
func respondServiceError(w http.ResponseWriter, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	respondError(w, status, msg)
}
