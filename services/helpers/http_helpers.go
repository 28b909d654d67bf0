package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"casse-auctions/internal/biddingerrors"
	"casse-auctions/utils"

	"github.com/gin-gonic/gin"
)

// Machine-readable error codes returned in the "code" field
const (
	CodeUnauthorized       = "unauthorized"
	CodeAccountPending     = "account_pending"
	CodeForbidden          = "forbidden"
	CodeNotFound           = "not_found"
	CodeAuctionEnded       = "auction_ended"
	CodeBidTooLow          = "bid_too_low"
	CodeInvalidRequest     = "invalid_request"
	CodeInvalidCredentials = "invalid_credentials"
	CodeEmailTaken         = "email_taken"
	CodeInternal           = "internal_error"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, CodeInvalidRequest, wrappedErr, "invalid request payload", nil)
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code, error code and message
func MapErrorToHTTP(err error) (int, string, string) {
	switch {
	case errors.Is(err, biddingerrors.ErrUnauthorized):
		return http.StatusUnauthorized, CodeUnauthorized, "authentication required"
	case errors.Is(err, biddingerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, CodeInvalidCredentials, "invalid email or password"
	case errors.Is(err, biddingerrors.ErrAccountPending):
		return http.StatusForbidden, CodeAccountPending, "account pending approval"
	case errors.Is(err, biddingerrors.ErrForbidden):
		return http.StatusForbidden, CodeForbidden, "admin access required"
	case errors.Is(err, biddingerrors.ErrAuctionNotFound):
		return http.StatusNotFound, CodeNotFound, "auction not found"
	case errors.Is(err, biddingerrors.ErrUserNotFound):
		return http.StatusNotFound, CodeNotFound, "user not found"
	case errors.Is(err, biddingerrors.ErrAuctionEnded):
		return http.StatusBadRequest, CodeAuctionEnded, "auction has ended"
	case errors.Is(err, biddingerrors.ErrBidTooLow):
		return http.StatusBadRequest, CodeBidTooLow, "bid amount too low"
	case errors.Is(err, biddingerrors.ErrInvalidBid):
		return http.StatusBadRequest, CodeInvalidRequest, "invalid bid details"
	case errors.Is(err, biddingerrors.ErrInvalidAuction):
		return http.StatusBadRequest, CodeInvalidRequest, "invalid auction details"
	case errors.Is(err, biddingerrors.ErrInvalidUser):
		return http.StatusBadRequest, CodeInvalidRequest, "invalid user details"
	case errors.Is(err, biddingerrors.ErrEmailTaken):
		return http.StatusConflict, CodeEmailTaken, "email already registered"
	default:
		return http.StatusInternalServerError, CodeInternal, "internal server error"
	}
}

// RespondError maps err to a JSON error response and logs it.
// Client errors are logged at warn level, server errors at error level.
func RespondError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, code, message := MapErrorToHTTP(err)

	var details map[string]any
	var tooLow *biddingerrors.BidTooLowError
	if errors.As(err, &tooLow) {
		details = map[string]any{"currentBid": tooLow.CurrentBid}
	}

	utils.JSONError(c, status, code, fmt.Errorf("%s: %w", message, err), message, details)

	logFields := map[string]any{"handler": handlerName, "code": code, "error": err.Error()}
	for k, v := range fields {
		logFields[k] = v
	}
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", logFields)
		return
	}
	utils.Warn(handlerName+": request rejected", logFields)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
