package biddingerrors

import (
	"errors"
	"fmt"
)

// Repository-level errors
var (
	ErrAuctionNotFound = errors.New("auction not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// business logic errors
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrAccountPending     = errors.New("account pending approval")
	ErrForbidden          = errors.New("forbidden")
	ErrAuctionEnded       = errors.New("auction ended")
	ErrBidTooLow          = errors.New("bid amount too low")
	ErrInvalidBid         = errors.New("invalid bid")
	ErrInvalidAuction     = errors.New("invalid auction")
	ErrInvalidUser        = errors.New("invalid user")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// BidTooLowError is returned when a bid does not beat the current bid.
// It matches ErrBidTooLow with errors.Is.
type BidTooLowError struct {
	CurrentBid float64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("%s: current bid is %.2f", ErrBidTooLow, e.CurrentBid)
}

func (e *BidTooLowError) Is(target error) bool {
	return target == ErrBidTooLow
}
