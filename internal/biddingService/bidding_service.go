package bidding

import (
	"casse-auctions/internal/biddingerrors"
	"casse-auctions/internal/models"
	"casse-auctions/internal/repository"
	"casse-auctions/utils"
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

// BiddingService defines the business logic for vehicle auctions
type BiddingService struct {
	repo  repository.AuctionDB
	clock utils.Clock
}

// NewBiddingService creates a new BiddingService instance. A nil clock uses wall-clock time.
func NewBiddingService(repo repository.AuctionDB, clock utils.Clock) *BiddingService {
	if clock == nil {
		clock = utils.RealClock{}
	}
	return &BiddingService{
		repo:  repo,
		clock: clock,
	}
}

// NewAuction is the administrative input for creating an auction
type NewAuction struct {
	models.Vehicle
	StartingPrice float64
	EndDate       time.Time
}

// PlaceBid validates a bid from caller and records it atomically.
//
// Rules are checked in order: authenticated caller, existing auction, auction
// still open, amount above the current bid, approved account.
func (s *BiddingService) PlaceBid(ctx context.Context, auctionID string, amount float64, caller *models.Identity) (models.Auction, error) {
	if caller == nil || caller.ID == "" {
		return models.Auction{}, fmt.Errorf("service: place bid on auction %s: %w", auctionID, biddingerrors.ErrUnauthorized)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return models.Auction{}, fmt.Errorf("service: %w - amount is not a finite number", biddingerrors.ErrInvalidBid)
	}

	identity := *caller
	auction, err := s.repo.RecordBid(ctx, auctionID, func(a models.Auction) (models.Bid, error) {
		now := s.clock.Now().UTC()
		if !a.IsOpen(now) {
			return models.Bid{}, biddingerrors.ErrAuctionEnded
		}
		if amount <= a.CurrentBid {
			return models.Bid{}, &biddingerrors.BidTooLowError{CurrentBid: a.CurrentBid}
		}
		if !identity.IsApproved() {
			return models.Bid{}, biddingerrors.ErrAccountPending
		}
		return models.Bid{
			ID:         utils.GenerateID(),
			AuctionID:  a.ID,
			UserID:     identity.ID,
			BidderName: identity.Name,
			Amount:     amount,
			Timestamp:  now,
		}, nil
	})
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: place bid on auction %s by user %s: %w", auctionID, identity.ID, err)
	}

	return auction, nil
}

// GetAuction returns a single auction with its bid history
func (s *BiddingService) GetAuction(ctx context.Context, auctionID string) (models.Auction, error) {
	auction, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to get auction %s: %w", auctionID, err)
	}
	return auction, nil
}

// ListAuctions returns every auction; filtering is left to the client
func (s *BiddingService) ListAuctions(ctx context.Context) ([]models.Auction, error) {
	auctions, err := s.repo.ListAuctions(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list auctions: %w", err)
	}
	return auctions, nil
}

// CreateAuction opens a new auction at its starting price
func (s *BiddingService) CreateAuction(ctx context.Context, input NewAuction) (models.Auction, error) {
	if err := validateNewAuction(input); err != nil {
		return models.Auction{}, err
	}

	vehicle := input.Vehicle
	vehicle.Name = strings.TrimSpace(vehicle.Name)
	if vehicle.Images == nil {
		vehicle.Images = []string{}
	}

	auction := models.Auction{
		ID:            utils.GenerateID(),
		Vehicle:       vehicle,
		StartingPrice: input.StartingPrice,
		CurrentBid:    input.StartingPrice,
		BidCount:      0,
		Bids:          []models.Bid{},
		EndDate:       input.EndDate.UTC(),
		CreatedAt:     s.clock.Now().UTC(),
	}

	if err := s.repo.CreateAuction(ctx, auction); err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to create auction: %w", err)
	}
	return auction, nil
}

// UpdateAuction applies a partial administrative edit
func (s *BiddingService) UpdateAuction(ctx context.Context, auctionID string, update models.AuctionUpdate) (models.Auction, error) {
	if err := validateUpdate(update); err != nil {
		return models.Auction{}, err
	}
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		update.Name = &name
	}

	auction, err := s.repo.UpdateAuction(ctx, auctionID, update)
	if err != nil {
		return models.Auction{}, fmt.Errorf("service: failed to update auction %s: %w", auctionID, err)
	}
	return auction, nil
}

// DeleteAuction removes an auction and its bids
func (s *BiddingService) DeleteAuction(ctx context.Context, auctionID string) error {
	if err := s.repo.DeleteAuction(ctx, auctionID); err != nil {
		return fmt.Errorf("service: failed to delete auction %s: %w", auctionID, err)
	}
	return nil
}

// BidsForUser reports, for every auction the user bid on, their highest bid,
// whether they hold the most recent bid, and the auction state.
func (s *BiddingService) BidsForUser(ctx context.Context, userID string) ([]models.UserBid, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", biddingerrors.ErrUnauthorized)
	}

	auctions, err := s.repo.ListAuctions(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for user %s: %w", userID, err)
	}

	now := s.clock.Now().UTC()
	result := []models.UserBid{}
	for _, a := range auctions {
		highest, found := 0.0, false
		for _, b := range a.Bids {
			if b.UserID == userID && (!found || b.Amount > highest) {
				highest, found = b.Amount, true
			}
		}
		if !found {
			continue
		}

		result = append(result, models.UserBid{
			AuctionID:    a.ID,
			AuctionName:  a.Name,
			Images:       a.Images,
			MyHighestBid: highest,
			CurrentBid:   a.CurrentBid,
			BidCount:     a.BidCount,
			// leader is the most recently inserted bid, not the largest amount
			IsWinning: a.Bids[0].UserID == userID,
			EndDate:   a.EndDate,
			Status:    a.State(now),
		})
	}
	return result, nil
}

func validateNewAuction(input NewAuction) error {
	switch {
	case strings.TrimSpace(input.Name) == "":
		return fmt.Errorf("service: %w - name is required", biddingerrors.ErrInvalidAuction)
	case input.StartingPrice <= 0 || math.IsInf(input.StartingPrice, 0) || math.IsNaN(input.StartingPrice):
		return fmt.Errorf("service: %w - starting price must be positive", biddingerrors.ErrInvalidAuction)
	case input.EndDate.IsZero():
		return fmt.Errorf("service: %w - end date is required", biddingerrors.ErrInvalidAuction)
	case input.Year < 0 || input.Mileage < 0:
		return fmt.Errorf("service: %w - year and mileage must not be negative", biddingerrors.ErrInvalidAuction)
	}
	return nil
}

func validateUpdate(update models.AuctionUpdate) error {
	switch {
	case update.Name != nil && strings.TrimSpace(*update.Name) == "":
		return fmt.Errorf("service: %w - name must not be empty", biddingerrors.ErrInvalidAuction)
	case update.Year != nil && *update.Year < 0:
		return fmt.Errorf("service: %w - year must not be negative", biddingerrors.ErrInvalidAuction)
	case update.Mileage != nil && *update.Mileage < 0:
		return fmt.Errorf("service: %w - mileage must not be negative", biddingerrors.ErrInvalidAuction)
	case update.EndDate != nil && update.EndDate.IsZero():
		return fmt.Errorf("service: %w - end date must not be empty", biddingerrors.ErrInvalidAuction)
	}
	return nil
}
