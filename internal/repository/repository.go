package repository

import (
	"casse-auctions/internal/biddingerrors"
	model "casse-auctions/internal/models"
	"context"
	"fmt"
	"sort"
	"sync"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// BidCheck validates a bid against the locked state of an auction. It returns
// the bid to append, or an error that aborts the bid with no state change.
type BidCheck func(auction model.Auction) (model.Bid, error)

// AuctionDB defines the auction and bid storage interface
type AuctionDB interface {
	CreateAuction(ctx context.Context, auction model.Auction) error
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
	ListAuctions(ctx context.Context) ([]model.Auction, error)
	UpdateAuction(ctx context.Context, auctionID string, update model.AuctionUpdate) (model.Auction, error)
	DeleteAuction(ctx context.Context, auctionID string) error
	// RecordBid runs check and appends the returned bid as one atomic unit,
	// serialized with every other write to the same auction.
	RecordBid(ctx context.Context, auctionID string, check BidCheck) (model.Auction, error)
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB
type MemoryRepo struct {
	mu       sync.RWMutex
	auctions map[string]model.Auction // key: auctionID -> value: auction with bids, newest first
	locks    *KeyedMutex
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		auctions: make(map[string]model.Auction),
		locks:    NewKeyedMutex(),
	}
}

// CreateAuction stores a new auction
func (r *MemoryRepo) CreateAuction(_ context.Context, auction model.Auction) error {
	if auction.ID == "" {
		return fmt.Errorf("create auction: %w - empty id", biddingerrors.ErrInvalidAuction)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auction.ID]; ok {
		return fmt.Errorf("create auction %s: %w - duplicate id", auction.ID, biddingerrors.ErrInvalidAuction)
	}
	r.auctions[auction.ID] = auction.Clone()
	return nil
}

// GetAuction returns a copy of an auction
func (r *MemoryRepo) GetAuction(_ context.Context, auctionID string) (model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	return auction.Clone(), nil
}

// ListAuctions returns all auctions ordered by end date
func (r *MemoryRepo) ListAuctions(_ context.Context) ([]model.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	auctions := make([]model.Auction, 0, len(r.auctions))
	for _, a := range r.auctions {
		auctions = append(auctions, a.Clone())
	}
	sortAuctions(auctions)
	return auctions, nil
}

// UpdateAuction applies an administrative edit
func (r *MemoryRepo) UpdateAuction(_ context.Context, auctionID string, update model.AuctionUpdate) (model.Auction, error) {
	unlock := r.locks.Lock(auctionID)
	defer unlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	auction, ok := r.auctions[auctionID]
	if !ok {
		return model.Auction{}, fmt.Errorf("update auction %s: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	auction = auction.Clone()
	update.Apply(&auction)
	r.auctions[auctionID] = auction
	return auction.Clone(), nil
}

// DeleteAuction removes an auction and its bids
func (r *MemoryRepo) DeleteAuction(_ context.Context, auctionID string) error {
	unlock := r.locks.Lock(auctionID)
	defer unlock()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.auctions[auctionID]; !ok {
		return fmt.Errorf("delete auction %s: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	delete(r.auctions, auctionID)
	return nil
}

// RecordBid validates and appends a bid while holding the auction's lock
func (r *MemoryRepo) RecordBid(ctx context.Context, auctionID string, check BidCheck) (model.Auction, error) {
	unlock := r.locks.Lock(auctionID)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return model.Auction{}, fmt.Errorf("record bid for auction %s: %w", auctionID, err)
	}

	// writes to this auction hold the same key lock, so the snapshot stays current
	auction, err := r.GetAuction(ctx, auctionID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("record bid: %w", err)
	}

	bid, err := check(auction)
	if err != nil {
		return model.Auction{}, err
	}

	auction.Bids = append([]model.Bid{bid}, auction.Bids...)
	auction.CurrentBid = bid.Amount
	auction.BidCount++

	r.mu.Lock()
	r.auctions[auctionID] = auction
	r.mu.Unlock()

	return auction.Clone(), nil
}

// sortAuctions orders auctions by end date, then id
func sortAuctions(auctions []model.Auction) {
	sort.Slice(auctions, func(i, j int) bool {
		if !auctions[i].EndDate.Equal(auctions[j].EndDate) {
			return auctions[i].EndDate.Before(auctions[j].EndDate)
		}
		return auctions[i].ID < auctions[j].ID
	})
}
