package perftests

import (
	bidding "casse-auctions/internal/biddingService"
	"casse-auctions/internal/models"
	"casse-auctions/internal/repository"
	"casse-auctions/internal/testutil"
	"context"
	"fmt"
	"testing"
	"time"
)

// backends builds a fresh repository per benchmark run
var backends = []struct {
	name string
	open func(b *testing.B) repository.AuctionDB
}{
	{"Memory", func(*testing.B) repository.AuctionDB { return repository.NewMemoryRepo() }},
	{"SQLite", func(b *testing.B) repository.AuctionDB { return repository.NewSQLiteRepo(testutil.NewTestDB(b)) }},
}

func bidder(n int) *models.Identity {
	return &models.Identity{
		ID:     fmt.Sprintf("user_%d", n),
		Name:   fmt.Sprintf("Bidder %d", n),
		Role:   models.RoleStaff,
		Status: models.StatusApproved,
	}
}

// seedAuctions creates n open auctions with ids auction_0..auction_n-1
func seedAuctions(b *testing.B, repo repository.AuctionDB, n int, startingPrice float64) {
	b.Helper()
	now := time.Now().UTC()
	for i := 0; i < n; i++ {
		err := repo.CreateAuction(context.Background(), models.Auction{
			ID:            auctionID(i),
			Vehicle:       models.Vehicle{Name: fmt.Sprintf("Vehicle %d", i), Images: []string{}},
			StartingPrice: startingPrice,
			CurrentBid:    startingPrice,
			Bids:          []models.Bid{},
			EndDate:       now.Add(24 * time.Hour),
			CreatedAt:     now,
		})
		if err != nil {
			b.Fatalf("failed to seed auction: %v", err)
		}
	}
}

func auctionID(i int) string {
	return fmt.Sprintf("auction_%d", i)
}

func newService(b *testing.B, open func(b *testing.B) repository.AuctionDB, auctions int) *bidding.BiddingService {
	repo := open(b)
	seedAuctions(b, repo, auctions, 50)
	return bidding.NewBiddingService(repo, nil)
}
