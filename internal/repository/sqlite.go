package repository

import (
	"casse-auctions/internal/biddingerrors"
	"casse-auctions/internal/database/sqlc"
	model "casse-auctions/internal/models"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// SQLiteRepo implements AuctionDB on the relational store.
// Writes to one auction are serialized by a per-auction lock and run inside a
// single transaction, so a bid check never reads a stale current bid.
// Reads also run in a transaction so an auction row and its bids come from
// the same snapshot.
type SQLiteRepo struct {
	db      *sql.DB
	queries *sqlc.Queries
	locks   *KeyedMutex
}

// NewSQLiteRepo wraps a migrated database connection
func NewSQLiteRepo(db *sql.DB) *SQLiteRepo {
	return &SQLiteRepo{
		db:      db,
		queries: sqlc.New(db),
		locks:   NewKeyedMutex(),
	}
}

// CreateAuction inserts a new auction row
func (r *SQLiteRepo) CreateAuction(ctx context.Context, auction model.Auction) error {
	if auction.ID == "" {
		return fmt.Errorf("create auction: %w - empty id", biddingerrors.ErrInvalidAuction)
	}

	images, err := encodeImages(auction.Images)
	if err != nil {
		return fmt.Errorf("create auction %s: %w", auction.ID, err)
	}

	err = r.queries.InsertAuction(ctx, sqlc.InsertAuctionParams{
		ID:            auction.ID,
		Name:          auction.Name,
		Brand:         auction.Brand,
		Model:         auction.Model,
		Year:          int64(auction.Year),
		Mileage:       int64(auction.Mileage),
		Description:   auction.Description,
		Images:        images,
		StartingPrice: auction.StartingPrice,
		CurrentBid:    auction.CurrentBid,
		BidCount:      int64(auction.BidCount),
		EndDate:       auction.EndDate.UTC(),
		CreatedAt:     auction.CreatedAt.UTC(),
	})
	if err != nil {
		return fmt.Errorf("create auction %s: %w", auction.ID, err)
	}
	return nil
}

// GetAuction returns an auction with its bids, newest first
func (r *SQLiteRepo) GetAuction(ctx context.Context, auctionID string) (model.Auction, error) {
	var auction model.Auction
	err := r.withTx(ctx, func(q *sqlc.Queries) error {
		var err error
		auction, err = loadAuction(ctx, q, auctionID)
		return err
	})
	if err != nil {
		return model.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, err)
	}
	return auction, nil
}

// ListAuctions returns all auctions ordered by end date
func (r *SQLiteRepo) ListAuctions(ctx context.Context) ([]model.Auction, error) {
	auctions := []model.Auction{}
	err := r.withTx(ctx, func(q *sqlc.Queries) error {
		rows, err := q.ListAuctions(ctx)
		if err != nil {
			return err
		}

		index := make(map[string]int, len(rows))
		for _, row := range rows {
			a, err := toAuction(row)
			if err != nil {
				return err
			}
			index[a.ID] = len(auctions)
			auctions = append(auctions, a)
		}

		bids, err := q.ListBids(ctx)
		if err != nil {
			return fmt.Errorf("bids: %w", err)
		}
		for _, b := range bids {
			if i, ok := index[b.AuctionID]; ok {
				auctions[i].Bids = append(auctions[i].Bids, toBid(b))
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list auctions: %w", err)
	}
	return auctions, nil
}

// UpdateAuction applies an administrative edit inside a transaction
func (r *SQLiteRepo) UpdateAuction(ctx context.Context, auctionID string, update model.AuctionUpdate) (model.Auction, error) {
	unlock := r.locks.Lock(auctionID)
	defer unlock()

	var updated model.Auction
	err := r.withTx(ctx, func(q *sqlc.Queries) error {
		auction, err := loadAuction(ctx, q, auctionID)
		if err != nil {
			return err
		}
		update.Apply(&auction)

		images, err := encodeImages(auction.Images)
		if err != nil {
			return err
		}

		err = q.UpdateAuctionDetails(ctx, sqlc.UpdateAuctionDetailsParams{
			Name:        auction.Name,
			Brand:       auction.Brand,
			Model:       auction.Model,
			Year:        int64(auction.Year),
			Mileage:     int64(auction.Mileage),
			Description: auction.Description,
			Images:      images,
			EndDate:     auction.EndDate.UTC(),
			ID:          auctionID,
		})
		if err != nil {
			return err
		}
		updated = auction
		return nil
	})
	if err != nil {
		return model.Auction{}, fmt.Errorf("update auction %s: %w", auctionID, err)
	}
	return updated, nil
}

// DeleteAuction removes an auction; its bids are removed by the foreign key cascade
func (r *SQLiteRepo) DeleteAuction(ctx context.Context, auctionID string) error {
	unlock := r.locks.Lock(auctionID)
	defer unlock()

	n, err := r.queries.DeleteAuction(ctx, auctionID)
	if err != nil {
		return fmt.Errorf("delete auction %s: %w", auctionID, err)
	}
	if n == 0 {
		return fmt.Errorf("delete auction %s: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	return nil
}

// RecordBid reads the auction, runs check and writes the bid in one transaction
func (r *SQLiteRepo) RecordBid(ctx context.Context, auctionID string, check BidCheck) (model.Auction, error) {
	unlock := r.locks.Lock(auctionID)
	defer unlock()

	var updated model.Auction
	var checkErr error
	err := r.withTx(ctx, func(q *sqlc.Queries) error {
		auction, err := loadAuction(ctx, q, auctionID)
		if err != nil {
			return err
		}

		bid, err := check(auction)
		if err != nil {
			checkErr = err
			return err
		}

		err = q.InsertBid(ctx, sqlc.InsertBidParams{
			ID:         bid.ID,
			AuctionID:  auctionID,
			UserID:     bid.UserID,
			BidderName: bid.BidderName,
			Amount:     bid.Amount,
			CreatedAt:  bid.Timestamp.UTC(),
		})
		if err != nil {
			return fmt.Errorf("insert bid: %w", err)
		}

		err = q.RecordAuctionBid(ctx, sqlc.RecordAuctionBidParams{CurrentBid: bid.Amount, ID: auctionID})
		if err != nil {
			return fmt.Errorf("update current bid: %w", err)
		}

		bid.AuctionID = auctionID
		auction.Bids = append([]model.Bid{bid}, auction.Bids...)
		auction.CurrentBid = bid.Amount
		auction.BidCount++
		updated = auction
		return nil
	})
	if checkErr != nil {
		return model.Auction{}, checkErr
	}
	if err != nil {
		return model.Auction{}, fmt.Errorf("record bid for auction %s: %w", auctionID, err)
	}
	return updated, nil
}

// withTx runs fn in a transaction, committing on success and rolling back on error
func (r *SQLiteRepo) withTx(ctx context.Context, fn func(q *sqlc.Queries) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(r.queries.WithTx(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// loadAuction reads one auction row and its bids through q
func loadAuction(ctx context.Context, q *sqlc.Queries, auctionID string) (model.Auction, error) {
	row, err := q.GetAuction(ctx, auctionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Auction{}, biddingerrors.ErrAuctionNotFound
		}
		return model.Auction{}, err
	}
	auction, err := toAuction(row)
	if err != nil {
		return model.Auction{}, err
	}

	bids, err := q.ListBidsForAuction(ctx, auctionID)
	if err != nil {
		return model.Auction{}, fmt.Errorf("load bids: %w", err)
	}
	for _, b := range bids {
		auction.Bids = append(auction.Bids, toBid(b))
	}
	return auction, nil
}

func toAuction(row sqlc.Auction) (model.Auction, error) {
	var images []string
	if err := json.Unmarshal([]byte(row.Images), &images); err != nil {
		return model.Auction{}, fmt.Errorf("decode images of auction %s: %w", row.ID, err)
	}
	if images == nil {
		images = []string{}
	}

	return model.Auction{
		ID: row.ID,
		Vehicle: model.Vehicle{
			Name:        row.Name,
			Brand:       row.Brand,
			Model:       row.Model,
			Year:        int(row.Year),
			Mileage:     int(row.Mileage),
			Description: row.Description,
			Images:      images,
		},
		StartingPrice: row.StartingPrice,
		CurrentBid:    row.CurrentBid,
		BidCount:      int(row.BidCount),
		Bids:          []model.Bid{},
		EndDate:       row.EndDate.UTC(),
		CreatedAt:     row.CreatedAt.UTC(),
	}, nil
}

func toBid(row sqlc.Bid) model.Bid {
	return model.Bid{
		ID:         row.ID,
		AuctionID:  row.AuctionID,
		UserID:     row.UserID,
		BidderName: row.BidderName,
		Amount:     row.Amount,
		Timestamp:  row.CreatedAt.UTC(),
	}
}

func encodeImages(images []string) (string, error) {
	if images == nil {
		images = []string{}
	}
	data, err := json.Marshal(images)
	if err != nil {
		return "", fmt.Errorf("encode images: %w", err)
	}
	return string(data), nil
}
