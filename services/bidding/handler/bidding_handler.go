package handler

import (
	"context"
	"net/http"

	"casse-auctions/internal/biddingerrors"
	bidding "casse-auctions/internal/biddingService"
	model "casse-auctions/internal/models"
	"casse-auctions/services/helpers"
	"casse-auctions/utils"

	"github.com/gin-gonic/gin"
)

//go:generate mockgen -source=bidding_handler.go -destination=mock_bidding_handler.go -package=handler

type BiddingServiceInterface interface {
	PlaceBid(ctx context.Context, auctionID string, amount float64, caller *model.Identity) (model.Auction, error)
	GetAuction(ctx context.Context, auctionID string) (model.Auction, error)
	ListAuctions(ctx context.Context) ([]model.Auction, error)
	CreateAuction(ctx context.Context, input bidding.NewAuction) (model.Auction, error)
	UpdateAuction(ctx context.Context, auctionID string, update model.AuctionUpdate) (model.Auction, error)
	DeleteAuction(ctx context.Context, auctionID string) error
	BidsForUser(ctx context.Context, userID string) ([]model.UserBid, error)
}

type BiddingHandler struct {
	service BiddingServiceInterface
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service}
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	caller := helpers.CurrentIdentity(c)
	if caller == nil {
		helpers.RespondError(c, "PlaceBidHandler", biddingerrors.ErrUnauthorized, map[string]any{"auction_id": auctionID})
		return
	}

	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	amount := *req.Amount
	fields := map[string]any{"auction_id": auctionID, "amount": amount, "user_id": caller.ID}

	auction, err := h.service.PlaceBid(c.Request.Context(), auctionID, amount, caller)
	if err != nil {
		helpers.RespondError(c, "PlaceBidHandler", err, fields)
		return
	}

	utils.JSONResponse(c, http.StatusOK, auction, "bid placed successfully")
	fields["bid_count"] = auction.BidCount
	helpers.LogSuccess("PlaceBidHandler", "bid placed successfully", fields)
}

// ListAuctionsHandler handles GET /auctions
func (h *BiddingHandler) ListAuctionsHandler(c *gin.Context) {
	auctions, err := h.service.ListAuctions(c.Request.Context())
	if err != nil {
		helpers.RespondError(c, "ListAuctionsHandler", err, nil)
		return
	}

	if auctions == nil {
		auctions = []model.Auction{}
	}

	utils.JSONResponse(c, http.StatusOK, auctions, "auctions retrieved successfully")
	helpers.LogSuccess("ListAuctionsHandler", "auctions retrieved successfully", map[string]any{
		"count": len(auctions),
	})
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *BiddingHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	auction, err := h.service.GetAuction(c.Request.Context(), auctionID)
	if err != nil {
		helpers.RespondError(c, "GetAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, auction, "auction retrieved successfully")
}

// CreateAuctionHandler handles POST /auctions (admin)
func (h *BiddingHandler) CreateAuctionHandler(c *gin.Context) {
	var req helpers.CreateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "CreateAuctionHandler", err)
		return
	}

	auction, err := h.service.CreateAuction(c.Request.Context(), bidding.NewAuction{
		Vehicle:       req.Vehicle(),
		StartingPrice: req.StartingPrice,
		EndDate:       req.EndDate,
	})
	if err != nil {
		helpers.RespondError(c, "CreateAuctionHandler", err, map[string]any{"name": req.Name})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, auction, "auction created successfully")
	helpers.LogSuccess("CreateAuctionHandler", "auction created successfully", map[string]any{
		"auction_id":     auction.ID,
		"starting_price": auction.StartingPrice,
		"end_date":       auction.EndDate,
	})
}

// UpdateAuctionHandler handles PUT /auctions/:auction_id (admin)
func (h *BiddingHandler) UpdateAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")

	var req helpers.UpdateAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "UpdateAuctionHandler", err)
		return
	}

	auction, err := h.service.UpdateAuction(c.Request.Context(), auctionID, req.Update())
	if err != nil {
		helpers.RespondError(c, "UpdateAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, auction, "auction updated successfully")
	helpers.LogSuccess("UpdateAuctionHandler", "auction updated successfully", map[string]any{"auction_id": auctionID})
}

// DeleteAuctionHandler handles DELETE /auctions/:auction_id (admin)
func (h *BiddingHandler) DeleteAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	if err := h.service.DeleteAuction(c.Request.Context(), auctionID); err != nil {
		helpers.RespondError(c, "DeleteAuctionHandler", err, map[string]any{"auction_id": auctionID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"success": true}, "auction deleted successfully")
	helpers.LogSuccess("DeleteAuctionHandler", "auction deleted successfully", map[string]any{"auction_id": auctionID})
}

// MyBidsHandler handles GET /auth/me/bids
func (h *BiddingHandler) MyBidsHandler(c *gin.Context) {
	caller := helpers.CurrentIdentity(c)
	userID := ""
	if caller != nil {
		userID = caller.ID
	}

	bids, err := h.service.BidsForUser(c.Request.Context(), userID)
	if err != nil {
		helpers.RespondError(c, "MyBidsHandler", err, map[string]any{"user_id": userID})
		return
	}

	if bids == nil {
		bids = []model.UserBid{}
	}

	utils.JSONResponse(c, http.StatusOK, bids, "bids retrieved successfully")
	helpers.LogSuccess("MyBidsHandler", "bids retrieved successfully", map[string]any{
		"user_id": userID,
		"count":   len(bids),
	})
}
