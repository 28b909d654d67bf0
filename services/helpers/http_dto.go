package helpers

import (
	"casse-auctions/internal/models"
	"time"
)

// Request/Response DTOs
// PlaceBidRequest only requires the amount to be present; its value is judged
// by the bidding rules against the auction's current bid.
type PlaceBidRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
}

type CreateAuctionRequest struct {
	Name          string    `json:"name" binding:"required"`
	Brand         string    `json:"brand"`
	Model         string    `json:"model"`
	Year          int       `json:"year" binding:"gte=0"`
	Mileage       int       `json:"mileage" binding:"gte=0"`
	Description   string    `json:"description"`
	Images        []string  `json:"images"`
	StartingPrice float64   `json:"startingPrice" binding:"required,gt=0"`
	EndDate       time.Time `json:"endDate" binding:"required"`
}

// Vehicle returns the vehicle descriptor of the request
func (r CreateAuctionRequest) Vehicle() models.Vehicle {
	return models.Vehicle{
		Name:        r.Name,
		Brand:       r.Brand,
		Model:       r.Model,
		Year:        r.Year,
		Mileage:     r.Mileage,
		Description: r.Description,
		Images:      r.Images,
	}
}

// UpdateAuctionRequest is a partial update; absent fields are left unchanged.
// startingPrice, currentBid, bidCount and bids cannot be edited.
type UpdateAuctionRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1"`
	Brand       *string    `json:"brand"`
	Model       *string    `json:"model"`
	Year        *int       `json:"year" binding:"omitempty,gte=0"`
	Mileage     *int       `json:"mileage" binding:"omitempty,gte=0"`
	Description *string    `json:"description"`
	Images      *[]string  `json:"images"`
	EndDate     *time.Time `json:"endDate"`
}

// Update converts the request to a model update
func (r UpdateAuctionRequest) Update() models.AuctionUpdate {
	return models.AuctionUpdate{
		Name:        r.Name,
		Brand:       r.Brand,
		Model:       r.Model,
		Year:        r.Year,
		Mileage:     r.Mileage,
		Description: r.Description,
		Images:      r.Images,
		EndDate:     r.EndDate,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SetStatusRequest struct {
	Status models.Status `json:"status" binding:"required,oneof=approved pending"`
}

type SetRoleRequest struct {
	Role models.Role `json:"role" binding:"required,oneof=Admin Staff"`
}
