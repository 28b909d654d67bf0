package models

import "time"

// Role is the back-office role of a user
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleStaff Role = "Staff"
)

// Status is the approval status of a user account
type Status string

const (
	StatusApproved Status = "approved"
	StatusPending  Status = "pending"
)

// AuctionState is derived from the auction end date and the current time
type AuctionState string

const (
	AuctionActive     AuctionState = "active"
	AuctionTerminated AuctionState = "terminated"
)

// Identity is the authenticated caller as seen by the bidding core
type Identity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
	Status Status `json:"status"`
}

// IsApproved reports whether the identity may place bids
func (i Identity) IsApproved() bool {
	return i.Status == StatusApproved
}

// IsAdmin reports whether the identity may use the back-office
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin && i.Status == StatusApproved
}

// User is a registered account of the user directory
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Status       Status    `json:"status"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Identity returns the identity carried by a session of this user
func (u User) Identity() Identity {
	return Identity{ID: u.ID, Name: u.Name, Role: u.Role, Status: u.Status}
}

// Vehicle describes the car being auctioned
type Vehicle struct {
	Name        string   `json:"name"`
	Brand       string   `json:"brand"`
	Model       string   `json:"model"`
	Year        int      `json:"year"`
	Mileage     int      `json:"mileage"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
}

// Auction represents a vehicle listed for bidding
type Auction struct {
	ID string `json:"id"`
	Vehicle
	StartingPrice float64   `json:"startingPrice"`
	CurrentBid    float64   `json:"currentBid"`
	BidCount      int       `json:"bidCount"`
	Bids          []Bid     `json:"bids"` // newest first
	EndDate       time.Time `json:"endDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

// IsOpen reports whether the auction still accepts bids at now
func (a Auction) IsOpen(now time.Time) bool {
	return now.Before(a.EndDate)
}

// State returns the auction state at now
func (a Auction) State(now time.Time) AuctionState {
	if a.IsOpen(now) {
		return AuctionActive
	}
	return AuctionTerminated
}

// Clone returns a deep copy of the auction
func (a Auction) Clone() Auction {
	c := a
	if a.Images != nil {
		c.Images = make([]string, len(a.Images))
		copy(c.Images, a.Images)
	}
	if a.Bids != nil {
		c.Bids = make([]Bid, len(a.Bids))
		copy(c.Bids, a.Bids)
	}
	return c
}

// Bid represents an accepted offer on an auction
type Bid struct {
	ID         string    `json:"id"`
	AuctionID  string    `json:"auctionId"`
	UserID     string    `json:"userId"`
	BidderName string    `json:"bidderName"`
	Amount     float64   `json:"amount"`
	Timestamp  time.Time `json:"timestamp"`
}

// AuctionUpdate is a partial administrative edit of an auction.
// Nil fields are left untouched.
type AuctionUpdate struct {
	Name        *string
	Brand       *string
	Model       *string
	Year        *int
	Mileage     *int
	Description *string
	Images      *[]string
	EndDate     *time.Time
}

// Apply writes the non-nil fields of the update onto a
func (u AuctionUpdate) Apply(a *Auction) {
	if u.Name != nil {
		a.Name = *u.Name
	}
	if u.Brand != nil {
		a.Brand = *u.Brand
	}
	if u.Model != nil {
		a.Model = *u.Model
	}
	if u.Year != nil {
		a.Year = *u.Year
	}
	if u.Mileage != nil {
		a.Mileage = *u.Mileage
	}
	if u.Description != nil {
		a.Description = *u.Description
	}
	if u.Images != nil {
		a.Images = append([]string(nil), (*u.Images)...)
	}
	if u.EndDate != nil {
		a.EndDate = u.EndDate.UTC()
	}
}

// UserBid summarizes a user's participation in one auction
type UserBid struct {
	AuctionID    string       `json:"auctionId"`
	AuctionName  string       `json:"auctionName"`
	Images       []string     `json:"images"`
	MyHighestBid float64      `json:"myHighestBid"`
	CurrentBid   float64      `json:"currentBid"`
	BidCount     int          `json:"bidCount"`
	IsWinning    bool         `json:"isWinning"`
	EndDate      time.Time    `json:"endDate"`
	Status       AuctionState `json:"status"`
}
