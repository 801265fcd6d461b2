package models

import "time"

// ListingView is the read-optimised projection of a listing served by the
// market endpoints. DistanceKm is populated only when the viewer supplied
// coordinates and the listing has its own; it is never computed client-side.
type ListingView struct {
	ID          string            `json:"id"`
	SellerID    string            `json:"sellerId"`
	SellerName  string            `json:"sellerName"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Price       int64             `json:"price"`
	Rubro       Rubro             `json:"rubro"`
	Details     map[string]string `json:"details,omitempty"`
	Features    []string          `json:"features,omitempty"`
	Location    string            `json:"location"`
	Coords      *Coordinates      `json:"coords,omitempty"`
	Media       []Media           `json:"media,omitempty"`
	Status      ListingStatus     `json:"status"`
	DistanceKm  *float64          `json:"distanceKm,omitempty"`
	CreatedAt   time.Time         `json:"createdTimestamp"`
	UpdatedAt   time.Time         `json:"updatedTimestamp"`
}

// MarketPage is one page of the filtered catalog. Requesting a page past the
// end yields an empty Listings slice with the real Total, never an error.
type MarketPage struct {
	Listings []ListingView `json:"listings"`
	Page     int           `json:"page"`
	Limit    int           `json:"limit"`
	Total    int64         `json:"total"`
}

// ProfileView is the read projection of the authenticated user, including the
// spending envelope the checkout guard renders.
type ProfileView struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Location     string       `json:"location,omitempty"`
	Coords       *Coordinates `json:"coords,omitempty"`
	Balance      int64        `json:"balance"`
	CreditLimit  int64        `json:"creditLimit"`
	MaxSpendable int64        `json:"maxSpendable"`
	CreatedAt    time.Time    `json:"createdTimestamp"`
	UpdatedAt    time.Time    `json:"updatedTimestamp"`
}

// TransactionView is a transaction seen from one user's perspective.
// Direction is "purchase" when the user paid, "sale" when they were paid.
type TransactionView struct {
	ID           string    `json:"id"`
	ListingID    string    `json:"listingId"`
	ListingTitle string    `json:"listingTitle"`
	Counterparty string    `json:"counterparty"`
	Amount       int64     `json:"amount"`
	Direction    string    `json:"direction"`
	CreatedAt    time.Time `json:"createdTimestamp"`
}

// CheckoutResult is the payload returned by a successful checkout. The
// conversation id lets the caller jump straight into the thread with the seller.
type CheckoutResult struct {
	Transaction    *Transaction `json:"transaction"`
	ConversationID string       `json:"conversationId"`
}

// FavoriteToggle reports the membership state after a toggle.
type FavoriteToggle struct {
	ListingID string `json:"listingId"`
	Favorite  bool   `json:"favorite"`
}
