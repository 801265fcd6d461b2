package events

import "time"

// Event types
const (
	ListingCreated = "listing.created"
	ListingUpdated = "listing.updated"
	ListingDeleted = "listing.deleted"

	CheckoutCompleted = "checkout.completed"
	BalanceUpdated    = "balance.updated"

	FavoriteAdded   = "favorite.added"
	FavoriteRemoved = "favorite.removed"

	UserRegistered = "user.registered"
)

// Stream names
const (
	ListingEventsStream  = "listing.events"
	CheckoutEventsStream = "checkout.events"
	UserEventsStream     = "user.events"
)

// Event is the envelope written to the Redis stream.
type Event struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

type ListingCreatedEvent struct {
	ListingID string `json:"listingId"`
	SellerID  string `json:"sellerId"`
	Rubro     string `json:"rubro"`
	Price     int64  `json:"price"`
}

type ListingUpdatedEvent struct {
	ListingID string `json:"listingId"`
	SellerID  string `json:"sellerId"`
}

type ListingDeletedEvent struct {
	ListingID string `json:"listingId"`
	SellerID  string `json:"sellerId"`
}

// CheckoutCompletedEvent is consumed by the notifier to tell the seller.
type CheckoutCompletedEvent struct {
	TransactionID  string `json:"transactionId"`
	ListingID      string `json:"listingId"`
	ListingTitle   string `json:"listingTitle"`
	BuyerID        string `json:"buyerId"`
	SellerID       string `json:"sellerId"`
	Amount         int64  `json:"amount"`
	ConversationID string `json:"conversationId"`
}

type BalanceUpdatedEvent struct {
	UserID     string `json:"userId"`
	NewBalance int64  `json:"newBalance"`
	Change     int64  `json:"change"`
}

type FavoriteToggledEvent struct {
	UserID    string `json:"userId"`
	ListingID string `json:"listingId"`
}

type UserRegisteredEvent struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}
