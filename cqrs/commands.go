package cqrs

import (
	"io"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
)

type RegisterCommand struct {
	Name     string
	Email    string
	Password string
	Location string
}

type LoginCommand struct {
	Email    string
	Password string
}

type UpdateProfileCommand struct {
	UserID   string
	Name     string
	Location string
	Coords   *models.Coordinates
}

type CreateListingCommand struct {
	SellerID    string
	Title       string
	Description string
	Price       int64
	Rubro       models.Rubro
	Details     map[string]string
	Features    []string
	Location    string
	Coords      *models.Coordinates
}

type UpdateListingCommand struct {
	ListingID        string
	RequestingUserID string
	Title            string
	Description      string
	Price            int64
	Details          map[string]string
	Features         []string
	Status           models.ListingStatus
}

type DeleteListingCommand struct {
	ListingID        string
	RequestingUserID string
}

// AttachMediaCommand uploads one media object and appends it to the listing.
type AttachMediaCommand struct {
	ListingID        string
	RequestingUserID string
	Filename         string
	ContentType      string
	Size             int64
	Body             io.Reader
}

// CheckoutCommand settles the purchase of a listing by the buyer.
type CheckoutCommand struct {
	ListingID string
	BuyerID   string
}

type ToggleFavoriteCommand struct {
	UserID    string
	ListingID string
}

type PostMessageCommand struct {
	ConversationID string
	SenderID       string
	Body           string
}
