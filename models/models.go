package models

import "time"

// Rubro is the vertical a listing belongs to. "todos" is the unselected state
// used by the market filters, never stored on a listing.
type Rubro string

const (
	RubroAll         Rubro = "todos"
	RubroGoods       Rubro = "goods"
	RubroServices    Rubro = "services"
	RubroFood        Rubro = "food"
	RubroExperiences Rubro = "experiences"
)

// Rubros lists every storable rubro.
var Rubros = []Rubro{RubroGoods, RubroServices, RubroFood, RubroExperiences}

func (r Rubro) Valid() bool {
	switch r {
	case RubroGoods, RubroServices, RubroFood, RubroExperiences:
		return true
	}
	return false
}

// Tipo groups rubros into the two top-level market tabs.
type Tipo string

const (
	TipoAll      Tipo = "todos"
	TipoGoods    Tipo = "goods"
	TipoServices Tipo = "services"
)

func (t Tipo) Valid() bool {
	return t == TipoAll || t == TipoGoods || t == TipoServices
}

type MediaKind string

const (
	MediaImage MediaKind = "image"
	MediaVideo MediaKind = "video"
)

type Media struct {
	URL  string    `json:"url"`
	Kind MediaKind `json:"kind"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type ListingStatus string

const (
	ListingActive ListingStatus = "active"
	ListingPaused ListingStatus = "paused"
)

// Listing is the write model for a marketplace publication. Price is an
// integer amount of IX, the platform credit unit.
type Listing struct {
	ID          string            `json:"id"`
	SellerID    string            `json:"sellerId"`
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
	CreatedAt   time.Time         `json:"createdTimestamp"`
	UpdatedAt   time.Time         `json:"updatedTimestamp"`
}

// User is the write model for an account. Balance may go negative down to
// -CreditLimit; both are integer IX amounts.
type User struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Location     string       `json:"location,omitempty"`
	Coords       *Coordinates `json:"coords,omitempty"`
	Balance      int64        `json:"balance"`
	CreditLimit  int64        `json:"creditLimit"`
	CreatedAt    time.Time    `json:"createdTimestamp"`
	UpdatedAt    time.Time    `json:"updatedTimestamp"`
}

// Transaction records one settled checkout: Amount IX moved from buyer to seller.
type Transaction struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listingId"`
	BuyerID   string    `json:"buyerId"`
	SellerID  string    `json:"sellerId"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"createdTimestamp"`
}

// Conversation links a buyer and a seller around one listing. It is created
// (or reused) when a checkout completes.
type Conversation struct {
	ID        string    `json:"id"`
	ListingID string    `json:"listingId"`
	BuyerID   string    `json:"buyerId"`
	SellerID  string    `json:"sellerId"`
	CreatedAt time.Time `json:"createdTimestamp"`
}

type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversationId"`
	SenderID       string    `json:"senderId"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"createdTimestamp"`
}

type Favorite struct {
	UserID    string    `json:"userId"`
	ListingID string    `json:"listingId"`
	CreatedAt time.Time `json:"createdTimestamp"`
}

type Notification struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Kind          string    `json:"kind"`
	TransactionID string    `json:"transactionId,omitempty"`
	ListingID     string    `json:"listingId,omitempty"`
	Body          string    `json:"body"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"createdTimestamp"`
}
