package cqrs

// ---------- Market queries ----------

// MarketQuery carries only the filters the server evaluates: rubro, tipo,
// price bounds, geo radius and pagination. Free-text search and facet
// selections are refined client-side and never appear here.
type MarketQuery struct {
	Rubro     string
	Tipo      string
	PriceMin  int64
	PriceMax  int64
	ViewerLat *float64
	ViewerLng *float64
	RadiusKm  int
	Page      int
	Limit     int
}

// GetListingQuery fetches a single listing; viewer coordinates, when present,
// add the computed distance to the view.
type GetListingQuery struct {
	ListingID string
	ViewerLat *float64
	ViewerLng *float64
}

// ---------- User queries ----------

type GetProfileQuery struct {
	UserID string
}

type ListTransactionsQuery struct {
	UserID string
}

// ---------- Favorite queries ----------

type ListFavoritesQuery struct {
	UserID string
}

// GetFavoriteQuery checks whether one listing is favorited by the user.
type GetFavoriteQuery struct {
	UserID    string
	ListingID string
}

// ---------- Conversation queries ----------

type ListConversationsQuery struct {
	UserID string
}

type ListMessagesQuery struct {
	ConversationID   string
	RequestingUserID string
}

// ---------- Notification queries ----------

type ListNotificationsQuery struct {
	UserID string
}
