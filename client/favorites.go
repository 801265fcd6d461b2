package client

import (
	"context"
	"sync"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
)

// Favorites tracks hearted listings. Logged-in users toggle against the
// server; anonymous users keep an in-memory set that is deliberately lost when
// the session ends, never synced or merged on login.
type Favorites struct {
	api *Client

	mu    sync.Mutex
	local map[string]bool
}

func NewFavorites(api *Client) *Favorites {
	return &Favorites{api: api, local: make(map[string]bool)}
}

// Toggle flips the favorite state of a listing and reports the new state.
func (f *Favorites) Toggle(ctx context.Context, listingID string) (bool, error) {
	if !f.api.session.Authenticated() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.local[listingID] {
			delete(f.local, listingID)
			return false, nil
		}
		f.local[listingID] = true
		return true, nil
	}

	var result models.FavoriteToggle
	if err := f.api.post(ctx, "/api/favoritos/"+listingID, nil, &result); err != nil {
		return false, err
	}
	return result.Favorite, nil
}

// Contains reports the locally known favorite state. For anonymous sessions
// this is authoritative; for logged-in users it reflects the last toggles and
// list fetches.
func (f *Favorites) Contains(listingID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.local[listingID]
}

// List fetches the server-side favorites of a logged-in user and refreshes
// the local set. Anonymous sessions get nothing; their set has no listing
// views behind it.
func (f *Favorites) List(ctx context.Context) ([]models.ListingView, error) {
	if !f.api.session.Authenticated() {
		return nil, nil
	}

	var resp struct {
		Listings []models.ListingView `json:"listings"`
	}
	if err := f.api.get(ctx, "/api/favoritos", nil, &resp); err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.local = make(map[string]bool, len(resp.Listings))
	for _, l := range resp.Listings {
		f.local[l.ID] = true
	}
	f.mu.Unlock()
	return resp.Listings, nil
}
