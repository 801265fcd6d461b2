package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/catalog"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/geo"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
)

// ErrStaleResponse is returned when a market response lands after the filters
// have already moved on. The caller drops it; the newest request wins.
var ErrStaleResponse = errors.New("response is for outdated filters")

// MarketBrowser holds the current filter state and the last landed page.
// Filter mutations re-fetch immediately; responses are tagged with the filter
// key they were requested under and discarded if the key no longer matches.
type MarketBrowser struct {
	api *Client

	mu        sync.Mutex
	filters   catalog.Filters
	activeKey string
	page      *models.MarketPage
}

func NewMarketBrowser(api *Client) *MarketBrowser {
	return &MarketBrowser{api: api, filters: catalog.DefaultFilters()}
}

// Filters returns the current filter state.
func (b *MarketBrowser) Filters() catalog.Filters {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filters
}

// Page returns the last landed page, refined. Nil until the first fetch lands.
func (b *MarketBrowser) Page() *models.MarketPage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.page
}

// Apply swaps in the filter state produced by mutate and fetches the matching
// page. When several Apply calls race, only the one whose filters are still
// current when its response lands updates the page; the rest get
// ErrStaleResponse.
func (b *MarketBrowser) Apply(ctx context.Context, mutate func(catalog.Filters) catalog.Filters) (*models.MarketPage, error) {
	b.mu.Lock()
	b.filters = mutate(b.filters)
	f := b.filters
	key := f.Key()
	b.activeKey = key
	b.mu.Unlock()

	return b.fetch(ctx, f, key)
}

// Refresh re-fetches the current filters without changing them.
func (b *MarketBrowser) Refresh(ctx context.Context) (*models.MarketPage, error) {
	b.mu.Lock()
	f := b.filters
	key := f.Key()
	b.activeKey = key
	b.mu.Unlock()

	return b.fetch(ctx, f, key)
}

func (b *MarketBrowser) fetch(ctx context.Context, f catalog.Filters, key string) (*models.MarketPage, error) {
	var page models.MarketPage
	if err := b.api.get(ctx, "/api/market", f.Params(), &page); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.activeKey != key {
		return nil, ErrStaleResponse
	}

	// The server never sees search terms or facet selections; they are
	// applied here over the landed page.
	page.Listings = catalog.Refine(page.Listings, f)
	b.page = &page
	return &page, nil
}

// UseLocation resolves the viewer's position and applies it to the filters so
// subsequent pages carry distances and respect the radius.
func (b *MarketBrowser) UseLocation(ctx context.Context, provider geo.Provider, wait time.Duration) (*models.MarketPage, error) {
	coords, err := geo.Lookup(ctx, provider, wait)
	if err != nil {
		return nil, err
	}
	return b.Apply(ctx, func(f catalog.Filters) catalog.Filters {
		return f.WithCoords(coords)
	})
}

// ClearLocation drops the viewer coordinates; the radius filter deactivates.
func (b *MarketBrowser) ClearLocation(ctx context.Context) (*models.MarketPage, error) {
	return b.Apply(ctx, func(f catalog.Filters) catalog.Filters {
		return f.WithCoords(nil)
	})
}

// Listing fetches one listing's view, passing viewer coordinates when known.
func (b *MarketBrowser) Listing(ctx context.Context, listingID string) (*models.ListingView, error) {
	b.mu.Lock()
	f := b.filters
	b.mu.Unlock()

	query := f.Params()
	query.Del("page")
	query.Del("limit")
	var view models.ListingView
	if err := b.api.get(ctx, "/api/market/"+listingID, query, &view); err != nil {
		return nil, err
	}
	return &view, nil
}
