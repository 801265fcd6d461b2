package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/catalog"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marketServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, NewSession(nil))
}

func writePage(w http.ResponseWriter, listings ...models.ListingView) {
	json.NewEncoder(w).Encode(models.MarketPage{
		Listings: listings, Page: 1, Limit: 12, Total: int64(len(listings)),
	})
}

func TestApplyFetchesAndRefines(t *testing.T) {
	api := marketServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "goods", r.URL.Query().Get("rubro"))
		writePage(w,
			models.ListingView{ID: "lst-1", Title: "Bicicleta rodado 26"},
			models.ListingView{ID: "lst-2", Title: "Guitarra criolla"},
		)
	})

	b := NewMarketBrowser(api)
	page, err := b.Apply(context.Background(), func(f catalog.Filters) catalog.Filters {
		return f.WithRubro(models.RubroGoods).WithSearch("bici")
	})
	require.NoError(t, err)

	// The search term stayed local; the server returned both listings and the
	// browser kept only the match.
	require.Len(t, page.Listings, 1)
	assert.Equal(t, "lst-1", page.Listings[0].ID)
	assert.Same(t, page, b.Page())
}

func TestApplyDiscardsStaleResponse(t *testing.T) {
	goodsArrived := make(chan struct{})
	releaseGoods := make(chan struct{})

	api := marketServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("rubro") == "goods" {
			close(goodsArrived)
			<-releaseGoods
			writePage(w, models.ListingView{ID: "lst-goods", Title: "Bici"})
			return
		}
		writePage(w, models.ListingView{ID: "lst-food", Title: "Empanadas"})
	})

	b := NewMarketBrowser(api)

	staleErr := make(chan error, 1)
	go func() {
		_, err := b.Apply(context.Background(), func(f catalog.Filters) catalog.Filters {
			return f.WithRubro(models.RubroGoods)
		})
		staleErr <- err
	}()

	// Switch to food while the goods request is still in flight.
	<-goodsArrived
	page, err := b.Apply(context.Background(), func(f catalog.Filters) catalog.Filters {
		return f.WithRubro(models.RubroFood)
	})
	require.NoError(t, err)
	require.Len(t, page.Listings, 1)
	assert.Equal(t, "lst-food", page.Listings[0].ID)

	// The goods response lands afterwards and is dropped, not applied.
	close(releaseGoods)
	assert.ErrorIs(t, <-staleErr, ErrStaleResponse)
	assert.Equal(t, "lst-food", b.Page().Listings[0].ID)
}

func TestApplySurfacesAPIError(t *testing.T) {
	api := marketServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "Failed to list market"})
	})

	b := NewMarketBrowser(api)
	_, err := b.Apply(context.Background(), func(f catalog.Filters) catalog.Filters { return f })

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Failed to list market", apiErr.Message)
	assert.Nil(t, b.Page())
}

func TestMarketFetchRetriesLostResponse(t *testing.T) {
	calls := 0
	api := marketServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			conn, _, err := w.(http.Hijacker).Hijack()
			require.NoError(t, err)
			conn.Close()
			return
		}
		writePage(w, models.ListingView{ID: "lst-1", Title: "Bici"})
	})

	// Reads are safe to repeat; the dropped first response is retried once.
	b := NewMarketBrowser(api)
	page, err := b.Apply(context.Background(), func(f catalog.Filters) catalog.Filters { return f })
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.Len(t, page.Listings, 1)
}

func TestRefreshKeepsFilters(t *testing.T) {
	calls := 0
	api := marketServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "services", r.URL.Query().Get("rubro"))
		writePage(w)
	})

	b := NewMarketBrowser(api)
	_, err := b.Apply(context.Background(), func(f catalog.Filters) catalog.Filters {
		return f.WithRubro(models.RubroServices)
	})
	require.NoError(t, err)

	_, err = b.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, models.RubroServices, b.Filters().Rubro)
}
