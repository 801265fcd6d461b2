package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnonymousFavoritesAreLocal(t *testing.T) {
	api := New("http://unused.invalid", NewSession(nil))
	favs := NewFavorites(api)

	on, err := favs.Toggle(context.Background(), "lst-000001")
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, favs.Contains("lst-000001"))

	// Toggling again removes it.
	off, err := favs.Toggle(context.Background(), "lst-000001")
	require.NoError(t, err)
	assert.False(t, off)
	assert.False(t, favs.Contains("lst-000001"))
}

func TestAnonymousFavoritesListIsEmpty(t *testing.T) {
	api := New("http://unused.invalid", NewSession(nil))
	favs := NewFavorites(api)

	_, err := favs.Toggle(context.Background(), "lst-000001")
	require.NoError(t, err)

	listings, err := favs.List(context.Background())
	require.NoError(t, err)
	assert.Nil(t, listings)
}

func TestToggleLostResponseIsNotResent(t *testing.T) {
	toggles := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		toggles++
		conn, _, err := w.(http.Hijacker).Hijack()
		require.NoError(t, err)
		conn.Close()
	}))
	defer srv.Close()

	session := NewSession(nil)
	require.NoError(t, session.store.Save("test-token"))
	favs := NewFavorites(New(srv.URL, session))

	_, err := favs.Toggle(context.Background(), "lst-000001")
	require.Error(t, err)

	// A re-sent toggle would flip the state back, so the lost response
	// surfaces as an error instead.
	assert.Equal(t, 1, toggles)
}

func TestAuthenticatedFavoritesHitServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/api/favoritos/"):
			json.NewEncoder(w).Encode(models.FavoriteToggle{
				ListingID: strings.TrimPrefix(r.URL.Path, "/api/favoritos/"),
				Favorite:  true,
			})
		case r.Method == http.MethodGet && r.URL.Path == "/api/favoritos":
			json.NewEncoder(w).Encode(map[string]any{
				"listings": []models.ListingView{{ID: "lst-000001", Title: "Bici"}},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	session := NewSession(nil)
	require.NoError(t, session.store.Save("test-token"))
	favs := NewFavorites(New(srv.URL, session))

	on, err := favs.Toggle(context.Background(), "lst-000001")
	require.NoError(t, err)
	assert.True(t, on)

	listings, err := favs.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.True(t, favs.Contains("lst-000001"))
}
