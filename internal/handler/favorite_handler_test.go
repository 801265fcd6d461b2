package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/cqrs"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	"github.com/gin-gonic/gin"
)

// ---- mock implementations ----

type mockFavoriteCommander struct {
	toggleFn func(cqrs.ToggleFavoriteCommand) (*models.FavoriteToggle, error)
}

func (m *mockFavoriteCommander) Toggle(cmd cqrs.ToggleFavoriteCommand) (*models.FavoriteToggle, error) {
	if m.toggleFn != nil {
		return m.toggleFn(cmd)
	}
	return nil, fmt.Errorf("not configured")
}

type mockFavoriteQuerier struct {
	listFn  func(cqrs.ListFavoritesQuery) ([]models.ListingView, error)
	isFavFn func(cqrs.GetFavoriteQuery) (bool, error)
}

func (m *mockFavoriteQuerier) ListFavorites(q cqrs.ListFavoritesQuery) ([]models.ListingView, error) {
	if m.listFn != nil {
		return m.listFn(q)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockFavoriteQuerier) IsFavorite(q cqrs.GetFavoriteQuery) (bool, error) {
	if m.isFavFn != nil {
		return m.isFavFn(q)
	}
	return false, fmt.Errorf("not configured")
}

// ---- helpers ----

func newFavoriteTestRouter(cmds FavoriteCommander, qrys FavoriteQuerier, authUserID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(fakeAuth(authUserID))
	h := NewFavoriteHandler(cmds, qrys)
	r.GET("/api/favoritos", h.ListFavorites)
	r.GET("/api/favoritos/:listingId", h.GetFavorite)
	r.POST("/api/favoritos/:listingId", h.Toggle)
	return r
}

// ---- tests ----

func TestToggleFavorite(t *testing.T) {
	tests := []struct {
		name           string
		toggleFn       func(cqrs.ToggleFavoriteCommand) (*models.FavoriteToggle, error)
		expectedStatus int
		expectFavorite bool
	}{
		{
			name: "success - added",
			toggleFn: func(cmd cqrs.ToggleFavoriteCommand) (*models.FavoriteToggle, error) {
				return &models.FavoriteToggle{ListingID: cmd.ListingID, Favorite: true}, nil
			},
			expectedStatus: http.StatusOK,
			expectFavorite: true,
		},
		{
			name: "success - removed",
			toggleFn: func(cmd cqrs.ToggleFavoriteCommand) (*models.FavoriteToggle, error) {
				return &models.FavoriteToggle{ListingID: cmd.ListingID, Favorite: false}, nil
			},
			expectedStatus: http.StatusOK,
			expectFavorite: false,
		},
		{
			name: "not found - unknown listing",
			toggleFn: func(cmd cqrs.ToggleFavoriteCommand) (*models.FavoriteToggle, error) {
				return nil, fmt.Errorf("listing not found")
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newFavoriteTestRouter(&mockFavoriteCommander{toggleFn: tt.toggleFn}, &mockFavoriteQuerier{}, "usr-001")

			req, _ := http.NewRequest(http.MethodPost, "/api/favoritos/lst-000001", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}
			var result models.FavoriteToggle
			if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if result.Favorite != tt.expectFavorite {
				t.Errorf("expected favorite=%v, got %v", tt.expectFavorite, result.Favorite)
			}
		})
	}
}

func TestGetFavorite(t *testing.T) {
	var captured cqrs.GetFavoriteQuery
	router := newFavoriteTestRouter(&mockFavoriteCommander{}, &mockFavoriteQuerier{
		isFavFn: func(q cqrs.GetFavoriteQuery) (bool, error) {
			captured = q
			return true, nil
		},
	}, "usr-001")

	req, _ := http.NewRequest(http.MethodGet, "/api/favoritos/lst-000001", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if captured.UserID != "usr-001" || captured.ListingID != "lst-000001" {
		t.Errorf("unexpected query: %+v", captured)
	}
	var result models.FavoriteToggle
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !result.Favorite || result.ListingID != "lst-000001" {
		t.Errorf("unexpected membership result: %+v", result)
	}
}

func TestListFavoritesEmptyIsNotNull(t *testing.T) {
	router := newFavoriteTestRouter(&mockFavoriteCommander{}, &mockFavoriteQuerier{
		listFn: func(q cqrs.ListFavoritesQuery) ([]models.ListingView, error) {
			return nil, nil
		},
	}, "usr-001")

	req, _ := http.NewRequest(http.MethodGet, "/api/favoritos", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if string(resp["listings"]) == "null" {
		t.Error("expected an empty array, got null")
	}
}
