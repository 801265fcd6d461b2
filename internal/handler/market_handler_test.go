package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/cqrs"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/catalog"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	"github.com/gin-gonic/gin"
)

// ---- mock implementations ----

type mockMarketQuerier struct {
	listFn func(cqrs.MarketQuery) (*models.MarketPage, error)
	getFn  func(cqrs.GetListingQuery) (*models.ListingView, error)
}

func (m *mockMarketQuerier) ListMarket(q cqrs.MarketQuery) (*models.MarketPage, error) {
	if m.listFn != nil {
		return m.listFn(q)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockMarketQuerier) GetListing(q cqrs.GetListingQuery) (*models.ListingView, error) {
	if m.getFn != nil {
		return m.getFn(q)
	}
	return nil, fmt.Errorf("not configured")
}
func (m *mockMarketQuerier) FacetSchema(r models.Rubro) []catalog.AttributeSchema {
	return catalog.SchemaFor(r)
}

// ---- helpers ----

func newMarketTestRouter(qrys MarketQuerier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewMarketHandler(qrys)
	r.GET("/api/market", h.ListMarket)
	r.GET("/api/market/schema/:rubro", h.GetSchema)
	r.GET("/api/market/:listingId", h.GetListing)
	return r
}

var aTestMarketPage = &models.MarketPage{
	Listings: []models.ListingView{{ID: "lst-000001", Title: "Bicicleta rodado 26", Price: 4500, Rubro: models.RubroGoods}},
	Page:     1, Limit: 12, Total: 1,
}

// ---- tests ----

func TestListMarketDefaults(t *testing.T) {
	var captured cqrs.MarketQuery
	router := newMarketTestRouter(&mockMarketQuerier{
		listFn: func(q cqrs.MarketQuery) (*models.MarketPage, error) {
			captured = q
			return aTestMarketPage, nil
		},
	})

	req, _ := http.NewRequest(http.MethodGet, "/api/market", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if captured.Rubro != "todos" || captured.Tipo != "todos" {
		t.Errorf("expected todos/todos defaults, got %q/%q", captured.Rubro, captured.Tipo)
	}
	if captured.PriceMin != 0 || captured.PriceMax != 500000 {
		t.Errorf("expected default price range, got %d-%d", captured.PriceMin, captured.PriceMax)
	}
	if captured.Page != 1 || captured.Limit != 12 {
		t.Errorf("expected page 1 limit 12, got %d/%d", captured.Page, captured.Limit)
	}
	if captured.ViewerLat != nil || captured.ViewerLng != nil {
		t.Error("expected no viewer coordinates by default")
	}
}

func TestListMarketParsesParams(t *testing.T) {
	var captured cqrs.MarketQuery
	router := newMarketTestRouter(&mockMarketQuerier{
		listFn: func(q cqrs.MarketQuery) (*models.MarketPage, error) {
			captured = q
			return aTestMarketPage, nil
		},
	})

	url := "/api/market?rubro=goods&tipo=goods&precioMin=100&precioMax=9000&userLat=-34.6&userLng=-58.4&distanciaMax=10&page=2&limit=24"
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if captured.Rubro != "goods" || captured.Tipo != "goods" {
		t.Errorf("unexpected rubro/tipo: %q/%q", captured.Rubro, captured.Tipo)
	}
	if captured.PriceMin != 100 || captured.PriceMax != 9000 {
		t.Errorf("unexpected price range: %d-%d", captured.PriceMin, captured.PriceMax)
	}
	if captured.RadiusKm != 10 || captured.Page != 2 || captured.Limit != 24 {
		t.Errorf("unexpected radius/page/limit: %d/%d/%d", captured.RadiusKm, captured.Page, captured.Limit)
	}
	if captured.ViewerLat == nil || *captured.ViewerLat != -34.6 {
		t.Error("expected viewer latitude to be parsed")
	}
}

func TestListMarketIgnoresLoneCoordinate(t *testing.T) {
	var captured cqrs.MarketQuery
	router := newMarketTestRouter(&mockMarketQuerier{
		listFn: func(q cqrs.MarketQuery) (*models.MarketPage, error) {
			captured = q
			return aTestMarketPage, nil
		},
	})

	req, _ := http.NewRequest(http.MethodGet, "/api/market?userLat=-34.6", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if captured.ViewerLat != nil || captured.ViewerLng != nil {
		t.Error("a lone coordinate must not activate geo filtering")
	}
}

func TestListMarketRejectsInvalidRubro(t *testing.T) {
	router := newMarketTestRouter(&mockMarketQuerier{})

	req, _ := http.NewRequest(http.MethodGet, "/api/market?rubro=vehicles", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestGetListing(t *testing.T) {
	tests := []struct {
		name           string
		getFn          func(cqrs.GetListingQuery) (*models.ListingView, error)
		expectedStatus int
	}{
		{
			name: "success",
			getFn: func(q cqrs.GetListingQuery) (*models.ListingView, error) {
				return &aTestMarketPage.Listings[0], nil
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "not found",
			getFn: func(q cqrs.GetListingQuery) (*models.ListingView, error) {
				return nil, fmt.Errorf("listing not found")
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newMarketTestRouter(&mockMarketQuerier{getFn: tt.getFn})

			req, _ := http.NewRequest(http.MethodGet, "/api/market/lst-000001", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestGetSchema(t *testing.T) {
	router := newMarketTestRouter(&mockMarketQuerier{})

	req, _ := http.NewRequest(http.MethodGet, "/api/market/schema/goods", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Rubro      string                    `json:"rubro"`
		Attributes []catalog.AttributeSchema `json:"attributes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Attributes) != 2 {
		t.Errorf("expected 2 attributes for goods, got %d", len(resp.Attributes))
	}

	req, _ = http.NewRequest(http.MethodGet, "/api/market/schema/vehicles", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown rubro, got %d", w.Code)
	}
}
