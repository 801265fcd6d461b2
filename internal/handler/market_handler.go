package handler

import (
	"net/http"
	"strconv"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/cqrs"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/catalog"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/middleware"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	"github.com/gin-gonic/gin"
)

// MarketQuerier defines the read-side operations used by MarketHandler.
type MarketQuerier interface {
	ListMarket(cqrs.MarketQuery) (*models.MarketPage, error)
	GetListing(cqrs.GetListingQuery) (*models.ListingView, error)
	FacetSchema(models.Rubro) []catalog.AttributeSchema
}

// MarketHandler serves the public catalog endpoints.
type MarketHandler struct {
	queries MarketQuerier
}

func NewMarketHandler(queries MarketQuerier) *MarketHandler {
	return &MarketHandler{queries: queries}
}

// ListMarket handles GET /api/market. Every parameter is optional; omitted
// ones fall back to the catalog defaults.
func (h *MarketHandler) ListMarket(c *gin.Context) {
	q := cqrs.MarketQuery{
		Rubro:    c.DefaultQuery("rubro", string(models.RubroAll)),
		Tipo:     c.DefaultQuery("tipo", string(models.TipoAll)),
		PriceMin: parseInt64(c.Query("precioMin"), catalog.DefaultPriceMin),
		PriceMax: parseInt64(c.Query("precioMax"), catalog.DefaultPriceMax),
		RadiusKm: parseInt(c.Query("distanciaMax"), catalog.DefaultRadiusKm),
		Page:     parseInt(c.Query("page"), 1),
		Limit:    parseInt(c.Query("limit"), catalog.DefaultPageSize),
	}

	lat, latOK := parseFloat(c.Query("userLat"))
	lng, lngOK := parseFloat(c.Query("userLng"))
	if latOK && lngOK {
		q.ViewerLat = &lat
		q.ViewerLng = &lng
	}

	if !models.Rubro(q.Rubro).Valid() && q.Rubro != string(models.RubroAll) {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid rubro")
		return
	}
	if !models.Tipo(q.Tipo).Valid() {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid tipo")
		return
	}

	page, err := h.queries.ListMarket(q)
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list market")
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *MarketHandler) GetListing(c *gin.Context) {
	q := cqrs.GetListingQuery{ListingID: c.Param("listingId")}

	lat, latOK := parseFloat(c.Query("userLat"))
	lng, lngOK := parseFloat(c.Query("userLng"))
	if latOK && lngOK {
		q.ViewerLat = &lat
		q.ViewerLng = &lng
	}

	view, err := h.queries.GetListing(q)
	if err != nil {
		middleware.RespondWithError(c, http.StatusNotFound, "Listing not found")
		return
	}
	c.JSON(http.StatusOK, view)
}

// GetSchema handles GET /api/market/schema/:rubro and returns the facet
// controls for that rubro.
func (h *MarketHandler) GetSchema(c *gin.Context) {
	rubro := models.Rubro(c.Param("rubro"))
	if !rubro.Valid() {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid rubro")
		return
	}
	c.JSON(http.StatusOK, gin.H{"rubro": rubro, "attributes": h.queries.FacetSchema(rubro)})
}

func parseInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func parseInt64(raw string, fallback int64) int64 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fallback
	}
	return v
}

func parseFloat(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
