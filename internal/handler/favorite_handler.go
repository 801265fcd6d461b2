package handler

import (
	"net/http"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/cqrs"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/middleware"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	"github.com/gin-gonic/gin"
)

// FavoriteCommander defines the write-side operations used by FavoriteHandler.
type FavoriteCommander interface {
	Toggle(cqrs.ToggleFavoriteCommand) (*models.FavoriteToggle, error)
}

// FavoriteQuerier defines the read-side operations used by FavoriteHandler.
type FavoriteQuerier interface {
	ListFavorites(cqrs.ListFavoritesQuery) ([]models.ListingView, error)
	IsFavorite(cqrs.GetFavoriteQuery) (bool, error)
}

type FavoriteHandler struct {
	commands FavoriteCommander
	queries  FavoriteQuerier
}

type ListFavoritesResponse struct {
	Listings []models.ListingView `json:"listings"`
}

func NewFavoriteHandler(commands FavoriteCommander, queries FavoriteQuerier) *FavoriteHandler {
	return &FavoriteHandler{commands: commands, queries: queries}
}

// Toggle handles POST /api/favoritos/:listingId and flips the favorite state,
// returning the resulting state.
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	result, err := h.commands.Toggle(cqrs.ToggleFavoriteCommand{
		UserID:    userID,
		ListingID: c.Param("listingId"),
	})
	if err != nil {
		if err.Error() == "listing not found" {
			middleware.RespondWithError(c, http.StatusNotFound, "Listing not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to toggle favorite")
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetFavorite handles GET /api/favoritos/:listingId and reports membership
// without changing it.
func (h *FavoriteHandler) GetFavorite(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	favorite, err := h.queries.IsFavorite(cqrs.GetFavoriteQuery{
		UserID:    userID,
		ListingID: c.Param("listingId"),
	})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to check favorite")
		return
	}

	c.JSON(http.StatusOK, models.FavoriteToggle{ListingID: c.Param("listingId"), Favorite: favorite})
}

func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	views, err := h.queries.ListFavorites(cqrs.ListFavoritesQuery{UserID: userID})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list favorites")
		return
	}
	if views == nil {
		views = []models.ListingView{}
	}
	c.JSON(http.StatusOK, ListFavoritesResponse{Listings: views})
}
