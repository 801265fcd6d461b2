package handler

import (
	"net/http"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/cqrs"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/middleware"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	"github.com/gin-gonic/gin"
)

// CheckoutCommander defines the write-side operations used by CheckoutHandler.
type CheckoutCommander interface {
	Checkout(cqrs.CheckoutCommand) (*models.CheckoutResult, error)
}

type CheckoutHandler struct {
	commands CheckoutCommander
}

func NewCheckoutHandler(commands CheckoutCommander) *CheckoutHandler {
	return &CheckoutHandler{commands: commands}
}

// Checkout handles POST /api/checkout/:listingId. The amount always comes from
// the listing, never from the request.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	result, err := h.commands.Checkout(cqrs.CheckoutCommand{
		ListingID: c.Param("listingId"),
		BuyerID:   userID,
	})
	if err != nil {
		switch err.Error() {
		case "listing not found":
			middleware.RespondWithError(c, http.StatusNotFound, "Listing not found")
		case "forbidden":
			middleware.RespondWithError(c, http.StatusForbidden, "You cannot buy your own listing")
		case "listing not available":
			middleware.RespondWithError(c, http.StatusConflict, "Listing is not available")
		case "insufficient credit":
			middleware.RespondWithError(c, http.StatusUnprocessableEntity, "Insufficient credit to complete this purchase")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to complete checkout")
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}
