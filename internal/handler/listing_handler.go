package handler

import (
	"net/http"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/cqrs"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/catalog"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/middleware"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	"github.com/gin-gonic/gin"
)

// maxMediaSize caps listing uploads at 20 MiB.
const maxMediaSize = 20 << 20

// ListingCommander defines the write-side operations used by ListingHandler.
type ListingCommander interface {
	CreateListing(cqrs.CreateListingCommand) (*models.Listing, error)
	UpdateListing(cqrs.UpdateListingCommand) (*models.Listing, error)
	DeleteListing(cqrs.DeleteListingCommand) error
	AttachMedia(cqrs.AttachMediaCommand) (*models.Media, error)
}

type ListingHandler struct {
	commands ListingCommander
}

type CreateListingRequest struct {
	Title       string              `json:"title" validate:"required,min=3,max=140"`
	Description string              `json:"description" validate:"max=2000"`
	Price       int64               `json:"price" validate:"gte=0"`
	Rubro       string              `json:"rubro" validate:"required,oneof=goods services food experiences"`
	Details     map[string]string   `json:"details"`
	Features    []string            `json:"features" validate:"max=10,dive,max=80"`
	Location    string              `json:"location" validate:"max=200"`
	Coords      *models.Coordinates `json:"coords"`
}

type UpdateListingRequest struct {
	Title       string            `json:"title" validate:"required,min=3,max=140"`
	Description string            `json:"description" validate:"max=2000"`
	Price       int64             `json:"price" validate:"gte=0"`
	Details     map[string]string `json:"details"`
	Features    []string          `json:"features" validate:"max=10,dive,max=80"`
	Status      string            `json:"status" validate:"omitempty,oneof=active paused"`
}

func NewListingHandler(commands ListingCommander) *ListingHandler {
	return &ListingHandler{commands: commands}
}

func (h *ListingHandler) CreateListing(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	listing, err := h.commands.CreateListing(cqrs.CreateListingCommand{
		SellerID:    userID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Rubro:       models.Rubro(req.Rubro),
		Details:     req.Details,
		Features:    req.Features,
		Location:    req.Location,
		Coords:      req.Coords,
	})
	if err != nil {
		if _, ok := err.(*catalog.DetailError); ok {
			middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to create listing")
		return
	}

	c.JSON(http.StatusCreated, listing)
}

func (h *ListingHandler) UpdateListing(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	listing, err := h.commands.UpdateListing(cqrs.UpdateListingCommand{
		ListingID:        c.Param("listingId"),
		RequestingUserID: userID,
		Title:            req.Title,
		Description:      req.Description,
		Price:            req.Price,
		Details:          req.Details,
		Features:         req.Features,
		Status:           models.ListingStatus(req.Status),
	})
	if err != nil {
		if _, ok := err.(*catalog.DetailError); ok {
			middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		switch err.Error() {
		case "listing not found":
			middleware.RespondWithError(c, http.StatusNotFound, "Listing not found")
		case "forbidden":
			middleware.RespondWithError(c, http.StatusForbidden, "You can only update your own listings")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to update listing")
		}
		return
	}

	c.JSON(http.StatusOK, listing)
}

func (h *ListingHandler) DeleteListing(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	err := h.commands.DeleteListing(cqrs.DeleteListingCommand{
		ListingID:        c.Param("listingId"),
		RequestingUserID: userID,
	})
	if err != nil {
		switch err.Error() {
		case "listing not found":
			middleware.RespondWithError(c, http.StatusNotFound, "Listing not found")
		case "forbidden":
			middleware.RespondWithError(c, http.StatusForbidden, "You can only delete your own listings")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to delete listing")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// AttachMedia handles POST /api/listings/:listingId/media with a multipart
// "file" part.
func (h *ListingHandler) AttachMedia(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Missing file")
		return
	}
	if fileHeader.Size > maxMediaSize {
		middleware.RespondWithError(c, http.StatusRequestEntityTooLarge, "File too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Failed to read file")
		return
	}
	defer file.Close()

	media, err := h.commands.AttachMedia(cqrs.AttachMediaCommand{
		ListingID:        c.Param("listingId"),
		RequestingUserID: userID,
		Filename:         fileHeader.Filename,
		ContentType:      fileHeader.Header.Get("Content-Type"),
		Size:             fileHeader.Size,
		Body:             file,
	})
	if err != nil {
		switch err.Error() {
		case "listing not found":
			middleware.RespondWithError(c, http.StatusNotFound, "Listing not found")
		case "forbidden":
			middleware.RespondWithError(c, http.StatusForbidden, "You can only add media to your own listings")
		case "unsupported media type":
			middleware.RespondWithError(c, http.StatusUnsupportedMediaType, "Only images and videos are supported")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to upload media")
		}
		return
	}

	c.JSON(http.StatusCreated, media)
}
