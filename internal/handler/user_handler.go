package handler

import (
	"net/http"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/cqrs"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/middleware"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	"github.com/gin-gonic/gin"
)

// UserCommander defines the write-side operations used by UserHandler.
type UserCommander interface {
	UpdateProfile(cqrs.UpdateProfileCommand) (*models.ProfileView, error)
}

// UserQuerier defines the read-side operations used by UserHandler.
type UserQuerier interface {
	GetProfile(cqrs.GetProfileQuery) (*models.ProfileView, error)
	ListTransactions(cqrs.ListTransactionsQuery) ([]models.TransactionView, error)
	ListNotifications(cqrs.ListNotificationsQuery) ([]models.Notification, error)
}

type UserHandler struct {
	commands UserCommander
	queries  UserQuerier
}

type UpdateProfileRequest struct {
	Name     string              `json:"name" validate:"required,min=2,max=100"`
	Location string              `json:"location" validate:"max=200"`
	Coords   *models.Coordinates `json:"coords"`
}

type ListTransactionsResponse struct {
	Transactions []models.TransactionView `json:"transactions"`
}

type ListNotificationsResponse struct {
	Notifications []models.Notification `json:"notifications"`
}

func NewUserHandler(commands UserCommander, queries UserQuerier) *UserHandler {
	return &UserHandler{commands: commands, queries: queries}
}

// GetProfile handles GET /api/users/me. The view carries balance, credit limit
// and the maximum spendable amount under the credit envelope.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	view, err := h.queries.GetProfile(cqrs.GetProfileQuery{UserID: userID})
	if err != nil {
		middleware.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	view, err := h.commands.UpdateProfile(cqrs.UpdateProfileCommand{
		UserID:   userID,
		Name:     req.Name,
		Location: req.Location,
		Coords:   req.Coords,
	})
	if err != nil {
		if err.Error() == "user not found" {
			middleware.RespondWithError(c, http.StatusNotFound, "User not found")
			return
		}
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *UserHandler) ListTransactions(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	views, err := h.queries.ListTransactions(cqrs.ListTransactionsQuery{UserID: userID})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list transactions")
		return
	}
	if views == nil {
		views = []models.TransactionView{}
	}
	c.JSON(http.StatusOK, ListTransactionsResponse{Transactions: views})
}

func (h *UserHandler) ListNotifications(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	notifications, err := h.queries.ListNotifications(cqrs.ListNotificationsQuery{UserID: userID})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list notifications")
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}
	c.JSON(http.StatusOK, ListNotificationsResponse{Notifications: notifications})
}
