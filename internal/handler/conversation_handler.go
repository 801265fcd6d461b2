package handler

import (
	"net/http"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/cqrs"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/middleware"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	"github.com/gin-gonic/gin"
)

// ConversationCommander defines the write-side operations used by
// ConversationHandler.
type ConversationCommander interface {
	PostMessage(cqrs.PostMessageCommand) (*models.Message, error)
}

// ConversationQuerier defines the read-side operations used by
// ConversationHandler.
type ConversationQuerier interface {
	ListConversations(cqrs.ListConversationsQuery) ([]models.Conversation, error)
	ListMessages(cqrs.ListMessagesQuery) ([]models.Message, error)
}

type ConversationHandler struct {
	commands ConversationCommander
	queries  ConversationQuerier
}

type PostMessageRequest struct {
	Body string `json:"body" validate:"required,max=2000"`
}

type ListConversationsResponse struct {
	Conversations []models.Conversation `json:"conversations"`
}

type ListMessagesResponse struct {
	Messages []models.Message `json:"messages"`
}

func NewConversationHandler(commands ConversationCommander, queries ConversationQuerier) *ConversationHandler {
	return &ConversationHandler{commands: commands, queries: queries}
}

func (h *ConversationHandler) ListConversations(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	conversations, err := h.queries.ListConversations(cqrs.ListConversationsQuery{UserID: userID})
	if err != nil {
		middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list conversations")
		return
	}
	if conversations == nil {
		conversations = []models.Conversation{}
	}
	c.JSON(http.StatusOK, ListConversationsResponse{Conversations: conversations})
}

func (h *ConversationHandler) ListMessages(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	messages, err := h.queries.ListMessages(cqrs.ListMessagesQuery{
		ConversationID:   c.Param("conversationId"),
		RequestingUserID: userID,
	})
	if err != nil {
		switch err.Error() {
		case "conversation not found":
			middleware.RespondWithError(c, http.StatusNotFound, "Conversation not found")
		case "forbidden":
			middleware.RespondWithError(c, http.StatusForbidden, "You can only read your own conversations")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to list messages")
		}
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	c.JSON(http.StatusOK, ListMessagesResponse{Messages: messages})
}

func (h *ConversationHandler) PostMessage(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	message, err := h.commands.PostMessage(cqrs.PostMessageCommand{
		ConversationID: c.Param("conversationId"),
		SenderID:       userID,
		Body:           req.Body,
	})
	if err != nil {
		switch err.Error() {
		case "conversation not found":
			middleware.RespondWithError(c, http.StatusNotFound, "Conversation not found")
		case "forbidden":
			middleware.RespondWithError(c, http.StatusForbidden, "You can only post to your own conversations")
		case "empty message":
			middleware.RespondWithError(c, http.StatusBadRequest, "Message body is empty")
		default:
			middleware.RespondWithError(c, http.StatusInternalServerError, "Failed to post message")
		}
		return
	}

	c.JSON(http.StatusCreated, message)
}
