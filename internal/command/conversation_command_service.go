package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/cqrs"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/repository"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/utils"
)

// ConversationCommandService posts messages into existing threads. Threads
// themselves are only created by a completed checkout.
type ConversationCommandService struct {
	convRepo *repository.ConversationRepository
}

func NewConversationCommandService(convRepo *repository.ConversationRepository) *ConversationCommandService {
	return &ConversationCommandService{convRepo: convRepo}
}

func (s *ConversationCommandService) PostMessage(cmd cqrs.PostMessageCommand) (*models.Message, error) {
	body := strings.TrimSpace(cmd.Body)
	if body == "" {
		return nil, fmt.Errorf("empty message")
	}

	ctx := context.Background()
	conversation, err := s.convRepo.GetByID(ctx, cmd.ConversationID)
	if err != nil {
		return nil, err
	}
	if conversation.BuyerID != cmd.SenderID && conversation.SellerID != cmd.SenderID {
		return nil, fmt.Errorf("forbidden")
	}

	message := &models.Message{
		ID:             utils.GenerateID("msg"),
		ConversationID: conversation.ID,
		SenderID:       cmd.SenderID,
		Body:           body,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.convRepo.InsertMessage(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}
