package query

import (
	"context"
	"fmt"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/cqrs"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/repository"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
)

// ConversationQueryService serves threads and messages. Only participants may
// read a thread.
type ConversationQueryService struct {
	convRepo *repository.ConversationRepository
}

func NewConversationQueryService(convRepo *repository.ConversationRepository) *ConversationQueryService {
	return &ConversationQueryService{convRepo: convRepo}
}

func (s *ConversationQueryService) ListConversations(q cqrs.ListConversationsQuery) ([]models.Conversation, error) {
	return s.convRepo.ListByUser(context.Background(), q.UserID)
}

func (s *ConversationQueryService) ListMessages(q cqrs.ListMessagesQuery) ([]models.Message, error) {
	ctx := context.Background()
	conversation, err := s.convRepo.GetByID(ctx, q.ConversationID)
	if err != nil {
		return nil, err
	}
	if conversation.BuyerID != q.RequestingUserID && conversation.SellerID != q.RequestingUserID {
		return nil, fmt.Errorf("forbidden")
	}
	return s.convRepo.ListMessages(ctx, q.ConversationID)
}
