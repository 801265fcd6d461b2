package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/utils"
)

// ConversationRepository stores buyer↔seller threads and their messages.
type ConversationRepository struct {
	db *sql.DB
}

func NewConversationRepository(db *sql.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// FindOrCreate returns the thread for (listing, buyer, seller), creating it
// on first checkout. Re-purchasing the same listing reuses the thread.
func (r *ConversationRepository) FindOrCreate(ctx context.Context, listingID, buyerID, sellerID string) (*models.Conversation, error) {
	var c models.Conversation
	err := r.db.QueryRowContext(ctx, `
		SELECT id, listing_id, buyer_id, seller_id, created_at
		FROM conversations
		WHERE listing_id = $1 AND buyer_id = $2 AND seller_id = $3
	`, listingID, buyerID, sellerID).Scan(&c.ID, &c.ListingID, &c.BuyerID, &c.SellerID, &c.CreatedAt)
	if err == nil {
		return &c, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}

	c = models.Conversation{
		ID:        utils.GenerateID("cnv"),
		ListingID: listingID,
		BuyerID:   buyerID,
		SellerID:  sellerID,
		CreatedAt: time.Now().UTC(),
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO conversations (id, listing_id, buyer_id, seller_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.ListingID, c.BuyerID, c.SellerID, c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return &c, nil
}

func (r *ConversationRepository) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	var c models.Conversation
	err := r.db.QueryRowContext(ctx, `
		SELECT id, listing_id, buyer_id, seller_id, created_at
		FROM conversations WHERE id = $1
	`, id).Scan(&c.ID, &c.ListingID, &c.BuyerID, &c.SellerID, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("conversation not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return &c, nil
}

func (r *ConversationRepository) ListByUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, listing_id, buyer_id, seller_id, created_at
		FROM conversations
		WHERE buyer_id = $1 OR seller_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []models.Conversation
	for rows.Next() {
		var c models.Conversation
		if err := rows.Scan(&c.ID, &c.ListingID, &c.BuyerID, &c.SellerID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

func (r *ConversationRepository) InsertMessage(ctx context.Context, m *models.Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO messages (id, conversation_id, sender_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, m.ID, m.ConversationID, m.SenderID, m.Body, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID string) ([]models.Message, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, conversation_id, sender_id, body, created_at
		FROM messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC
	`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
