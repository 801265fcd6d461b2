package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
)

// NotificationRepository stores per-user notifications produced from events.
type NotificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Insert writes a notification. The unique index on transaction_id makes
// redelivered checkout events a no-op instead of a duplicate row.
func (r *NotificationRepository) Insert(ctx context.Context, n *models.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (id, user_id, kind, transaction_id, listing_id, body, read, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7, $8)
		ON CONFLICT (transaction_id) DO NOTHING
	`, n.ID, n.UserID, n.Kind, n.TransactionID, n.ListingID, n.Body, n.Read, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, kind, COALESCE(transaction_id, ''), COALESCE(listing_id, ''), body, read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Kind, &n.TransactionID, &n.ListingID, &n.Body, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
