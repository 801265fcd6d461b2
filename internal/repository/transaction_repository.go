package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	sharedredis "github.com/LauElToro/intercambius-el-club-de-confianza-sub000/redis"
	goredis "github.com/redis/go-redis/v9"
)

const transactionHistoryKeyPrefix = "transactions:user:"

// TransactionRepository settles transfers and serves transaction history.
// RecordTransfer is the only place balances move; everything else re-reads.
type TransactionRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[[]models.TransactionView]
}

func NewTransactionRepository(db *sql.DB, redisClient *goredis.Client) *TransactionRepository {
	return &TransactionRepository{
		db:    db,
		cache: sharedredis.NewViewCache[[]models.TransactionView](redisClient, 0),
	}
}

// RecordTransfer debits the buyer, credits the seller and inserts the
// transaction row in a single SQL transaction. The buyer debit re-checks the
// credit floor in the WHERE clause, so even a stale pre-check upstream can
// never push a balance below -credit_limit.
func (r *TransactionRepository) RecordTransfer(ctx context.Context, t *models.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transfer: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE users
		SET balance = balance - $2, updated_at = NOW()
		WHERE id = $1 AND balance - $2 >= -GREATEST(credit_limit, 0)
	`, t.BuyerID, t.Amount)
	if err != nil {
		return fmt.Errorf("failed to debit buyer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("insufficient credit")
	}

	res, err = tx.ExecContext(ctx, `
		UPDATE users SET balance = balance + $2, updated_at = NOW() WHERE id = $1
	`, t.SellerID, t.Amount)
	if err != nil {
		return fmt.Errorf("failed to credit seller: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user not found")
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO transactions (id, listing_id, buyer_id, seller_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, t.ID, t.ListingID, t.BuyerID, t.SellerID, t.Amount, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transfer: %w", err)
	}

	// Balances and histories changed for both parties.
	r.InvalidateHistory(ctx, t.BuyerID)
	r.InvalidateHistory(ctx, t.SellerID)
	return nil
}

// ListByUser returns the user's transaction history, newest first, with the
// direction computed from which side of the transfer they were on.
func (r *TransactionRepository) ListByUser(ctx context.Context, userID string) ([]models.TransactionView, error) {
	cacheKey := transactionHistoryKeyPrefix + userID
	if views, ok := r.cache.Get(ctx, cacheKey); ok {
		return *views, nil
	}

	query := `
		SELECT t.id, t.listing_id, COALESCE(l.title, ''),
			CASE WHEN t.buyer_id = $1 THEN su.name ELSE bu.name END,
			t.amount,
			CASE WHEN t.buyer_id = $1 THEN 'purchase' ELSE 'sale' END,
			t.created_at
		FROM transactions t
		LEFT JOIN listings l ON l.id = t.listing_id
		JOIN users bu ON bu.id = t.buyer_id
		JOIN users su ON su.id = t.seller_id
		WHERE t.buyer_id = $1 OR t.seller_id = $1
		ORDER BY t.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var views []models.TransactionView
	for rows.Next() {
		var view models.TransactionView
		if err := rows.Scan(
			&view.ID, &view.ListingID, &view.ListingTitle,
			&view.Counterparty, &view.Amount, &view.Direction, &view.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	r.cache.Set(ctx, cacheKey, &views)
	return views, nil
}

func (r *TransactionRepository) InvalidateHistory(ctx context.Context, userID string) {
	r.cache.Delete(ctx, transactionHistoryKeyPrefix+userID)
}
