package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	sharedredis "github.com/LauElToro/intercambius-el-club-de-confianza-sub000/redis"
	goredis "github.com/redis/go-redis/v9"
)

const favoritesViewKeyPrefix = "favorites:user:"

// FavoriteRepository stores the server-persisted favorites of authenticated
// users. Membership is a plain (user, listing) pair; toggling flips it.
type FavoriteRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[[]models.ListingView]
}

func NewFavoriteRepository(db *sql.DB, redisClient *goredis.Client) *FavoriteRepository {
	return &FavoriteRepository{
		db:    db,
		cache: sharedredis.NewViewCache[[]models.ListingView](redisClient, 0),
	}
}

// Toggle flips membership and reports the resulting state. The cached
// favorites view is invalidated on every successful toggle.
func (r *FavoriteRepository) Toggle(ctx context.Context, userID, listingID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND listing_id = $2`, userID, listingID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		r.InvalidateList(ctx, userID)
		return false, nil
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO favorites (user_id, listing_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, listing_id) DO NOTHING
	`, userID, listingID, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	r.InvalidateList(ctx, userID)
	return true, nil
}

// IsFavorite reports current membership.
func (r *FavoriteRepository) IsFavorite(ctx context.Context, userID, listingID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND listing_id = $2)`,
		userID, listingID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

// ListViews returns the user's favorited listings, most recently added first.
func (r *FavoriteRepository) ListViews(ctx context.Context, userID string) ([]models.ListingView, error) {
	cacheKey := favoritesViewKeyPrefix + userID
	if views, ok := r.cache.Get(ctx, cacheKey); ok {
		return *views, nil
	}

	query := fmt.Sprintf(`
		SELECT %s, NULL::float8 AS distance_km
		FROM favorites f
		JOIN listings l ON l.id = f.listing_id
		JOIN users u ON u.id = l.seller_id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
	`, listingViewColumns)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var views []models.ListingView
	for rows.Next() {
		view, err := scanListingView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}

	r.cache.Set(ctx, cacheKey, &views)
	return views, nil
}

func (r *FavoriteRepository) InvalidateList(ctx context.Context, userID string) {
	r.cache.Delete(ctx, favoritesViewKeyPrefix+userID)
}
