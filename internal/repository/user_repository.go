package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/checkout"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	sharedredis "github.com/LauElToro/intercambius-el-club-de-confianza-sub000/redis"
	goredis "github.com/redis/go-redis/v9"
)

const profileViewKeyPrefix = "profile:view:"

// UserRepository handles user reads and writes. The profile projection,
// which carries the spending envelope, is cached in Redis and invalidated
// whenever a balance or profile mutation lands.
type UserRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.ProfileView]
}

func NewUserRepository(db *sql.DB, redisClient *goredis.Client) *UserRepository {
	return &UserRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.ProfileView](redisClient, 0),
	}
}

func (r *UserRepository) Create(u *models.User) error {
	lat, lng := coordsToNull(u.Coords)
	query := `
		INSERT INTO users (id, name, email, password_hash, location, lat, lng, balance, credit_limit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.Exec(query,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Location, lat, lng,
		u.Balance, u.CreditLimit, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	return r.getUser(`WHERE email = $1`, email)
}

func (r *UserRepository) GetByID(id string) (*models.User, error) {
	return r.getUser(`WHERE id = $1`, id)
}

func (r *UserRepository) getUser(where string, arg any) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, location, lat, lng, balance, credit_limit, created_at, updated_at
		FROM users ` + where
	var (
		u        models.User
		lat, lng sql.NullFloat64
	)
	err := r.db.QueryRow(query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Location, &lat, &lng,
		&u.Balance, &u.CreditLimit, &u.CreatedAt, &u.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.Coords = nullToCoords(lat, lng)
	return &u, nil
}

func (r *UserRepository) UpdateProfile(u *models.User) error {
	lat, lng := coordsToNull(u.Coords)
	query := `
		UPDATE users
		SET name = $2, location = $3, lat = $4, lng = $5, updated_at = $6
		WHERE id = $1
	`
	res, err := r.db.Exec(query, u.ID, u.Name, u.Location, lat, lng, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}

// GetProfileView returns the cached profile projection, falling back to
// PostgreSQL and warming the cache. MaxSpendable comes from the checkout
// envelope so the read model and the guard can never disagree.
func (r *UserRepository) GetProfileView(ctx context.Context, userID string) (*models.ProfileView, error) {
	cacheKey := profileViewKeyPrefix + userID
	if view, ok := r.cache.Get(ctx, cacheKey); ok {
		return view, nil
	}

	u, err := r.GetByID(userID)
	if err != nil {
		return nil, err
	}
	env := checkout.NewEnvelope(u.Balance, &u.CreditLimit)
	view := &models.ProfileView{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Location:     u.Location,
		Coords:       u.Coords,
		Balance:      u.Balance,
		CreditLimit:  env.Limit,
		MaxSpendable: env.MaxSpendable(),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	r.cache.Set(ctx, cacheKey, view)
	return view, nil
}

// InvalidateProfile drops the cached projection; the next read rebuilds it.
func (r *UserRepository) InvalidateProfile(ctx context.Context, userID string) {
	r.cache.Delete(ctx, profileViewKeyPrefix+userID)
}
