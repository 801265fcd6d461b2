package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
)

// ListingWriteRepository handles all state-mutating operations for listings.
// It operates exclusively against the PostgreSQL write store (source of truth).
type ListingWriteRepository struct {
	db *sql.DB
}

func NewListingWriteRepository(db *sql.DB) *ListingWriteRepository {
	return &ListingWriteRepository{db: db}
}

func (r *ListingWriteRepository) Create(l *models.Listing) error {
	details, features, media, err := marshalListingJSON(l)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO listings (id, seller_id, title, description, price, rubro, details, features, location, lat, lng, media, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	lat, lng := coordsToNull(l.Coords)
	_, err = r.db.Exec(query,
		l.ID, l.SellerID, l.Title, l.Description, l.Price, l.Rubro,
		details, features, l.Location, lat, lng, media, l.Status,
		l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}
	return nil
}

func (r *ListingWriteRepository) Update(l *models.Listing) error {
	details, features, media, err := marshalListingJSON(l)
	if err != nil {
		return err
	}
	query := `
		UPDATE listings
		SET title = $2, description = $3, price = $4, details = $5, features = $6, media = $7, status = $8, updated_at = $9
		WHERE id = $1
	`
	res, err := r.db.Exec(query,
		l.ID, l.Title, l.Description, l.Price, details, features, media, l.Status, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("listing not found")
	}
	return nil
}

func (r *ListingWriteRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("listing not found")
	}
	return nil
}

// GetByID returns the write model, used for ownership and status checks
// before a mutation or a checkout.
func (r *ListingWriteRepository) GetByID(id string) (*models.Listing, error) {
	query := `
		SELECT id, seller_id, title, description, price, rubro, details, features, location, lat, lng, media, status, created_at, updated_at
		FROM listings
		WHERE id = $1
	`
	var (
		l                       models.Listing
		details, features, media []byte
		lat, lng                sql.NullFloat64
	)
	err := r.db.QueryRow(query, id).Scan(
		&l.ID, &l.SellerID, &l.Title, &l.Description, &l.Price, &l.Rubro,
		&details, &features, &l.Location, &lat, &lng, &media, &l.Status,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("listing not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	if err := unmarshalListingJSON(details, features, media, &l.Details, &l.Features, &l.Media); err != nil {
		return nil, err
	}
	l.Coords = nullToCoords(lat, lng)
	return &l, nil
}

// AppendMedia pushes one media object onto the listing's media array.
func (r *ListingWriteRepository) AppendMedia(id string, m models.Media) error {
	doc, err := json.Marshal([]models.Media{m})
	if err != nil {
		return fmt.Errorf("failed to marshal media: %w", err)
	}
	query := `
		UPDATE listings
		SET media = COALESCE(media, '[]'::jsonb) || $2::jsonb, updated_at = NOW()
		WHERE id = $1
	`
	res, err := r.db.Exec(query, id, doc)
	if err != nil {
		return fmt.Errorf("failed to append media: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("listing not found")
	}
	return nil
}

func marshalListingJSON(l *models.Listing) (details, features, media []byte, err error) {
	if details, err = json.Marshal(l.Details); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal details: %w", err)
	}
	if features, err = json.Marshal(l.Features); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal features: %w", err)
	}
	if media, err = json.Marshal(l.Media); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to marshal media: %w", err)
	}
	return details, features, media, nil
}

func unmarshalListingJSON(details, features, media []byte, d *map[string]string, f *[]string, m *[]models.Media) error {
	if len(details) > 0 {
		if err := json.Unmarshal(details, d); err != nil {
			return fmt.Errorf("failed to unmarshal details: %w", err)
		}
	}
	if len(features) > 0 {
		if err := json.Unmarshal(features, f); err != nil {
			return fmt.Errorf("failed to unmarshal features: %w", err)
		}
	}
	if len(media) > 0 {
		if err := json.Unmarshal(media, m); err != nil {
			return fmt.Errorf("failed to unmarshal media: %w", err)
		}
	}
	return nil
}

func coordsToNull(c *models.Coordinates) (lat, lng sql.NullFloat64) {
	if c == nil {
		return
	}
	return sql.NullFloat64{Float64: c.Lat, Valid: true}, sql.NullFloat64{Float64: c.Lng, Valid: true}
}

func nullToCoords(lat, lng sql.NullFloat64) *models.Coordinates {
	if !lat.Valid || !lng.Valid {
		return nil
	}
	return &models.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
}
