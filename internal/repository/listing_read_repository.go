package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/cqrs"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	sharedredis "github.com/LauElToro/intercambius-el-club-de-confianza-sub000/redis"
	goredis "github.com/redis/go-redis/v9"
)

const listingViewKeyPrefix = "listing:view:"

const listingViewColumns = `
	l.id, l.seller_id, u.name, l.title, l.description, l.price, l.rubro,
	l.details, l.features, l.location, l.lat, l.lng, l.media, l.status,
	l.created_at, l.updated_at`

// haversineExpr computes great-circle distance in km between the viewer and a
// listing. The three %s slots are the viewer-lat, viewer-lng, viewer-lat
// placeholders; least() guards acos against rounding just above 1.
const haversineExpr = `6371 * acos(least(1.0,
	cos(radians(%s)) * cos(radians(l.lat)) * cos(radians(l.lng) - radians(%s))
	+ sin(radians(%s)) * sin(radians(l.lat))))`

// ListingReadRepository serves the catalog read side. Single-listing views
// without viewer coordinates go through the Redis view cache; anything
// involving a distance is computed fresh in PostgreSQL.
type ListingReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.ListingView]
}

func NewListingReadRepository(db *sql.DB, redisClient *goredis.Client) *ListingReadRepository {
	return &ListingReadRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.ListingView](redisClient, 0),
	}
}

// ListMarket evaluates the server-side filters (rubro, tipo, price bounds,
// geo radius, pagination) in SQL. Results come back newest first; a page
// past the end is an empty page with the true total, not an error.
func (r *ListingReadRepository) ListMarket(ctx context.Context, q cqrs.MarketQuery) (*models.MarketPage, error) {
	var (
		args  []any
		conds = []string{"l.status = 'active'"}
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	distSelect := "NULL::float8"
	if q.ViewerLat != nil && q.ViewerLng != nil {
		latP := arg(*q.ViewerLat)
		lngP := arg(*q.ViewerLng)
		dist := fmt.Sprintf(haversineExpr, latP, lngP, latP)
		distSelect = fmt.Sprintf("CASE WHEN l.lat IS NOT NULL THEN %s END", dist)
		if q.RadiusKm > 0 {
			conds = append(conds, fmt.Sprintf("l.lat IS NOT NULL AND %s <= %s", dist, arg(q.RadiusKm)))
		}
	}

	switch q.Tipo {
	case string(models.TipoGoods):
		conds = append(conds, fmt.Sprintf("l.rubro IN ('%s', '%s')", models.RubroGoods, models.RubroFood))
	case string(models.TipoServices):
		conds = append(conds, fmt.Sprintf("l.rubro IN ('%s', '%s')", models.RubroServices, models.RubroExperiences))
	}
	if q.Rubro != "" && q.Rubro != string(models.RubroAll) {
		conds = append(conds, "l.rubro = "+arg(q.Rubro))
	}
	if q.PriceMin > 0 {
		conds = append(conds, "l.price >= "+arg(q.PriceMin))
	}
	if q.PriceMax > 0 {
		conds = append(conds, "l.price <= "+arg(q.PriceMax))
	}

	from := "FROM listings l JOIN users u ON u.id = l.seller_id WHERE " + strings.Join(conds, " AND ")

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) "+from, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 12
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	query := fmt.Sprintf("SELECT %s, %s AS distance_km %s ORDER BY l.created_at DESC LIMIT %s OFFSET %s",
		listingViewColumns, distSelect, from, arg(limit), arg((page-1)*limit))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list market: %w", err)
	}
	defer rows.Close()

	listings := make([]models.ListingView, 0, limit)
	for rows.Next() {
		view, err := scanListingView(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate listings: %w", err)
	}

	return &models.MarketPage{Listings: listings, Page: page, Limit: limit, Total: total}, nil
}

// GetView returns a single ListingView. Distance-free lookups try Redis
// first and warm it on a miss; lookups with viewer coordinates always hit
// PostgreSQL because the distance is viewer-specific.
func (r *ListingReadRepository) GetView(ctx context.Context, q cqrs.GetListingQuery) (*models.ListingView, error) {
	withDistance := q.ViewerLat != nil && q.ViewerLng != nil
	cacheKey := listingViewKeyPrefix + q.ListingID
	if !withDistance {
		if view, ok := r.cache.Get(ctx, cacheKey); ok {
			return view, nil
		}
	}

	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	distSelect := "NULL::float8"
	if withDistance {
		latP := arg(*q.ViewerLat)
		lngP := arg(*q.ViewerLng)
		distSelect = fmt.Sprintf("CASE WHEN l.lat IS NOT NULL THEN %s END",
			fmt.Sprintf(haversineExpr, latP, lngP, latP))
	}
	query := fmt.Sprintf(`SELECT %s, %s AS distance_km
		FROM listings l JOIN users u ON u.id = l.seller_id
		WHERE l.id = %s`, listingViewColumns, distSelect, arg(q.ListingID))

	row := r.db.QueryRowContext(ctx, query, args...)
	view, err := scanListingView(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("listing not found")
	}
	if err != nil {
		return nil, err
	}

	if !withDistance {
		r.cache.Set(ctx, cacheKey, view)
	}
	return view, nil
}

// InvalidateView drops the cached projection after any listing mutation.
func (r *ListingReadRepository) InvalidateView(ctx context.Context, listingID string) {
	r.cache.Delete(ctx, listingViewKeyPrefix+listingID)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListingView(row rowScanner) (*models.ListingView, error) {
	var (
		view                     models.ListingView
		details, features, media []byte
		lat, lng, distance       sql.NullFloat64
	)
	err := row.Scan(
		&view.ID, &view.SellerID, &view.SellerName, &view.Title, &view.Description,
		&view.Price, &view.Rubro, &details, &features, &view.Location,
		&lat, &lng, &media, &view.Status, &view.CreatedAt, &view.UpdatedAt,
		&distance,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan listing: %w", err)
	}
	if err := unmarshalListingJSON(details, features, media, &view.Details, &view.Features, &view.Media); err != nil {
		return nil, err
	}
	view.Coords = nullToCoords(lat, lng)
	if distance.Valid {
		d := distance.Float64
		view.DistanceKm = &d
	}
	return &view, nil
}
