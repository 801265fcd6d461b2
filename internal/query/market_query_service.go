package query

import (
	"context"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/cqrs"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/catalog"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/repository"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
)

// MarketQueryService serves the catalog. It evaluates exactly the filters the
// wire protocol carries: rubro, tipo, price, geo radius, pagination. The
// free-text and facet refinement stays on the consumer side.
type MarketQueryService struct {
	listingRead *repository.ListingReadRepository
}

func NewMarketQueryService(listingRead *repository.ListingReadRepository) *MarketQueryService {
	return &MarketQueryService{listingRead: listingRead}
}

func (s *MarketQueryService) ListMarket(q cqrs.MarketQuery) (*models.MarketPage, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = catalog.DefaultPageSize
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.RadiusKm <= 0 {
		q.RadiusKm = catalog.DefaultRadiusKm
	}
	return s.listingRead.ListMarket(context.Background(), q)
}

func (s *MarketQueryService) GetListing(q cqrs.GetListingQuery) (*models.ListingView, error) {
	return s.listingRead.GetView(context.Background(), q)
}

// FacetSchema exposes the per-rubro facet controls so the consumer can render
// them without hard-coding the shapes.
func (s *MarketQueryService) FacetSchema(rubro models.Rubro) []catalog.AttributeSchema {
	return catalog.SchemaFor(rubro)
}
