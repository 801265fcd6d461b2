package catalog

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
)

// Filter defaults. A filter is "active" exactly when it differs from these.
const (
	DefaultRadiusKm = 25
	DefaultPriceMin = 0
	DefaultPriceMax = 500000
	DefaultPageSize = 12
)

// Filters is the full catalog filter state. Rubro/tipo/price/geo/pagination
// are evaluated by the server; Search and Facets are refined locally over the
// returned page and never sent on the wire.
type Filters struct {
	Search   string
	Tipo     models.Tipo
	Rubro    models.Rubro
	PriceMin int64
	PriceMax int64
	Coords   *models.Coordinates
	RadiusKm int
	Facets   map[string][]string
	Page     int
	PageSize int
}

func DefaultFilters() Filters {
	return Filters{
		Search:   "",
		Tipo:     models.TipoAll,
		Rubro:    models.RubroAll,
		PriceMin: DefaultPriceMin,
		PriceMax: DefaultPriceMax,
		Coords:   nil,
		RadiusKm: DefaultRadiusKm,
		Facets:   nil,
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// WithTipo selects a market tab. The rubro goes back to "todos", which in
// turn drops every facet: facets are scoped to a rubro, never carried across.
func (f Filters) WithTipo(t models.Tipo) Filters {
	f.Tipo = t
	f.Rubro = models.RubroAll
	f.Facets = nil
	f.Page = 1
	return f
}

// WithRubro selects a rubro and unconditionally clears facet selections,
// including when re-selecting the same rubro.
func (f Filters) WithRubro(r models.Rubro) Filters {
	f.Rubro = r
	f.Facets = nil
	f.Page = 1
	return f
}

// WithFacet replaces the accepted-value set for one attribute. The attribute
// must belong to the schema of the currently selected rubro.
func (f Filters) WithFacet(attr string, values []string) (Filters, error) {
	if f.Rubro == models.RubroAll {
		return f, fmt.Errorf("facets require a selected rubro")
	}
	if !attributeInSchema(f.Rubro, attr) {
		return f, fmt.Errorf("unknown attribute %q for rubro %q", attr, f.Rubro)
	}
	facets := make(map[string][]string, len(f.Facets)+1)
	for k, v := range f.Facets {
		facets[k] = v
	}
	facets[attr] = values
	f.Facets = facets
	f.Page = 1
	return f, nil
}

func (f Filters) WithSearch(term string) Filters {
	f.Search = term
	f.Page = 1
	return f
}

func (f Filters) WithPriceRange(min, max int64) Filters {
	if min > max {
		min, max = max, min
	}
	f.PriceMin = min
	f.PriceMax = max
	f.Page = 1
	return f
}

func (f Filters) WithCoords(c *models.Coordinates) Filters {
	f.Coords = c
	f.Page = 1
	return f
}

func (f Filters) WithRadius(km int) Filters {
	f.RadiusKm = km
	f.Page = 1
	return f
}

func (f Filters) WithPage(page int) Filters {
	if page < 1 {
		page = 1
	}
	f.Page = page
	return f
}

// RubrosForTipo constrains which rubros a tab exposes: the goods tab carries
// goods and food, the services tab carries services and experiences.
func RubrosForTipo(t models.Tipo) []models.Rubro {
	switch t {
	case models.TipoGoods:
		return []models.Rubro{models.RubroGoods, models.RubroFood}
	case models.TipoServices:
		return []models.Rubro{models.RubroServices, models.RubroExperiences}
	default:
		return append([]models.Rubro(nil), models.Rubros...)
	}
}

// HasActive reports whether any filter differs from its default.
func (f Filters) HasActive() bool {
	if strings.TrimSpace(f.Search) != "" {
		return true
	}
	if f.Tipo != models.TipoAll || f.Rubro != models.RubroAll {
		return true
	}
	if f.Coords != nil || f.RadiusKm < DefaultRadiusKm {
		return true
	}
	if f.PriceMin > DefaultPriceMin || f.PriceMax < DefaultPriceMax {
		return true
	}
	for _, values := range f.Facets {
		if len(values) > 0 {
			return true
		}
	}
	return false
}

// Clear resets every filter to its default in one value swap.
func (f Filters) Clear() Filters {
	return DefaultFilters()
}

// Params renders the server-evaluable subset as market query parameters.
// Geo parameters are sent only when viewer coordinates are present; the
// server never sees search terms or facet selections.
func (f Filters) Params() url.Values {
	v := url.Values{}
	if f.Rubro != models.RubroAll {
		v.Set("rubro", string(f.Rubro))
	}
	if f.Tipo != models.TipoAll {
		v.Set("tipo", string(f.Tipo))
	}
	if f.PriceMin > DefaultPriceMin {
		v.Set("precioMin", strconv.FormatInt(f.PriceMin, 10))
	}
	if f.PriceMax < DefaultPriceMax {
		v.Set("precioMax", strconv.FormatInt(f.PriceMax, 10))
	}
	if f.Coords != nil {
		v.Set("userLat", strconv.FormatFloat(f.Coords.Lat, 'f', -1, 64))
		v.Set("userLng", strconv.FormatFloat(f.Coords.Lng, 'f', -1, 64))
		v.Set("distanciaMax", strconv.Itoa(f.RadiusKm))
	}
	v.Set("page", strconv.Itoa(f.Page))
	v.Set("limit", strconv.Itoa(f.PageSize))
	return v
}

// Key is the canonical encoding of the full filter tuple, including the parts
// the server never sees. Two Filters produce the same Key iff a response for
// one is valid for the other, so it doubles as the request-state tag used to
// discard stale in-flight responses.
func (f Filters) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "q=%s|t=%s|r=%s|p=%d-%d|pg=%d/%d|rad=%d",
		strings.ToLower(strings.TrimSpace(f.Search)),
		f.Tipo, f.Rubro, f.PriceMin, f.PriceMax, f.Page, f.PageSize, f.RadiusKm)
	if f.Coords != nil {
		fmt.Fprintf(&b, "|at=%.5f,%.5f", f.Coords.Lat, f.Coords.Lng)
	}
	attrs := make([]string, 0, len(f.Facets))
	for attr, values := range f.Facets {
		if len(values) > 0 {
			attrs = append(attrs, attr)
		}
	}
	sort.Strings(attrs)
	for _, attr := range attrs {
		values := append([]string(nil), f.Facets[attr]...)
		sort.Strings(values)
		fmt.Fprintf(&b, "|f:%s=%s", attr, strings.Join(values, ","))
	}
	return b.String()
}
