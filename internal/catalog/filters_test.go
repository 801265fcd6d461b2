package catalog

import (
	"testing"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFiltersAreInactive(t *testing.T) {
	f := DefaultFilters()
	assert.False(t, f.HasActive())
	assert.Equal(t, models.TipoAll, f.Tipo)
	assert.Equal(t, models.RubroAll, f.Rubro)
	assert.Equal(t, int64(DefaultPriceMin), f.PriceMin)
	assert.Equal(t, int64(DefaultPriceMax), f.PriceMax)
	assert.Equal(t, DefaultRadiusKm, f.RadiusKm)
	assert.Equal(t, DefaultPageSize, f.PageSize)
}

func TestWithTipoResetsRubroAndFacets(t *testing.T) {
	f := DefaultFilters().WithRubro(models.RubroGoods)
	f, err := f.WithFacet("condicion", []string{"nuevo"})
	require.NoError(t, err)

	f = f.WithTipo(models.TipoServices)
	assert.Equal(t, models.RubroAll, f.Rubro)
	assert.Nil(t, f.Facets)
	assert.Equal(t, 1, f.Page)
}

func TestWithRubroClearsFacets(t *testing.T) {
	f := DefaultFilters().WithRubro(models.RubroGoods)
	f, err := f.WithFacet("condicion", []string{"usado"})
	require.NoError(t, err)

	// Re-selecting the same rubro still clears.
	f = f.WithRubro(models.RubroGoods)
	assert.Nil(t, f.Facets)
}

func TestWithFacetRequiresRubro(t *testing.T) {
	_, err := DefaultFilters().WithFacet("condicion", []string{"nuevo"})
	assert.Error(t, err)
}

func TestWithFacetRejectsUnknownAttribute(t *testing.T) {
	f := DefaultFilters().WithRubro(models.RubroFood)
	_, err := f.WithFacet("condicion", []string{"nuevo"})
	assert.Error(t, err)
}

func TestWithFacetDoesNotMutateOriginal(t *testing.T) {
	base := DefaultFilters().WithRubro(models.RubroGoods)
	withFacet, err := base.WithFacet("condicion", []string{"nuevo"})
	require.NoError(t, err)

	assert.Nil(t, base.Facets)
	assert.Equal(t, []string{"nuevo"}, withFacet.Facets["condicion"])
}

func TestWithPriceRangeSwapsInvertedBounds(t *testing.T) {
	f := DefaultFilters().WithPriceRange(9000, 100)
	assert.Equal(t, int64(100), f.PriceMin)
	assert.Equal(t, int64(9000), f.PriceMax)
}

func TestMutationsResetPage(t *testing.T) {
	f := DefaultFilters().WithPage(4)
	assert.Equal(t, 4, f.Page)

	assert.Equal(t, 1, f.WithSearch("bici").Page)
	assert.Equal(t, 1, f.WithRubro(models.RubroGoods).Page)
	assert.Equal(t, 1, f.WithPriceRange(0, 1000).Page)
	assert.Equal(t, 1, f.WithRadius(10).Page)
}

func TestRubrosForTipo(t *testing.T) {
	assert.Equal(t, []models.Rubro{models.RubroGoods, models.RubroFood}, RubrosForTipo(models.TipoGoods))
	assert.Equal(t, []models.Rubro{models.RubroServices, models.RubroExperiences}, RubrosForTipo(models.TipoServices))
	assert.Len(t, RubrosForTipo(models.TipoAll), 4)
}

func TestClearRestoresDefaults(t *testing.T) {
	f := DefaultFilters().
		WithSearch("guitarra").
		WithRubro(models.RubroGoods).
		WithPriceRange(100, 2000).
		WithCoords(&models.Coordinates{Lat: -34.6, Lng: -58.4})
	assert.True(t, f.HasActive())

	f = f.Clear()
	assert.False(t, f.HasActive())
	assert.Equal(t, DefaultFilters(), f)
}

func TestParamsOmitDefaultsAndLocalFilters(t *testing.T) {
	f := DefaultFilters()
	v := f.Params()
	assert.Empty(t, v.Get("rubro"))
	assert.Empty(t, v.Get("tipo"))
	assert.Empty(t, v.Get("precioMin"))
	assert.Empty(t, v.Get("precioMax"))
	assert.Empty(t, v.Get("userLat"))
	assert.Equal(t, "1", v.Get("page"))
	assert.Equal(t, "12", v.Get("limit"))

	f = f.WithSearch("bici").WithRubro(models.RubroGoods)
	f, err := f.WithFacet("condicion", []string{"nuevo"})
	require.NoError(t, err)
	v = f.Params()

	// Search and facets never reach the wire.
	assert.Empty(t, v.Get("search"))
	assert.Empty(t, v.Get("q"))
	assert.Empty(t, v.Get("condicion"))
	assert.Equal(t, "goods", v.Get("rubro"))
}

func TestParamsSendGeoOnlyWithCoords(t *testing.T) {
	f := DefaultFilters().WithRadius(10)
	assert.Empty(t, f.Params().Get("distanciaMax"))

	f = f.WithCoords(&models.Coordinates{Lat: -34.6037, Lng: -58.3816})
	v := f.Params()
	assert.Equal(t, "10", v.Get("distanciaMax"))
	assert.NotEmpty(t, v.Get("userLat"))
	assert.NotEmpty(t, v.Get("userLng"))
}

func TestKeyDistinguishesLocalFilters(t *testing.T) {
	base := DefaultFilters().WithRubro(models.RubroGoods)
	searched := base.WithSearch("bici")

	// Same wire parameters, different keys: responses for one are not valid
	// for the other once local refinement applies.
	assert.Equal(t, base.Params().Encode(), searched.Params().Encode())
	assert.NotEqual(t, base.Key(), searched.Key())
}

func TestKeyIsCanonical(t *testing.T) {
	a := DefaultFilters().WithRubro(models.RubroGoods)
	a, err := a.WithFacet("condicion", []string{"usado", "nuevo"})
	require.NoError(t, err)
	a, err = a.WithFacet("entrega", []string{"envio"})
	require.NoError(t, err)

	b := DefaultFilters().WithRubro(models.RubroGoods)
	b, err = b.WithFacet("entrega", []string{"envio"})
	require.NoError(t, err)
	b, err = b.WithFacet("condicion", []string{"nuevo", "usado"})
	require.NoError(t, err)

	assert.Equal(t, a.Key(), b.Key())
}

func TestKeyIgnoresEmptyFacetSets(t *testing.T) {
	a := DefaultFilters().WithRubro(models.RubroGoods)
	b, err := a.WithFacet("condicion", nil)
	require.NoError(t, err)
	assert.Equal(t, a.Key(), b.Key())
}
