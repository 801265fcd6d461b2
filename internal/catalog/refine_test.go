package catalog

import (
	"testing"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listingView(id, title, description string, details map[string]string) models.ListingView {
	return models.ListingView{
		ID:          id,
		Title:       title,
		Description: description,
		Details:     details,
		Rubro:       models.RubroGoods,
	}
}

func TestRefineTextMatchesTitleAndDescription(t *testing.T) {
	page := []models.ListingView{
		listingView("lst-1", "Bicicleta rodado 26", "", nil),
		listingView("lst-2", "Monopatín", "incluye bici de regalo", nil),
		listingView("lst-3", "Guitarra criolla", "con funda", nil),
	}

	got := Refine(page, DefaultFilters().WithSearch("bici"))
	require.Len(t, got, 2)
	assert.Equal(t, "lst-1", got[0].ID)
	assert.Equal(t, "lst-2", got[1].ID)
}

func TestRefineTextIsCaseInsensitiveAndTrimmed(t *testing.T) {
	page := []models.ListingView{
		listingView("lst-1", "Bicicleta rodado 26", "", nil),
	}

	assert.Len(t, Refine(page, DefaultFilters().WithSearch("  BICI ")), 1)
	assert.Len(t, Refine(page, DefaultFilters().WithSearch("   ")), 1)
}

func TestRefineFacets(t *testing.T) {
	page := []models.ListingView{
		listingView("lst-1", "Bici", "", map[string]string{"condicion": "nuevo"}),
		listingView("lst-2", "Mesa", "", map[string]string{"condicion": "usado"}),
		listingView("lst-3", "Silla", "", nil),
	}

	f := DefaultFilters().WithRubro(models.RubroGoods)
	f, err := f.WithFacet("condicion", []string{"nuevo", "reacondicionado"})
	require.NoError(t, err)

	got := Refine(page, f)
	require.Len(t, got, 1)
	assert.Equal(t, "lst-1", got[0].ID)
}

func TestRefineEmptyFacetSetImposesNothing(t *testing.T) {
	page := []models.ListingView{
		listingView("lst-1", "Bici", "", nil),
	}

	f := DefaultFilters().WithRubro(models.RubroGoods)
	f, err := f.WithFacet("condicion", nil)
	require.NoError(t, err)

	// A listing without detail attributes still passes an empty set.
	assert.Len(t, Refine(page, f), 1)
}

func TestRefineMissingAttributeFailsActiveConstraint(t *testing.T) {
	page := []models.ListingView{
		listingView("lst-1", "Bici", "", map[string]string{"entrega": "retiro"}),
	}

	f := DefaultFilters().WithRubro(models.RubroGoods)
	f, err := f.WithFacet("condicion", []string{"nuevo"})
	require.NoError(t, err)

	assert.Empty(t, Refine(page, f))
}

func TestRefinePreservesOrder(t *testing.T) {
	page := []models.ListingView{
		listingView("lst-3", "bici azul", "", nil),
		listingView("lst-1", "bici roja", "", nil),
		listingView("lst-2", "bici verde", "", nil),
	}

	got := Refine(page, DefaultFilters().WithSearch("bici"))
	require.Len(t, got, 3)
	assert.Equal(t, "lst-3", got[0].ID)
	assert.Equal(t, "lst-1", got[1].ID)
	assert.Equal(t, "lst-2", got[2].ID)
}

func TestValidateDetails(t *testing.T) {
	assert.NoError(t, ValidateDetails(models.RubroGoods, map[string]string{"condicion": "nuevo"}))
	assert.NoError(t, ValidateDetails(models.RubroGoods, nil))

	err := ValidateDetails(models.RubroGoods, map[string]string{"dieta": "vegano"})
	require.Error(t, err)
	var detailErr *DetailError
	require.ErrorAs(t, err, &detailErr)
	assert.Equal(t, "dieta", detailErr.Attribute)

	err = ValidateDetails(models.RubroGoods, map[string]string{"condicion": "roto"})
	assert.Error(t, err)
}
