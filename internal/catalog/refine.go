package catalog

import (
	"strings"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
)

// Refine applies the filters the server does not evaluate (free-text search
// and facet selections) over one page of listings. Order is preserved from
// the input; nothing is re-sorted or merged across pages.
func Refine(page []models.ListingView, f Filters) []models.ListingView {
	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.ListingView, 0, len(page))
	for _, l := range page {
		if !matchesText(l, term) {
			continue
		}
		if !matchesFacets(l, f.Facets) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// matchesText: case-insensitive substring against title or description.
// A blank term passes everything.
func matchesText(l models.ListingView, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Title), term) ||
		strings.Contains(strings.ToLower(l.Description), term)
}

// matchesFacets: every attribute with a non-empty accepted set must find the
// listing's value in that set. Attributes with an empty set impose no
// constraint, so a listing without detail attributes still passes them.
func matchesFacets(l models.ListingView, facets map[string][]string) bool {
	for attr, accepted := range facets {
		if len(accepted) == 0 {
			continue
		}
		value, ok := l.Details[attr]
		if !ok {
			return false
		}
		found := false
		for _, a := range accepted {
			if a == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
