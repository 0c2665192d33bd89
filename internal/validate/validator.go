// Package validate decides which search hits carry enough data to be shown.
package validate

import (
	"strings"

	"CatalogLens/internal/domain"
)

// IsDisplayable reports whether hit has a name and, when a details block is
// present, at least one usable attribute: a positive price, a positive
// rating or a non-blank brand. Hits without details pass on their name.
func IsDisplayable(hit domain.SearchHit) bool {
	if strings.TrimSpace(hit.Name) == "" {
		return false
	}
	if hit.Details == nil {
		return true
	}

	d := hit.Details
	return positive(d.Price) || positive(d.Rating) || strings.TrimSpace(d.Brand.String()) != ""
}

func positive(v domain.Scalar) bool {
	f, ok := v.Float()
	return ok && f > 0
}

// Filter returns the displayable hits in their original order. The input
// slice is not modified.
func Filter(hits []domain.SearchHit) []domain.SearchHit {
	kept := make([]domain.SearchHit, 0, len(hits))
	for _, hit := range hits {
		if IsDisplayable(hit) {
			kept = append(kept, hit)
		}
	}
	return kept
}
