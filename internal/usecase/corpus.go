package usecase

import (
	"strings"

	"github.com/rfpmatch/backend/internal/domain"
)

// CatalogueCorpus builds the single text blob a catalogue item is vectorized
// from. Field order is fixed; the unit words "sqmm" and "kv" are injected as
// literal tokens after the numeric values so the vector space can weight them
// co-occurring with sizes and voltage grades found in RFP prose. Empty fields
// contribute nothing.
func CatalogueCorpus(item domain.CatalogueItem) string {
	parts := []string{
		item.ProductName,
		item.Category,
		item.ConductorMaterial,
		item.Standard,
	}
	if item.ConductorSize != "" {
		parts = append(parts, item.ConductorSize+" sqmm")
	}
	if item.VoltageRating != "" {
		parts = append(parts, item.VoltageRating+" kv")
	}
	return joinNonEmpty(parts)
}

// RFPCorpus builds the query-side text blob for an incoming record: title,
// description, requirements, category, in that fixed order. The order must
// match across every build in a run so composition stays reproducible.
func RFPCorpus(rfp domain.RFP) string {
	return joinNonEmpty([]string{
		rfp.Title,
		rfp.Description,
		rfp.Requirements,
		rfp.Category,
	})
}

func joinNonEmpty(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
