package usecase

import "github.com/rfpmatch/backend/internal/domain"

// EnrichRFP merges the winning catalogue entry's attributes onto an incoming
// record, attaches the tech specs extracted from its prose, and normalizes the
// date-bearing fields (unparseable dates pass through unchanged). A pure
// merge: the catalogue item is never mutated and no I/O happens here.
func EnrichRFP(rfp domain.RFP, item domain.CatalogueItem, match ScoredMatch) domain.EnrichedRFP {
	enriched := domain.EnrichedRFP{
		RFP:                      rfp,
		MatchedSKU:               item.SKU,
		MatchedProductName:       item.ProductName,
		MatchedCategory:          item.Category,
		MatchedStandard:          item.Standard,
		MatchedConductorMaterial: item.ConductorMaterial,
		MatchedConductorSize:     item.ConductorSize,
		MatchedVoltageRating:     item.VoltageRating,
		UnitPrice:                item.UnitPrice,
		TestPrice:                item.TestPrice,
		MatchPercent:             match.Percent,
		Priority:                 match.Priority,
		TechSpecs:                ExtractTechSpecs(rfp.Title + " " + rfp.Description + " " + rfp.Requirements),
	}

	enriched.DeadlineRaw = NormalizeDate(rfp.DeadlineRaw)
	enriched.IssueDateRaw = NormalizeDate(rfp.IssueDateRaw)
	return enriched
}
