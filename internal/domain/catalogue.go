package domain

// CatalogueItem is one product row from the catalogue CSV. The set loaded for
// a run is treated as an immutable snapshot: the similarity index is fitted on
// it once and rows from different loads must never mix within one fit.
type CatalogueItem struct {
	SKU               string  `json:"sku"`
	ProductName       string  `json:"product_name"`
	Category          string  `json:"category"`
	ConductorMaterial string  `json:"conductor_material"`
	ConductorSize     string  `json:"conductor_size"`  // sqmm
	VoltageRating     string  `json:"voltage_rating"`  // kV, may be a range like "1.1/3.3"
	Standard          string  `json:"standard_iec"`
	UnitPrice         float64 `json:"unit_price"`
	TestPrice         float64 `json:"test_price"`
}
