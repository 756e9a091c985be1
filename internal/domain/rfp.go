package domain

// RFP represents one procurement notice scraped from the listing source.
// Missing optional fields are empty strings so downstream text concatenation
// never has to special-case absence.
type RFP struct {
	ID           string `json:"rfp_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Requirements string `json:"requirements,omitempty"`
	Category     string `json:"category,omitempty"`
	Organization string `json:"organization,omitempty"`
	Department   string `json:"department,omitempty"`
	Status       string `json:"status,omitempty"`
	DeadlineRaw  string `json:"deadline"`
	IssueDateRaw string `json:"issue_date,omitempty"`
}

// EnrichedRFP is an RFP merged with its best catalogue match. Date-bearing
// fields hold the normalized form when parsing succeeded, else the original
// string from the listing.
type EnrichedRFP struct {
	RFP

	MatchedSKU               string            `json:"matched_sku"`
	MatchedProductName       string            `json:"matched_product_name"`
	MatchedCategory          string            `json:"matched_category"`
	MatchedStandard          string            `json:"matched_standard"`
	MatchedConductorMaterial string            `json:"matched_conductor_material"`
	MatchedConductorSize     string            `json:"matched_conductor_size"`
	MatchedVoltageRating     string            `json:"matched_voltage_rating"`
	UnitPrice                float64           `json:"unit_price"`
	TestPrice                float64           `json:"test_price"`
	MatchPercent             float64           `json:"match_percent"`
	Priority                 Priority          `json:"priority"`
	TechSpecs                map[string]string `json:"tech_specs,omitempty"`
}

// Priority classifies a match percentage into a display tier.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Candidate is one entry of a top-k match inspection.
type Candidate struct {
	SKU         string   `json:"sku"`
	ProductName string   `json:"product_name"`
	Percent     float64  `json:"percent"`
	Priority    Priority `json:"priority"`
}
