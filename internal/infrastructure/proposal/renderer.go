package proposal

import (
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/rfpmatch/backend/internal/domain"
)

// proposalTemplate lays out the technical & commercial proposal for one
// enriched record. The layout is fixed; only the record's fields vary.
var proposalTemplate = template.Must(template.New("proposal").Funcs(template.FuncMap{
	"orNA":  orNA,
	"money": formatMoney,
	"specs": formatSpecs,
}).Parse(`TECHNICAL & COMMERCIAL PROPOSAL
============================================================

RFP Reference Details
RFP ID: {{.ID}}
Title: {{.Title}}
Issuing Authority: {{orNA .Organization}}
Submission Deadline: {{orNA .DeadlineRaw}}

Match Summary
Match Confidence: {{printf "%.2f" .MatchPercent}}%
Priority: {{.Priority}}
Recommended SKU: {{.MatchedSKU}}
Matched Product: {{.MatchedProductName}}
Category: {{.MatchedCategory}}

Technical Offer
Product Specifications:
- Conductor Material: {{orNA .MatchedConductorMaterial}}
- Conductor Size: {{orNA .MatchedConductorSize}} sqmm
- Voltage Rating: {{orNA .MatchedVoltageRating}} kV
- Compliance Standard: {{.MatchedStandard}}
- Additional Technical Notes: {{specs .TechSpecs}}

Commercial Offer
Unit Price: ₹{{money .UnitPrice}}
Testing Charges: ₹{{money .TestPrice}}
Total Base Price: ₹{{money .TotalPrice}}

(Final pricing will depend on the quantity specified in the BOQ.)

Why Our Product Fits the Requirement
- Fully compliant with {{.MatchedStandard}} standards
- High-quality {{.MatchedConductorMaterial}} conductor material
- Low resistance and durable insulation design
- Manufactured in certified facilities with strong QA processes
- Competitive pricing with complete transparency
- Extensive testing procedures included
- Reliable support and warranty coverage

Delivery and Terms
Expected Delivery: As per project schedule
Warranty: Standard OEM warranty applies
Payment Terms: To be mutually agreed
Proposal Validity: 90 days from date of issue

Compliance Statement
We confirm that the proposed product meets all requirements specified in the RFP, including:
- Conductor and insulation specifications
- Voltage and resistance parameters
- Type and routine testing obligations
- Conformance with {{.MatchedStandard}} standards

Thank you for considering our proposal. We look forward to supporting your project with high-quality products and reliable service.

============================================================
`))

// templateData wraps the record with the derived total price so the template
// stays plain field access.
type templateData struct {
	domain.EnrichedRFP
	TotalPrice float64
}

// Render produces the proposal text for one enriched record.
func Render(record domain.EnrichedRFP) (string, error) {
	var b strings.Builder
	data := templateData{
		EnrichedRFP: record,
		TotalPrice:  record.UnitPrice + record.TestPrice,
	}
	if err := proposalTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("rendering proposal for %s: %w", record.ID, err)
	}
	return b.String(), nil
}

// RenderAll renders one proposal per record, preserving record order.
// Records that fail to render contribute an empty proposal rather than
// aborting the batch.
func RenderAll(records []domain.EnrichedRFP) []string {
	proposals := make([]string, len(records))
	for i, record := range records {
		text, err := Render(record)
		if err != nil {
			continue
		}
		proposals[i] = text
	}
	return proposals
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// formatMoney renders an amount with thousands separators, two decimals.
func formatMoney(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	dot := strings.Index(s, ".")
	intPart, fracPart := s[:dot], s[dot:]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return b.String() + fracPart
}

// formatSpecs flattens the extracted tech specs in sorted key order.
func formatSpecs(specs map[string]string) string {
	if len(specs) == 0 {
		return "N/A"
	}
	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+specs[k])
	}
	return strings.Join(parts, ", ")
}
