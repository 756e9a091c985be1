package catalogue

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/rfpmatch/backend/internal/domain"
)

// CSVLoader reads the product catalogue from a CSV export. Every Load
// produces a fresh immutable snapshot; callers must not mix items from two
// loads inside one matching run.
type CSVLoader struct {
	path string
}

// NewCSVLoader creates a loader for the catalogue file at path.
func NewCSVLoader(path string) *CSVLoader {
	return &CSVLoader{path: path}
}

// Load parses the catalogue CSV into CatalogueItem values. The header row
// names the columns, so column order in the export does not matter.
// Duplicate SKUs are rejected; rows with an empty SKU are skipped with a log
// line rather than failing the load.
func (l *CSVLoader) Load(ctx context.Context) ([]domain.CatalogueItem, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("opening catalogue file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading catalogue file: %w", err)
	}
	if len(rows) < 2 {
		return nil, domain.ErrEmptyCatalogue
	}

	cols := columnIndex(rows[0])
	if _, ok := cols["sku"]; !ok {
		return nil, fmt.Errorf("catalogue file %s has no sku column", l.path)
	}

	items := make([]domain.CatalogueItem, 0, len(rows)-1)
	seen := make(map[string]bool)
	for i, row := range rows[1:] {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		item := mapRow(row, cols)
		if item.SKU == "" {
			log.Printf("[CATALOGUE] Skipping row %d: empty sku", i+2)
			continue
		}
		if seen[item.SKU] {
			return nil, fmt.Errorf("%w: %s (row %d)", domain.ErrDuplicateSKU, item.SKU, i+2)
		}
		seen[item.SKU] = true
		items = append(items, item)
	}

	return items, nil
}

// columnIndex maps normalized header names to their positions.
func columnIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return cols
}

// mapRow converts one CSV row into a CatalogueItem. Missing cells map to
// empty strings; malformed prices map to zero with a log line, matching the
// non-negative currency contract.
func mapRow(row []string, cols map[string]int) domain.CatalogueItem {
	cell := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	item := domain.CatalogueItem{
		SKU:               cell("sku"),
		ProductName:       cell("product_name"),
		Category:          cell("category"),
		ConductorMaterial: cell("conductor_material"),
		ConductorSize:     cell("conductor_size"),
		VoltageRating:     cell("voltage_rating"),
		Standard:          cell("standard_iec"),
	}
	item.UnitPrice = parsePrice(cell("unit_price"), item.SKU, "unit_price")
	item.TestPrice = parsePrice(cell("test_price"), item.SKU, "test_price")
	return item
}

func parsePrice(raw, sku, column string) float64 {
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		log.Printf("[CATALOGUE] Invalid %s %q for SKU %s, using 0", column, raw, sku)
		return 0
	}
	return v
}
