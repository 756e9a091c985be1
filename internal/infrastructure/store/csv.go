package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/rfpmatch/backend/internal/domain"
)

// Snapshot file names, one pair per run directory.
const (
	scrapedFileName  = "scraped_rfps.csv"
	enrichedFileName = "matched_rfps.csv"
)

// CSVStore writes per-run CSV snapshots of scraped and enriched records into
// a data directory. Failures are the caller's to log; the pipeline treats
// persistence as best-effort.
type CSVStore struct {
	dir string
}

// NewCSVStore creates a store writing into dir, creating it if needed.
func NewCSVStore(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot directory: %w", err)
	}
	return &CSVStore{dir: dir}, nil
}

// SaveScraped writes the raw listing records snapshot.
func (s *CSVStore) SaveScraped(ctx context.Context, records []domain.RFP) error {
	header := []string{
		"rfp_id", "title", "description", "requirements", "category",
		"organization", "department", "status", "deadline", "issue_date",
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.ID, r.Title, r.Description, r.Requirements, r.Category,
			r.Organization, r.Department, r.Status, r.DeadlineRaw, r.IssueDateRaw,
		})
	}
	return s.write(ctx, scrapedFileName, header, rows)
}

// SaveEnriched writes the matched records snapshot with the merged catalogue
// attributes, in the original generator's column layout.
func (s *CSVStore) SaveEnriched(ctx context.Context, records []domain.EnrichedRFP) error {
	header := []string{
		"rfp_id", "title", "status", "deadline",
		"matched_sku", "matched_product_name", "matched_category", "matched_standard",
		"matched_conductor_material", "matched_conductor_size", "matched_voltage_rating",
		"unit_price", "test_price", "match_percent", "priority", "tech_specs",
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.ID, r.Title, r.Status, r.DeadlineRaw,
			r.MatchedSKU, r.MatchedProductName, r.MatchedCategory, r.MatchedStandard,
			r.MatchedConductorMaterial, r.MatchedConductorSize, r.MatchedVoltageRating,
			formatPrice(r.UnitPrice), formatPrice(r.TestPrice),
			strconv.FormatFloat(r.MatchPercent, 'f', 2, 64),
			string(r.Priority),
			formatSpecs(r.TechSpecs),
		})
	}
	return s.write(ctx, enrichedFileName, header, rows)
}

// write replaces the named snapshot file atomically enough for a single
// writer: write to a temp file, then rename over the target.
func (s *CSVStore) write(ctx context.Context, name string, header []string, rows [][]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating snapshot temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	// CreateTemp opens 0600; snapshots are shared artifacts, so widen before
	// the rename makes the file visible under its final name.
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("setting snapshot permissions: %w", err)
	}

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("writing snapshot header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("writing snapshot rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flushing snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing snapshot temp file: %w", err)
	}

	target := filepath.Join(s.dir, name)
	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("replacing snapshot %s: %w", name, err)
	}
	return nil
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatSpecs flattens the tech-spec mapping into "key=value; ..." cells in
// sorted key order so snapshots diff cleanly.
func formatSpecs(specs map[string]string) string {
	if len(specs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+specs[k])
	}
	return strings.Join(parts, "; ")
}
