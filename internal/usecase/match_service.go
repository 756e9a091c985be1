package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/rfpmatch/backend/internal/domain"
)

// listingCacheKey keys the cached listing fetch. One listing source per
// service instance, so a static key suffices.
const listingCacheKey = "listing:rfps"

// MatchServiceConfig holds configuration for the match service
type MatchServiceConfig struct {
	TopK               int
	IncludeClosed      bool
	MaxRecords         int
	MaxCatalogue       int
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// RunOptions carries per-run overrides for the pipeline.
type RunOptions struct {
	// IncludeClosed overrides the configured closed-status filtering when set.
	IncludeClosed *bool
}

// MatchService runs the matching pipeline: fetch RFPs, load the catalogue
// snapshot, fit the similarity index, resolve best matches and enrich the
// records. The whole run is one forward pass; the fitted index is discarded
// when the run returns.
type MatchService struct {
	listing       domain.ListingSource
	catalogue     domain.CatalogueLoader
	cache         domain.CacheRepository
	topK          int
	includeClosed bool
	maxRecords    int
	maxCatalogue  int
	cacheTTL      time.Duration
	debug         bool
}

// NewMatchService creates a match service with the given dependencies and
// configuration. The cache is optional; pass nil to fetch the listing on
// every run.
func NewMatchService(
	listing domain.ListingSource,
	catalogue domain.CatalogueLoader,
	cache domain.CacheRepository,
	config MatchServiceConfig,
) *MatchService {
	topK := config.TopK
	if topK <= 0 {
		topK = 3
	}

	maxRecords := config.MaxRecords
	if maxRecords <= 0 {
		maxRecords = 500
	}

	maxCatalogue := config.MaxCatalogue
	if maxCatalogue <= 0 {
		maxCatalogue = 2000
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}

	return &MatchService{
		listing:       listing,
		catalogue:     catalogue,
		cache:         cache,
		topK:          topK,
		includeClosed: config.IncludeClosed,
		maxRecords:    maxRecords,
		maxCatalogue:  maxCatalogue,
		cacheTTL:      cacheTTL,
		debug:         config.EnableDebugLogging,
	}
}

// RunPipeline executes one matching run and returns the enriched records in
// listing order. Structural failures (no records, empty catalogue, empty
// vocabulary) abort the run with no partial output; per-record anomalies
// degrade in-band and never block the batch.
func (s *MatchService) RunPipeline(ctx context.Context, opts RunOptions) ([]domain.EnrichedRFP, error) {
	records, err := s.fetchRecords(ctx)
	if err != nil {
		return nil, err
	}

	includeClosed := s.includeClosed
	if opts.IncludeClosed != nil {
		includeClosed = *opts.IncludeClosed
	}
	if !includeClosed {
		records = filterOpen(records)
	}
	if len(records) > s.maxRecords {
		log.Printf("[PIPELINE] Truncating %d records to configured bound %d", len(records), s.maxRecords)
		records = records[:s.maxRecords]
	}
	if len(records) == 0 {
		return nil, domain.ErrNoRecords
	}

	items, err := s.loadCatalogue(ctx)
	if err != nil {
		return nil, err
	}

	enriched, err := s.matchRecords(ctx, records, items)
	if err != nil {
		return nil, err
	}

	log.Printf("[PIPELINE] Run complete: %d records matched against %d catalogue items", len(enriched), len(items))
	return enriched, nil
}

// MatchCandidates scores a single RFP against a fresh catalogue snapshot and
// returns the top-k candidates by descending match percent. k falls back to
// the configured default and is clamped to the catalogue size.
func (s *MatchService) MatchCandidates(ctx context.Context, rfp domain.RFP, k int) ([]domain.Candidate, error) {
	if rfp.Title == "" && rfp.Description == "" {
		return nil, domain.ErrInvalidRequest
	}
	if k <= 0 {
		k = s.topK
	}

	items, err := s.loadCatalogue(ctx)
	if err != nil {
		return nil, err
	}

	ix, err := s.fitIndex(items)
	if err != nil {
		return nil, err
	}

	row := ix.Score([]string{RFPCorpus(rfp)})[0]
	matches := TopK(row, k)

	candidates := make([]domain.Candidate, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, domain.Candidate{
			SKU:         items[m.Index].SKU,
			ProductName: items[m.Index].ProductName,
			Percent:     m.Percent,
			Priority:    m.Priority,
		})
	}
	return candidates, nil
}

// matchRecords fits the index on the catalogue snapshot, scores every record
// and merges each winner back onto its record, preserving input order.
func (s *MatchService) matchRecords(ctx context.Context, records []domain.RFP, items []domain.CatalogueItem) ([]domain.EnrichedRFP, error) {
	ix, err := s.fitIndex(items)
	if err != nil {
		return nil, err
	}

	queries := make([]string, len(records))
	for i, rfp := range records {
		queries[i] = RFPCorpus(rfp)
	}
	scores := ix.Score(queries)

	enriched := make([]domain.EnrichedRFP, 0, len(records))
	for i, rfp := range records {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		match := Resolve(scores[i])
		if s.debug {
			log.Printf("[MATCH] RFP %q -> SKU %s (%.2f%%, %s)",
				rfp.ID, items[match.Index].SKU, match.Percent, match.Priority)
		}
		enriched = append(enriched, EnrichRFP(rfp, items[match.Index], match))
	}
	return enriched, nil
}

// fetchRecords returns the listing records, consulting the cache first when
// one is configured. Cache write failures are logged, never fatal.
func (s *MatchService) fetchRecords(ctx context.Context) ([]domain.RFP, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, listingCacheKey); err == nil && len(cached) > 0 {
			if s.debug {
				log.Printf("[PIPELINE] Listing served from cache (%d records)", len(cached))
			}
			return cached, nil
		}
	}

	records, err := s.listing.FetchRFPs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrListingUnavailable, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, listingCacheKey, records, s.cacheTTL); err != nil {
			log.Printf("[PIPELINE] Failed to cache listing: %v", err)
		}
	}
	return records, nil
}

// loadCatalogue loads and bounds the immutable snapshot for this run.
func (s *MatchService) loadCatalogue(ctx context.Context) ([]domain.CatalogueItem, error) {
	items, err := s.catalogue.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading catalogue: %w", err)
	}
	if len(items) > s.maxCatalogue {
		log.Printf("[PIPELINE] Truncating catalogue of %d items to configured bound %d", len(items), s.maxCatalogue)
		items = items[:s.maxCatalogue]
	}
	if len(items) == 0 {
		return nil, domain.ErrEmptyCatalogue
	}
	return items, nil
}

// fitIndex builds the run-scoped similarity index from the snapshot.
func (s *MatchService) fitIndex(items []domain.CatalogueItem) (*SimilarityIndex, error) {
	docs := make([]string, len(items))
	for i, item := range items {
		docs[i] = CatalogueCorpus(item)
	}

	ix, err := FitSimilarityIndex(docs)
	if err != nil {
		return nil, err
	}
	if s.debug {
		log.Printf("[MATCH] Index fitted: %d documents, %d terms", ix.Size(), ix.VocabularySize())
	}
	return ix, nil
}

// filterOpen drops records whose status marks them closed. Status labels are
// free text, compared case-insensitively.
func filterOpen(records []domain.RFP) []domain.RFP {
	open := make([]domain.RFP, 0, len(records))
	for _, r := range records {
		if strings.EqualFold(strings.TrimSpace(r.Status), "closed") {
			continue
		}
		open = append(open, r)
	}
	return open
}
