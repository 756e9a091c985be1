package domain

import (
	"context"
	"time"
)

// ListingSource fetches the current set of procurement notices from the
// hosted RFP listing.
type ListingSource interface {
	FetchRFPs(ctx context.Context) ([]RFP, error)
}

// CatalogueLoader loads one immutable catalogue snapshot for a matching run.
type CatalogueLoader interface {
	Load(ctx context.Context) ([]CatalogueItem, error)
}

// CacheRepository defines the interface for caching listing fetches
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]RFP, error)
	Set(ctx context.Context, key string, records []RFP, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RecordStore persists per-run snapshots of scraped and enriched records.
// Persistence is best-effort: a store failure must not fail the run.
type RecordStore interface {
	SaveScraped(ctx context.Context, records []RFP) error
	SaveEnriched(ctx context.Context, records []EnrichedRFP) error
}

// Notifier delivers a run summary with the rendered proposals
type Notifier interface {
	NotifyRun(ctx context.Context, records []EnrichedRFP, proposals []string) error
}
