package domain

import "errors"

var (
	// ErrNoRecords is returned when zero RFP records are supplied to a run
	ErrNoRecords = errors.New("no RFP records supplied")

	// ErrEmptyCatalogue is returned when the catalogue snapshot has zero items
	ErrEmptyCatalogue = errors.New("catalogue snapshot is empty")

	// ErrEmptyVocabulary is returned when fitting the similarity index
	// produces an empty feature space (e.g. all catalogue text blank)
	ErrEmptyVocabulary = errors.New("catalogue corpus produced an empty vocabulary")

	// ErrListingUnavailable is returned when the listing source cannot be reached
	ErrListingUnavailable = errors.New("listing source request failed")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrDuplicateSKU is returned when the catalogue CSV repeats a SKU
	ErrDuplicateSKU = errors.New("duplicate SKU in catalogue")
)
