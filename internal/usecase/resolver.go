package usecase

import (
	"math"
	"sort"

	"github.com/rfpmatch/backend/internal/domain"
)

// Priority tier thresholds over match percent. Downstream filtering and
// display depend on these exact boundaries: 50.00 is Medium, 50.01 is High.
const (
	priorityHighAbove   = 50.0
	priorityMediumAbove = 30.0
)

// ScoredMatch is the resolved best match for one similarity row.
type ScoredMatch struct {
	Index    int
	Percent  float64
	Priority domain.Priority
}

// Resolve picks the best catalogue entry from one row of similarity scores.
// Ties on the maximal score resolve to the lowest catalogue index, which
// keeps resolution deterministic for identical inputs.
func Resolve(row []float64) ScoredMatch {
	best := 0
	for i, score := range row {
		if score > row[best] {
			best = i
		}
	}

	percent := toPercent(row[best])
	return ScoredMatch{
		Index:    best,
		Percent:  percent,
		Priority: PriorityFor(percent),
	}
}

// TopK returns at most k candidates ordered by descending score. k is
// clamped to the row length; ties keep catalogue order.
func TopK(row []float64, k int) []ScoredMatch {
	if k <= 0 || len(row) == 0 {
		return nil
	}
	if k > len(row) {
		k = len(row)
	}

	order := make([]int, len(row))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return row[order[a]] > row[order[b]]
	})

	matches := make([]ScoredMatch, 0, k)
	for _, idx := range order[:k] {
		percent := toPercent(row[idx])
		matches = append(matches, ScoredMatch{
			Index:    idx,
			Percent:  percent,
			Priority: PriorityFor(percent),
		})
	}
	return matches
}

// PriorityFor maps a match percent onto its tier. Pure and history-free:
// > 50 High, > 30 Medium, everything at or below 30 Low.
func PriorityFor(percent float64) domain.Priority {
	switch {
	case percent > priorityHighAbove:
		return domain.PriorityHigh
	case percent > priorityMediumAbove:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// toPercent converts a cosine similarity into a percentage rounded to two
// decimals, clamped to [0, 100] against float drift at the top end.
func toPercent(score float64) float64 {
	percent := math.Round(score*100*100) / 100
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}
	return percent
}
