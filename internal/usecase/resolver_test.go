package usecase

import (
	"testing"

	"github.com/rfpmatch/backend/internal/domain"
)

func TestPriorityFor(t *testing.T) {
	testCases := []struct {
		name    string
		percent float64
		want    domain.Priority
	}{
		{"just above high boundary", 50.01, domain.PriorityHigh},
		{"exactly on high boundary", 50.00, domain.PriorityMedium},
		{"just above medium boundary", 30.01, domain.PriorityMedium},
		{"exactly on medium boundary", 30.00, domain.PriorityLow},
		{"well below boundaries", 12.5, domain.PriorityLow},
		{"zero", 0, domain.PriorityLow},
		{"full score", 100, domain.PriorityHigh},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PriorityFor(tc.percent); got != tc.want {
				t.Errorf("PriorityFor(%v) = %q, want %q", tc.percent, got, tc.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	testCases := []struct {
		name        string
		row         []float64
		wantIndex   int
		wantPercent float64
	}{
		{
			name:        "picks maximal score",
			row:         []float64{0.12, 0.84656, 0.3},
			wantIndex:   1,
			wantPercent: 84.66,
		},
		{
			name:        "tie resolves to lowest index",
			row:         []float64{0.2, 0.5, 0.5, 0.1},
			wantIndex:   1,
			wantPercent: 50.00,
		},
		{
			name:        "all-zero row still resolves",
			row:         []float64{0, 0, 0},
			wantIndex:   0,
			wantPercent: 0,
		},
		{
			name:        "single entry",
			row:         []float64{0.999999},
			wantIndex:   0,
			wantPercent: 100,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Resolve(tc.row)
			if got.Index != tc.wantIndex {
				t.Errorf("Index = %d, want %d", got.Index, tc.wantIndex)
			}
			if got.Percent != tc.wantPercent {
				t.Errorf("Percent = %v, want %v", got.Percent, tc.wantPercent)
			}
			if want := PriorityFor(tc.wantPercent); got.Priority != want {
				t.Errorf("Priority = %q, want %q", got.Priority, want)
			}
		})
	}
}

func TestTopK(t *testing.T) {
	row := []float64{0.1, 0.6, 0.3, 0.6, 0.05}

	t.Run("orders by descending score with stable ties", func(t *testing.T) {
		got := TopK(row, 3)
		if len(got) != 3 {
			t.Fatalf("got %d matches, want 3", len(got))
		}
		wantIndexes := []int{1, 3, 2}
		for i, want := range wantIndexes {
			if got[i].Index != want {
				t.Errorf("match %d has index %d, want %d", i, got[i].Index, want)
			}
		}
	})

	t.Run("k clamped to row length", func(t *testing.T) {
		got := TopK(row, 50)
		if len(got) != len(row) {
			t.Errorf("got %d matches, want %d", len(got), len(row))
		}
	})

	t.Run("non-positive k yields nothing", func(t *testing.T) {
		if got := TopK(row, 0); got != nil {
			t.Errorf("TopK(row, 0) = %v, want nil", got)
		}
		if got := TopK(row, -1); got != nil {
			t.Errorf("TopK(row, -1) = %v, want nil", got)
		}
	})

	t.Run("empty row yields nothing", func(t *testing.T) {
		if got := TopK(nil, 3); got != nil {
			t.Errorf("TopK(nil, 3) = %v, want nil", got)
		}
	})
}
