package usecase

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rfpmatch/backend/internal/domain"
)

func TestFitSimilarityIndex_Errors(t *testing.T) {
	t.Run("zero documents", func(t *testing.T) {
		_, err := FitSimilarityIndex(nil)
		if !errors.Is(err, domain.ErrEmptyCatalogue) {
			t.Errorf("expected ErrEmptyCatalogue, got %v", err)
		}
	})

	t.Run("no extractable terms", func(t *testing.T) {
		_, err := FitSimilarityIndex([]string{"", "  ", "a b c"})
		if !errors.Is(err, domain.ErrEmptyVocabulary) {
			t.Errorf("expected ErrEmptyVocabulary, got %v", err)
		}
	})
}

func TestFitSimilarityIndex_SingleDocument(t *testing.T) {
	ix, err := FitSimilarityIndex([]string{"xlpe copper cable"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ix.Size() != 1 {
		t.Errorf("Size() = %d, want 1", ix.Size())
	}
	if ix.VocabularySize() == 0 {
		t.Error("single-document fit must keep a non-empty vocabulary")
	}

	scores := ix.Score([]string{"xlpe copper cable"})
	if got := scores[0][0]; got < 0.999 || got > 1.001 {
		t.Errorf("self-similarity = %v, want ~1.0", got)
	}
}

func TestSimilarityIndex_Score(t *testing.T) {
	docs := []string{
		"xlpe copper power cable",
		"pvc aluminium control cable",
		"fibre optic patch cord",
	}
	ix, err := FitSimilarityIndex(docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("row shape matches catalogue size", func(t *testing.T) {
		scores := ix.Score([]string{"copper cable", "patch cord"})
		if len(scores) != 2 {
			t.Fatalf("got %d rows, want 2", len(scores))
		}
		for i, row := range scores {
			if len(row) != len(docs) {
				t.Errorf("row %d has %d columns, want %d", i, len(row), len(docs))
			}
		}
	})

	t.Run("scores bounded in unit interval", func(t *testing.T) {
		scores := ix.Score([]string{"xlpe copper power cable", "unrelated text", ""})
		for i, row := range scores {
			for j, s := range row {
				if s < 0 || s > 1.0000001 {
					t.Errorf("score[%d][%d] = %v outside [0, 1]", i, j, s)
				}
			}
		}
	})

	t.Run("similar query ranks matching document highest", func(t *testing.T) {
		row := ix.Score([]string{"copper power cable supply"})[0]
		for j := 1; j < len(row); j++ {
			if row[j] >= row[0] {
				t.Errorf("doc 0 should outrank doc %d: %v vs %v", j, row[0], row[j])
			}
		}
	})

	t.Run("query outside vocabulary scores zero everywhere", func(t *testing.T) {
		row := ix.Score([]string{"furniture procurement tender"})[0]
		for j, s := range row {
			if s != 0 {
				t.Errorf("score[%d] = %v, want 0 for out-of-vocabulary query", j, s)
			}
		}
	})
}

func TestSimilarityIndex_Deterministic(t *testing.T) {
	docs := []string{
		"xlpe copper power cable 6 sqmm",
		"pvc aluminium control cable 2.5 sqmm",
		"ht cable 11 kv grade",
		"lt panel board with busbar",
	}
	queries := []string{
		"supply of 6 sqmm copper cable",
		"11 kv ht cable laying",
	}

	first, err := FitSimilarityIndex(docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := FitSimilarityIndex(docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Refitting the same snapshot and rescoring must be bit-identical, not
	// merely close: downstream tie-breaks depend on exact values.
	for run := 0; run < 3; run++ {
		a := first.Score(queries)
		b := second.Score(queries)
		for i := range a {
			for j := range a[i] {
				if a[i][j] != b[i][j] {
					t.Fatalf("run %d: score[%d][%d] differs: %v vs %v", run, i, j, a[i][j], b[i][j])
				}
			}
		}
	}
}

func TestFitSimilarityIndex_UbiquitousTermsExcluded(t *testing.T) {
	// "cable" appears in all 21 documents; the document-frequency cutoff at
	// 95% (19 of 21) must drop it from the vocabulary.
	docs := make([]string, 21)
	for i := range docs {
		docs[i] = fmt.Sprintf("cable variant%02d", i)
	}

	ix, err := FitSimilarityIndex(docs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row := ix.Score([]string{"cable"})[0]
	for j, s := range row {
		if s != 0 {
			t.Errorf("score[%d] = %v, want 0 once ubiquitous term is excluded", j, s)
		}
	}

	// Distinctive terms still resolve.
	row = ix.Score([]string{"variant07"})[0]
	if row[7] <= 0 {
		t.Errorf("distinctive term should score its own document, got %v", row[7])
	}
}
