package usecase

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/rfpmatch/backend/internal/domain"
)

// Package-level compiled regex for term splitting
var nonAlphanumericSplitRegex = regexp.MustCompile(`[^a-z0-9]+`)

// maxDocFreqShare excludes terms present in more than this share of catalogue
// documents; terms that common carry no discriminating weight.
const maxDocFreqShare = 0.95

// termWeight is one dimension of a sparse vector. Vectors are kept sorted by
// term index so every float accumulation runs in a fixed order: scoring the
// same snapshot and query twice must be bit-identical.
type termWeight struct {
	index  int
	weight float64
}

// SimilarityIndex is a TF-IDF vector space fitted over one catalogue
// snapshot. The vocabulary is derived solely from the catalogue corpus at fit
// time, so query terms the catalogue never mentions contribute zero weight:
// the catalogue defines the feature space. An index is run-scoped, fitted
// once per run and discarded, never shared across snapshots.
type SimilarityIndex struct {
	vocabulary []string       // sorted for reproducible dimension order
	termIndex  map[string]int // term -> position in vocabulary
	idf        []float64
	docVectors [][]termWeight // l2-normalized catalogue vectors
}

// FitSimilarityIndex builds the vector space from the catalogue corpus.
// Unigrams and bigrams are weighted by smoothed inverse document frequency
// and every document vector is unit-normalized, so scoring reduces to a dot
// product. Fitting zero documents or a corpus whose every term is filtered
// out is a structural failure, not a degenerate index.
func FitSimilarityIndex(docs []string) (*SimilarityIndex, error) {
	if len(docs) == 0 {
		return nil, domain.ErrEmptyCatalogue
	}

	docTerms := make([][]string, len(docs))
	docFreq := make(map[string]int)
	for i, doc := range docs {
		docTerms[i] = extractTerms(doc)
		for _, term := range uniqueTerms(docTerms[i]) {
			docFreq[term]++
		}
	}

	// Document-count cutoff for ubiquitous terms. Floored at one document so
	// a single-item catalogue still fits: with one document every term is in
	// 100% of documents and a literal >95% rule would empty the vocabulary.
	limit := int(maxDocFreqShare * float64(len(docs)))
	if limit < 1 {
		limit = 1
	}

	vocabulary := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if df <= limit {
			vocabulary = append(vocabulary, term)
		}
	}
	if len(vocabulary) == 0 {
		return nil, domain.ErrEmptyVocabulary
	}
	sort.Strings(vocabulary)

	termIndex := make(map[string]int, len(vocabulary))
	for i, term := range vocabulary {
		termIndex[term] = i
	}

	// Smoothed IDF, matching the fit semantics the scoring thresholds were
	// tuned against: ln((1+n)/(1+df)) + 1.
	n := float64(len(docs))
	idf := make([]float64, len(vocabulary))
	for i, term := range vocabulary {
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	ix := &SimilarityIndex{
		vocabulary: vocabulary,
		termIndex:  termIndex,
		idf:        idf,
	}

	ix.docVectors = make([][]termWeight, len(docs))
	for i, terms := range docTerms {
		ix.docVectors[i] = ix.vectorize(terms)
	}

	return ix, nil
}

// Size returns the number of catalogue documents the index was fitted on.
func (ix *SimilarityIndex) Size() int {
	return len(ix.docVectors)
}

// VocabularySize returns the dimensionality of the fitted vector space.
func (ix *SimilarityIndex) VocabularySize() int {
	return len(ix.vocabulary)
}

// Score projects each query into the fitted vocabulary and returns cosine
// similarities against every catalogue vector. The result has one row per
// query with len == Size(), each value in [0, 1]. Queries sharing no
// vocabulary terms with the catalogue score 0 across the row.
func (ix *SimilarityIndex) Score(queries []string) [][]float64 {
	scores := make([][]float64, len(queries))
	for i, query := range queries {
		queryVec := ix.vectorize(extractTerms(query))
		row := make([]float64, len(ix.docVectors))
		for j, docVec := range ix.docVectors {
			row[j] = dotSparse(queryVec, docVec)
		}
		scores[i] = row
	}
	return scores
}

// vectorize builds an l2-normalized tf-idf vector over the fitted vocabulary,
// sorted by term index. Terms outside the vocabulary are dropped.
func (ix *SimilarityIndex) vectorize(terms []string) []termWeight {
	counts := make(map[int]float64)
	for _, term := range terms {
		if idx, ok := ix.termIndex[term]; ok {
			counts[idx]++
		}
	}

	vec := make([]termWeight, 0, len(counts))
	for idx, count := range counts {
		vec = append(vec, termWeight{index: idx, weight: count * ix.idf[idx]})
	}
	sort.Slice(vec, func(a, b int) bool { return vec[a].index < vec[b].index })

	var sumSquares float64
	for _, tw := range vec {
		sumSquares += tw.weight * tw.weight
	}
	if sumSquares == 0 {
		return vec
	}

	norm := math.Sqrt(sumSquares)
	for i := range vec {
		vec[i].weight /= norm
	}
	return vec
}

// dotSparse computes the dot product of two index-sorted sparse vectors by
// linear merge.
func dotSparse(a, b []termWeight) float64 {
	var sum float64
	for i, j := 0, 0; i < len(a) && j < len(b); {
		switch {
		case a[i].index < b[j].index:
			i++
		case a[i].index > b[j].index:
			j++
		default:
			sum += a[i].weight * b[j].weight
			i++
			j++
		}
	}
	return sum
}

// extractTerms tokenizes text into unigrams and bigrams. Tokens are
// lowercased alphanumeric words of at least two characters; bigrams are
// formed over the surviving token sequence.
func extractTerms(text string) []string {
	words := nonAlphanumericSplitRegex.Split(strings.ToLower(text), -1)

	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) >= 2 {
			tokens = append(tokens, w)
		}
	}

	terms := make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// uniqueTerms deduplicates a term list for document-frequency counting.
func uniqueTerms(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	unique := make([]string, 0, len(terms))
	for _, t := range terms {
		if !seen[t] {
			seen[t] = true
			unique = append(unique, t)
		}
	}
	return unique
}
