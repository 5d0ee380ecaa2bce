// Package ml implements the statistical tier: a TF-IDF vectorizer over
// unigrams and bigrams, a one-vs-rest logistic regression classifier, and
// msgpack serialization of the trained artifact.
package ml

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Vectorizer converts normalized text into a fixed-size TF-IDF feature
// vector over unigrams and bigrams. Fit once by the training pipeline, then
// read-only: Transform never mutates state.
type Vectorizer struct {
	Vocabulary  map[string]int `msgpack:"vocabulary"`
	IDF         []float64      `msgpack:"idf"`
	MaxFeatures int            `msgpack:"max_features"`
	MaxDocFrac  float64        `msgpack:"max_doc_frac"`
}

// NewVectorizer creates an unfitted vectorizer. maxFeatures bounds the
// vocabulary size; terms appearing in more than maxDocFrac of the documents
// are dropped as uninformative.
func NewVectorizer(maxFeatures int, maxDocFrac float64) *Vectorizer {
	return &Vectorizer{
		MaxFeatures: maxFeatures,
		MaxDocFrac:  maxDocFrac,
	}
}

// terms emits the unigrams and bigrams of an already-normalized document.
func terms(doc string) []string {
	tokens := strings.Fields(doc)
	out := make([]string, 0, len(tokens)*2)
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// Fit builds the vocabulary and IDF table from the given documents. The
// documents must already be normalized; Fit does not preprocess.
func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return fmt.Errorf("cannot fit vectorizer on zero documents")
	}

	// Document frequency per term.
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, t := range terms(doc) {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			df[t]++
		}
	}
	if len(df) == 0 {
		return fmt.Errorf("documents contain no terms")
	}

	// Drop terms present in more than MaxDocFrac of the documents, unless
	// that would empty the vocabulary (tiny corpora).
	maxDF := int(v.MaxDocFrac * float64(len(docs)))
	if maxDF < 1 {
		maxDF = 1
	}
	kept := make([]string, 0, len(df))
	for t, n := range df {
		if n <= maxDF {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		kept = make([]string, 0, len(df))
		for t := range df {
			kept = append(kept, t)
		}
	}

	// Cap the vocabulary to MaxFeatures, keeping the most frequent terms.
	// Ties are broken lexicographically so the vocabulary is deterministic.
	sort.Slice(kept, func(i, j int) bool {
		if df[kept[i]] != df[kept[j]] {
			return df[kept[i]] > df[kept[j]]
		}
		return kept[i] < kept[j]
	})
	if v.MaxFeatures > 0 && len(kept) > v.MaxFeatures {
		kept = kept[:v.MaxFeatures]
	}
	sort.Strings(kept)

	v.Vocabulary = make(map[string]int, len(kept))
	v.IDF = make([]float64, len(kept))
	n := float64(len(docs))
	for i, t := range kept {
		v.Vocabulary[t] = i
		// Smoothed IDF, as if one extra document contained every term.
		v.IDF[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}

	return nil
}

// Transform maps a normalized document onto the fitted feature space,
// producing an L2-normalized TF-IDF vector. Unknown terms are ignored; a
// document sharing no terms with the vocabulary yields the zero vector.
func (v *Vectorizer) Transform(doc string) ([]float64, error) {
	if len(v.Vocabulary) == 0 {
		return nil, fmt.Errorf("vectorizer is not fitted")
	}

	vec := make([]float64, len(v.IDF))
	for _, t := range terms(doc) {
		if i, ok := v.Vocabulary[t]; ok {
			vec[i] += v.IDF[i]
		}
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}

	return vec, nil
}

// FeatureCount returns the dimensionality of the fitted feature space.
func (v *Vectorizer) FeatureCount() int {
	return len(v.IDF)
}
