// Package similarity ranks text documents against a query using TF-IDF
// weighting over unigrams and bigrams with cosine similarity. The
// vectorizer is stateless: it is fitted jointly over the corpus plus
// the query on every call, so identical inputs always produce identical
// scores.
package similarity

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

// MaxFeatures caps the vocabulary at the most frequent terms across the
// fitted documents. Ties are broken alphabetically.
const MaxFeatures = 6000

var tokenPattern = regexp.MustCompile(`\w\w+`)

// Tokenize lowercases text and extracts word tokens of at least two
// word characters, dropping English stop words.
func Tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if englishStopWords[t] {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// ngramCounts returns term counts for the unigrams and bigrams of the
// stop-word-filtered token sequence. Bigram terms join adjacent tokens
// with a single space.
func ngramCounts(text string) map[string]int {
	tokens := Tokenize(text)
	counts := make(map[string]int, len(tokens)*2)
	for i, t := range tokens {
		counts[t]++
		if i+1 < len(tokens) {
			counts[t+" "+tokens[i+1]]++
		}
	}
	return counts
}

// Similarities fits a TF-IDF model over the corpus plus the query and
// returns the cosine similarity of the query against every corpus
// document, index-aligned with the corpus. Scores are in [0,1]. An
// empty corpus yields an empty slice.
func Similarities(corpus []string, query string) []float64 {
	if len(corpus) == 0 {
		return nil
	}

	docs := make([]map[string]int, 0, len(corpus)+1)
	for _, text := range corpus {
		docs = append(docs, ngramCounts(text))
	}
	docs = append(docs, ngramCounts(query))

	vocab, idf := fit(docs)

	queryVec := vectorize(docs[len(docs)-1], vocab, idf)
	scores := make([]float64, len(corpus))
	for i := range corpus {
		scores[i] = dot(queryVec, vectorize(docs[i], vocab, idf))
	}
	return scores
}

// fit builds the capped vocabulary and smoothed idf weights over the
// given documents: idf(t) = ln((1+N)/(1+df(t))) + 1.
func fit(docs []map[string]int) (map[string]int, []float64) {
	df := make(map[string]int)
	total := make(map[string]int)
	for _, doc := range docs {
		for term, n := range doc {
			df[term]++
			total[term] += n
		}
	}

	terms := make([]string, 0, len(total))
	for term := range total {
		terms = append(terms, term)
	}
	// Most frequent terms first; alphabetical among equals, which keeps
	// the vocabulary cut deterministic.
	sort.Slice(terms, func(i, j int) bool {
		if total[terms[i]] != total[terms[j]] {
			return total[terms[i]] > total[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > MaxFeatures {
		terms = terms[:MaxFeatures]
	}

	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		vocab[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return vocab, idf
}

// vectorize maps term counts into the fitted vocabulary as an
// L2-normalized sparse vector keyed by vocabulary index.
func vectorize(counts map[string]int, vocab map[string]int, idf []float64) map[int]float64 {
	vec := make(map[int]float64, len(counts))
	var norm float64
	for term, n := range counts {
		idx, ok := vocab[term]
		if !ok {
			continue
		}
		w := float64(n) * idf[idx]
		vec[idx] = w
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for idx, w := range vec {
		vec[idx] = w / norm
	}
	return vec
}

// dot computes the inner product of two L2-normalized sparse vectors,
// i.e. their cosine similarity.
func dot(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for idx, w := range a {
		sum += w * b[idx]
	}
	return sum
}
