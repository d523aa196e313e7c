// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package topics

import (
	"sort"
)

// Result is the fitted model output: per-document topic probabilities
// and per-topic keyword rankings. Probabilities[i] sums to one for every
// document i with at least one recognized token.
type Result struct {
	Probabilities [][]float64
	Keywords      [][]string
}

// Modeler fits a topic model over documents. Implementations must be
// deterministic for a fixed input.
type Modeler interface {
	FitTransform(docs []Document, nTopics, topKeywords int) (Result, error)
}

// TermFrequencyModeler seeds one topic per high-frequency corpus term
// and scores each document by how much of its mass falls near each seed.
// It is fully deterministic, which the pipeline prefers over sampled
// topic models: identical input produces identical export output.
type TermFrequencyModeler struct{}

// NewTermFrequencyModeler returns the default Modeler.
func NewTermFrequencyModeler() *TermFrequencyModeler {
	return &TermFrequencyModeler{}
}

// FitTransform seeds nTopics topics from the most frequent corpus terms
// (count descending, term ascending on ties), assigns each document a
// probability per topic proportional to its seed-term co-occurrence
// mass, and ranks keywords per topic by within-topic term frequency.
func (m *TermFrequencyModeler) FitTransform(docs []Document, nTopics, topKeywords int) (Result, error) {
	if nTopics < 1 {
		nTopics = 1
	}

	corpus := make(map[string]int)
	for _, doc := range docs {
		for _, tok := range doc.Tokens {
			corpus[tok]++
		}
	}

	seeds := topTerms(corpus, nTopics)
	if len(seeds) == 0 {
		// No usable vocabulary: everything lands in topic zero.
		probs := make([][]float64, len(docs))
		for i := range probs {
			probs[i] = uniformRow(nTopics)
		}
		return Result{Probabilities: probs, Keywords: make([][]string, nTopics)}, nil
	}

	seedIndex := make(map[string]int, len(seeds))
	for i, s := range seeds {
		seedIndex[s] = i
	}

	probs := make([][]float64, len(docs))
	assignments := make([]int, len(docs))
	for i, doc := range docs {
		row := make([]float64, nTopics)
		var mass float64
		for _, tok := range doc.Tokens {
			if topicID, ok := seedIndex[tok]; ok {
				row[topicID]++
				mass++
			}
		}
		if mass == 0 {
			row = uniformRow(nTopics)
		} else {
			for j := range row {
				row[j] /= mass
			}
		}
		probs[i] = row
		assignments[i] = argmax(row)
	}

	// Keywords per topic: term frequency within assigned documents.
	topicTerms := make([]map[string]int, nTopics)
	for i := range topicTerms {
		topicTerms[i] = make(map[string]int)
	}
	for i, doc := range docs {
		counts := topicTerms[assignments[i]]
		for _, tok := range doc.Tokens {
			counts[tok]++
		}
	}
	keywords := make([][]string, nTopics)
	for i, counts := range topicTerms {
		keywords[i] = topTerms(counts, topKeywords)
	}

	return Result{Probabilities: probs, Keywords: keywords}, nil
}

// topTerms returns up to k terms ordered by count descending, then term
// ascending.
func topTerms(counts map[string]int, k int) []string {
	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > k {
		terms = terms[:k]
	}
	return terms
}

func uniformRow(n int) []float64 {
	row := make([]float64, n)
	for i := range row {
		row[i] = 1 / float64(n)
	}
	return row
}

func argmax(row []float64) int {
	best := 0
	for i, v := range row {
		if v > row[best] {
			best = i
		}
	}
	return best
}
