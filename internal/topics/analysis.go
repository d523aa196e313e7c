// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package topics

import (
	"fmt"
	"math"
	"sort"

	"github.com/JacckNew/ietf-weavers/internal/identity"
	"github.com/JacckNew/ietf-weavers/pkg/types"
)

// minDocuments is the smallest corpus worth modeling. Below it the
// analysis is a declared no-op rather than a degenerate fit.
const minDocuments = 3

// Analysis is the full topic output for one run. When Empty is true the
// corpus was too small and every other field is zero-valued.
type Analysis struct {
	Empty         bool
	DocumentCount int

	Topics []types.Topic

	// Distributions maps person id to the normalized histogram of their
	// document topic assignments: the share of the person's documents
	// assigned to each topic.
	Distributions map[string][]float64

	// Entropy maps person id to the Shannon entropy (bits) of their
	// distribution. Low entropy means a focused participant.
	Entropy map[string]float64

	// Dominant maps person id to their top topics, probability
	// descending, at most three.
	Dominant map[string][]types.DominantTopic
}

// Analyze fits the model over the documents and derives the per-person
// view. Fewer than three documents produce an Empty analysis; a modeling
// error propagates.
func Analyze(docs []Document, modeler Modeler, resolver *identity.Resolver, cfg types.TopicsConfig) (Analysis, error) {
	if len(docs) < minDocuments {
		return Analysis{Empty: true, DocumentCount: len(docs)}, nil
	}

	result, err := modeler.FitTransform(docs, cfg.NTopics, cfg.TopKeywords)
	if err != nil {
		return Analysis{}, fmt.Errorf("fitting topic model: %w", err)
	}
	if len(result.Probabilities) != len(docs) {
		return Analysis{}, fmt.Errorf("topic model returned %d rows for %d documents", len(result.Probabilities), len(docs))
	}

	nTopics := len(result.Keywords)
	distributions := assignmentHistograms(docs, result.Probabilities, nTopics)

	a := Analysis{
		DocumentCount: len(docs),
		Distributions: distributions,
		Entropy:       make(map[string]float64, len(distributions)),
		Dominant:      make(map[string][]types.DominantTopic, len(distributions)),
	}
	for pid, dist := range distributions {
		a.Entropy[pid] = Entropy(dist)
		a.Dominant[pid] = dominantTopics(dist, 3)
	}
	a.Topics = buildTopics(result.Keywords, distributions, resolver, cfg.TopParticipants)
	return a, nil
}

// assignmentHistograms folds documents into one distribution per
// person. Each document counts once toward its assigned (argmax) topic;
// the counts are normalized by the person's document total. The full
// probability rows stay available in the model Result only.
func assignmentHistograms(docs []Document, probs [][]float64, nTopics int) map[string][]float64 {
	hists := make(map[string][]float64)
	counts := make(map[string]int)
	for i, doc := range docs {
		row, ok := hists[doc.PersonID]
		if !ok {
			row = make([]float64, nTopics)
			hists[doc.PersonID] = row
		}
		row[argmax(probs[i])]++
		counts[doc.PersonID]++
	}
	for pid, row := range hists {
		n := float64(counts[pid])
		for j := range row {
			row[j] /= n
		}
	}
	return hists
}

// Entropy is the Shannon entropy of a probability distribution, in
// bits. Zero-probability entries contribute nothing; a one-hot
// distribution scores exactly zero.
func Entropy(dist []float64) float64 {
	var h float64
	for _, p := range dist {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

// dominantTopics ranks a distribution's entries, probability descending
// then topic id ascending, keeping at most k positive entries.
func dominantTopics(dist []float64, k int) []types.DominantTopic {
	ranked := make([]types.DominantTopic, 0, len(dist))
	for id, p := range dist {
		if p > 0 {
			ranked = append(ranked, types.DominantTopic{TopicID: id, Probability: p})
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Probability != ranked[j].Probability {
			return ranked[i].Probability > ranked[j].Probability
		}
		return ranked[i].TopicID < ranked[j].TopicID
	})
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

// buildTopics assembles the exported topic records: keywords from the
// model, participants ranked by their probability mass on the topic.
func buildTopics(keywords [][]string, distributions map[string][]float64, resolver *identity.Resolver, topParticipants int) []types.Topic {
	pids := make([]string, 0, len(distributions))
	for pid := range distributions {
		pids = append(pids, pid)
	}
	sort.Strings(pids)

	topics := make([]types.Topic, 0, len(keywords))
	for topicID, kws := range keywords {
		participants := make([]types.TopicParticipant, 0, len(pids))
		for _, pid := range pids {
			p := distributions[pid][topicID]
			if p <= 0 {
				continue
			}
			participants = append(participants, types.TopicParticipant{
				PersonID:     pid,
				Name:         resolver.Name(pid),
				Probability:  p,
				PrimaryEmail: resolver.PrimaryEmail(pid),
			})
		}
		sort.SliceStable(participants, func(i, j int) bool {
			return participants[i].Probability > participants[j].Probability
		})
		if topParticipants > 0 && len(participants) > topParticipants {
			participants = participants[:topParticipants]
		}
		topics = append(topics, types.Topic{
			TopicID:         topicID,
			Keywords:        kws,
			TopParticipants: participants,
		})
	}
	return topics
}
