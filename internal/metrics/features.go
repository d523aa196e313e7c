// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"math"

	"github.com/JacckNew/ietf-weavers/internal/socialgraph"
)

// IndividualFeatures is the flattened per-person feature vector used by
// the CSV export and the network database.
type IndividualFeatures struct {
	PersonID string
	Email    string

	DegreeCentrality      float64
	BetweennessCentrality float64
	ClosenessCentrality   float64
	EigenvectorCentrality float64
	PageRank              float64
	Community             int
	ClusteringCoefficient float64

	InDegree  int
	OutDegree int
	Degree    int

	EmailCount           int
	MailingListsCount    int
	ActivityDurationDays int

	// TotalInteractionWeight sums the weights of all incident edges,
	// incoming and outgoing.
	TotalInteractionWeight float64
}

// IndividualFeatureRows builds one feature row per node, in sorted
// person-id order.
func IndividualFeatureRows(g socialgraph.Graph, r Report) []IndividualFeatures {
	totals := make(map[string]float64, g.Order())
	for _, e := range g.Edges() {
		w := float64(e.Edge.Weight)
		totals[e.From] += w
		totals[e.To] += w
	}

	rows := make([]IndividualFeatures, 0, g.Order())
	for _, id := range g.Nodes() {
		attrs := g.Attrs(id)
		rows = append(rows, IndividualFeatures{
			PersonID:               id,
			Email:                  attrs.Email,
			DegreeCentrality:       r.Degree[id],
			BetweennessCentrality:  r.Betweenness[id],
			ClosenessCentrality:    r.Closeness[id],
			EigenvectorCentrality:  r.Eigenvector.Scores[id],
			PageRank:               r.PageRank[id],
			Community:              r.Communities.Assignments[id],
			ClusteringCoefficient:  r.Clustering[id],
			InDegree:               g.InDegree(id),
			OutDegree:              g.OutDegree(id),
			Degree:                 g.InDegree(id) + g.OutDegree(id),
			EmailCount:             attrs.EmailCount,
			MailingListsCount:      len(attrs.MailingLists),
			ActivityDurationDays:   attrs.ActivityDurationDays(),
			TotalInteractionWeight: totals[id],
		})
	}
	return rows
}

// RelationshipFeatures describes one directed edge with its reciprocity
// profile. ReciprocityRatio is weight over reciprocal weight; a
// one-sided relationship yields +Inf, which the export layer sanitizes.
type RelationshipFeatures struct {
	Source string
	Target string

	Weight      int
	Type        socialgraph.EdgeType
	SharedLists int

	// IsReciprocal reports whether the reverse edge exists at all, even
	// at weight zero.
	IsReciprocal     bool
	ReciprocalWeight int
	ReciprocityRatio float64
}

// RelationshipFeatureRows builds one row per directed edge, in the
// graph's deterministic edge order.
func RelationshipFeatureRows(g socialgraph.Graph) []RelationshipFeatures {
	edges := g.Edges()
	rows := make([]RelationshipFeatures, 0, len(edges))
	for _, e := range edges {
		row := RelationshipFeatures{
			Source:      e.From,
			Target:      e.To,
			Weight:      e.Edge.Weight,
			Type:        e.Edge.Type,
			SharedLists: e.Edge.SharedLists,
		}
		if back, ok := g.Edge(e.To, e.From); ok {
			row.IsReciprocal = true
			row.ReciprocalWeight = back.Weight
		}
		row.ReciprocityRatio = reciprocityRatio(row.Weight, row.ReciprocalWeight)
		rows = append(rows, row)
	}
	return rows
}

func reciprocityRatio(weight, reciprocal int) float64 {
	switch {
	case reciprocal > 0:
		return float64(weight) / float64(reciprocal)
	case weight > 0:
		return math.Inf(1)
	default:
		return 0
	}
}
