// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export assembles the visualization document and writes every
// run artifact: data.json, topic_analysis.json, the identity mapping
// dictionaries, the feature CSV, and the run summary.
// See docs/ARCHITECTURE § Export.
package export

import (
	"math"
	"time"

	"github.com/JacckNew/ietf-weavers/internal/identity"
	"github.com/JacckNew/ietf-weavers/internal/metrics"
	"github.com/JacckNew/ietf-weavers/internal/socialgraph"
	"github.com/JacckNew/ietf-weavers/internal/topics"
	"github.com/JacckNew/ietf-weavers/pkg/types"
)

// infSentinel replaces infinite float values in the JSON output.
// encoding/json rejects IEEE specials, and the front end treats the
// sentinel as "effectively infinite".
const infSentinel = 999999

// Inputs is everything the visualization document is assembled from.
type Inputs struct {
	Graph    socialgraph.Graph
	Resolver *identity.Resolver
	Report   metrics.Report
	Topics   topics.Analysis

	RunID       string
	Version     string
	GeneratedAt time.Time
}

// clean maps IEEE special float values onto JSON-safe numbers: NaN
// becomes zero, infinities become the signed sentinel.
func clean(f float64) float64 {
	switch {
	case math.IsNaN(f):
		return 0
	case math.IsInf(f, 1):
		return infSentinel
	case math.IsInf(f, -1):
		return -infSentinel
	default:
		return f
	}
}

// BuildVisualization produces the complete export document. Node and
// link ordering is deterministic; every float field is sanitized.
func BuildVisualization(in Inputs) types.VisualizationData {
	return types.VisualizationData{
		Nodes:  buildNodes(in),
		Links:  buildLinks(in.Graph),
		Topics: in.Topics.Topics,
		Metadata: types.Metadata{
			Network:     in.Report.Stats,
			Topics:      topicStats(in.Topics),
			GeneratedAt: in.GeneratedAt.UTC().Format(time.RFC3339),
			RunID:       in.RunID,
			Version:     in.Version,
		},
	}
}

func buildNodes(in Inputs) []types.Node {
	r := in.Report
	rows := metrics.IndividualFeatureRows(in.Graph, r)

	nodes := make([]types.Node, 0, len(rows))
	for _, row := range rows {
		attrs := in.Graph.Attrs(row.PersonID)
		node := types.Node{
			ID:    row.PersonID,
			Email: row.Email,
			Name:  in.Resolver.Name(row.PersonID),

			DegreeCentrality:      clean(row.DegreeCentrality),
			BetweennessCentrality: clean(row.BetweennessCentrality),
			ClosenessCentrality:   clean(row.ClosenessCentrality),
			EigenvectorCentrality: clean(row.EigenvectorCentrality),
			PageRank:              clean(row.PageRank),

			Degree:                row.Degree,
			ClusteringCoefficient: clean(row.ClusteringCoefficient),

			EmailCount:           row.EmailCount,
			MailingListsCount:    row.MailingListsCount,
			ActivityDurationDays: row.ActivityDurationDays,

			Group:     row.Community,
			Community: row.Community,

			FirstEmail: formatDate(attrs.FirstEmail),
			LastEmail:  formatDate(attrs.LastEmail),

			MailingLists:           attrs.Lists(),
			TotalInteractionWeight: clean(row.TotalInteractionWeight),
		}
		if entropy, ok := in.Topics.Entropy[row.PersonID]; ok {
			h := clean(entropy)
			node.TopicEntropy = &h
			node.DominantTopics = in.Topics.Dominant[row.PersonID]
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func buildLinks(g socialgraph.Graph) []types.Link {
	rows := metrics.RelationshipFeatureRows(g)
	links := make([]types.Link, 0, len(rows))
	for _, row := range rows {
		links = append(links, types.Link{
			Source:           row.Source,
			Target:           row.Target,
			Weight:           row.Weight,
			Type:             string(row.Type),
			IsReciprocal:     row.IsReciprocal,
			ReciprocalWeight: row.ReciprocalWeight,
			ReciprocityRatio: clean(row.ReciprocityRatio),
			SharedLists:      row.SharedLists,
		})
	}
	return links
}

func topicStats(a topics.Analysis) types.TopicStats {
	stats := types.TopicStats{
		TotalTopics:   len(a.Topics),
		DocumentCount: a.DocumentCount,
	}
	if len(a.Topics) > 0 {
		var keywords int
		for _, t := range a.Topics {
			keywords += len(t.Keywords)
		}
		stats.AvgKeywordsPerTopic = float64(keywords) / float64(len(a.Topics))
	}
	return stats
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
