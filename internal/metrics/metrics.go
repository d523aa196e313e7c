// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics computes node centralities, community structure, and
// whole-network statistics over the interaction graph. Best-effort
// computations (eigenvector centrality, Louvain) return typed results
// that carry their own success flag instead of failing the run.
// See docs/ARCHITECTURE § Metrics.
package metrics

import (
	"gonum.org/v1/gonum/graph/simple"

	"github.com/JacckNew/ietf-weavers/internal/socialgraph"
	"github.com/JacckNew/ietf-weavers/pkg/types"
)

// Report is the full metrics output for one graph. All per-node maps
// are keyed by person id and cover every node.
type Report struct {
	Degree      map[string]float64
	Betweenness map[string]float64
	Closeness   map[string]float64
	PageRank    map[string]float64
	Eigenvector EigenvectorResult
	Communities CommunityResult
	Clustering  map[string]float64
	Stats       types.NetworkStats
}

// Engine runs the metrics passes. It holds the tunables that differ
// between production and test runs.
type Engine struct {
	damping       float64
	tolerance     float64
	maxIterations int
}

// NewEngine returns an Engine with the standard PageRank damping and
// power-iteration settings.
func NewEngine() *Engine {
	return &Engine{
		damping:       0.85,
		tolerance:     1e-6,
		maxIterations: 1000,
	}
}

// Compute projects the graph once and runs every metrics pass over the
// shared projection.
func (e *Engine) Compute(g socialgraph.Graph) Report {
	p := g.Project()
	unitD := unitDirected(p)
	unitU := unitUndirected(p)

	r := Report{
		Degree:      degreeCentrality(g),
		Betweenness: e.betweenness(p, unitD),
		Closeness:   e.closeness(p, unitD),
		PageRank:    e.pageRank(p),
		Eigenvector: e.eigenvector(g),
		Communities: e.communities(p),
		Clustering:  clusteringCoefficients(p),
	}
	r.Stats = e.structure(g, p, unitU, r)
	return r
}

// unitDirected copies the directed projection with all edge weights set
// to one. Path-based metrics treat reply counts as tie strength, not
// distance.
func unitDirected(p socialgraph.Projection) *simple.WeightedDirectedGraph {
	d := simple.NewWeightedDirectedGraph(0, 0)
	for i := range p.IDs {
		d.AddNode(simple.Node(i))
	}
	edges := p.Directed.WeightedEdges()
	for edges.Next() {
		e := edges.WeightedEdge()
		d.SetWeightedEdge(simple.WeightedEdge{F: e.From(), T: e.To(), W: 1})
	}
	return d
}

func unitUndirected(p socialgraph.Projection) *simple.WeightedUndirectedGraph {
	u := simple.NewWeightedUndirectedGraph(0, 0)
	for i := range p.IDs {
		u.AddNode(simple.Node(i))
	}
	edges := p.Undirected.WeightedEdges()
	for edges.Next() {
		e := edges.WeightedEdge()
		u.SetWeightedEdge(simple.WeightedEdge{F: e.From(), T: e.To(), W: 1})
	}
	return u
}
