// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"math"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/JacckNew/ietf-weavers/internal/socialgraph"
)

// degreeCentrality is (in-degree + out-degree) / (n - 1). Single-node
// and empty graphs score everything zero.
func degreeCentrality(g socialgraph.Graph) map[string]float64 {
	nodes := g.Nodes()
	out := make(map[string]float64, len(nodes))
	n := len(nodes)
	for _, id := range nodes {
		if n > 1 {
			out[id] = float64(g.InDegree(id)+g.OutDegree(id)) / float64(n-1)
		} else {
			out[id] = 0
		}
	}
	return out
}

// betweenness runs Brandes over the unit-weight directed view and
// normalizes by 1/((n-1)(n-2)).
func (e *Engine) betweenness(p socialgraph.Projection, unit *simple.WeightedDirectedGraph) map[string]float64 {
	out := make(map[string]float64, len(p.IDs))
	for _, id := range p.IDs {
		out[id] = 0
	}
	n := len(p.IDs)
	if n < 3 {
		return out
	}

	scale := 1 / float64((n-1)*(n-2))
	for gid, score := range network.Betweenness(unit) {
		out[p.IDs[gid]] = score * scale
	}
	return out
}

// closeness computes Wasserman-Faust closeness on incoming distances:
// nodes that many others can reach quickly score high. Per node v with
// r-1 nodes able to reach it over total distance s,
//
//	c(v) = ((r-1)/(n-1)) * ((r-1)/s)
//
// which degrades gracefully on disconnected graphs.
func (e *Engine) closeness(p socialgraph.Projection, unit *simple.WeightedDirectedGraph) map[string]float64 {
	out := make(map[string]float64, len(p.IDs))
	n := len(p.IDs)
	if n < 2 {
		for _, id := range p.IDs {
			out[id] = 0
		}
		return out
	}

	all := path.DijkstraAllPaths(unit)
	for v := range p.IDs {
		var sum float64
		reached := 0
		for u := range p.IDs {
			if u == v {
				continue
			}
			d := all.Weight(int64(u), int64(v))
			if math.IsInf(d, 1) {
				continue
			}
			sum += d
			reached++
		}
		if reached == 0 || sum == 0 {
			out[p.IDs[v]] = 0
			continue
		}
		frac := float64(reached) / float64(n-1)
		out[p.IDs[v]] = frac * float64(reached) / sum
	}
	return out
}

// pageRank runs gonum's PageRank over the weighted directed projection.
func (e *Engine) pageRank(p socialgraph.Projection) map[string]float64 {
	out := make(map[string]float64, len(p.IDs))
	if len(p.IDs) == 0 {
		return out
	}
	for gid, score := range network.PageRank(p.Directed, e.damping, e.tolerance) {
		out[p.IDs[gid]] = score
	}
	return out
}

// EigenvectorResult carries eigenvector centrality scores along with
// whether power iteration converged. On non-convergence the scores are
// all zero and Converged is false; callers decide what that means.
type EigenvectorResult struct {
	Scores     map[string]float64
	Converged  bool
	Iterations int
}

// eigenvector runs power iteration on the weighted adjacency structure:
// a node scores high when highly scored nodes reply to it. L2
// normalization each round; convergence when no component moves more
// than the tolerance.
func (e *Engine) eigenvector(g socialgraph.Graph) EigenvectorResult {
	nodes := g.Nodes()
	zero := func() map[string]float64 {
		scores := make(map[string]float64, len(nodes))
		for _, id := range nodes {
			scores[id] = 0
		}
		return scores
	}
	if len(nodes) == 0 {
		return EigenvectorResult{Scores: zero(), Converged: true}
	}

	x := make(map[string]float64, len(nodes))
	start := 1 / math.Sqrt(float64(len(nodes)))
	for _, id := range nodes {
		x[id] = start
	}

	for iter := 1; iter <= e.maxIterations; iter++ {
		next := make(map[string]float64, len(nodes))
		for _, from := range nodes {
			for _, to := range g.Successors(from) {
				edge, _ := g.Edge(from, to)
				next[to] += x[from] * float64(edge.Weight)
			}
		}

		var norm float64
		for _, id := range nodes {
			norm += next[id] * next[id]
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			// No weighted edges to propagate over.
			return EigenvectorResult{Scores: zero(), Converged: false, Iterations: iter}
		}

		converged := true
		for _, id := range nodes {
			next[id] /= norm
			if math.Abs(next[id]-x[id]) > e.tolerance {
				converged = false
			}
		}
		x = next
		if converged {
			return EigenvectorResult{Scores: x, Converged: true, Iterations: iter}
		}
	}
	return EigenvectorResult{Scores: zero(), Converged: false, Iterations: e.maxIterations}
}
