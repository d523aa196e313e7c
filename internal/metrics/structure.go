// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"math"

	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/stat"

	"github.com/JacckNew/ietf-weavers/internal/socialgraph"
	"github.com/JacckNew/ietf-weavers/pkg/types"
)

// clusteringCoefficients computes the local clustering coefficient of
// every node over the undirected projection: the fraction of its
// neighbor pairs that are themselves connected.
func clusteringCoefficients(p socialgraph.Projection) map[string]float64 {
	out := make(map[string]float64, len(p.IDs))
	for gid, id := range p.IDs {
		neighbors := neighborIDs(p.Undirected, int64(gid))
		k := len(neighbors)
		if k < 2 {
			out[id] = 0
			continue
		}
		links := 0
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				if p.Undirected.HasEdgeBetween(neighbors[i], neighbors[j]) {
					links++
				}
			}
		}
		out[id] = 2 * float64(links) / float64(k*(k-1))
	}
	return out
}

func neighborIDs(u *simple.WeightedUndirectedGraph, gid int64) []int64 {
	var ids []int64
	it := u.From(gid)
	for it.Next() {
		ids = append(ids, it.Node().ID())
	}
	return ids
}

// structure assembles the whole-network statistics block. Diameter and
// average path length are defined only when the undirected view is a
// single connected component; otherwise both stay nil.
func (e *Engine) structure(g socialgraph.Graph, p socialgraph.Projection, unitU *simple.WeightedUndirectedGraph, r Report) types.NetworkStats {
	n := g.Order()
	m := g.Size()

	stats := types.NetworkStats{
		TotalNodes:  n,
		TotalLinks:  m,
		Communities: r.Communities.Count,
	}
	if n > 0 {
		degrees := make([]float64, 0, n)
		clustering := make([]float64, 0, n)
		for _, id := range g.Nodes() {
			degrees = append(degrees, float64(g.InDegree(id)+g.OutDegree(id)))
			clustering = append(clustering, r.Clustering[id])
		}
		stats.AvgDegree = stat.Mean(degrees, nil)
		stats.AverageClustering = stat.Mean(clustering, nil)
	}
	if n > 1 {
		stats.Density = float64(m) / float64(n*(n-1))
	}
	for _, score := range r.Degree {
		if score > stats.MaxCentrality {
			stats.MaxCentrality = score
		}
	}

	if n > 1 && len(topo.ConnectedComponents(unitU)) == 1 {
		diameter, avg := pathStats(unitU, n)
		stats.Diameter = &diameter
		stats.AvgPathLength = &avg
	}
	return stats
}

// pathStats computes diameter and average shortest path length over a
// connected unit-weight undirected graph.
func pathStats(u *simple.WeightedUndirectedGraph, n int) (diameter, avg float64) {
	all := path.DijkstraAllPaths(u)
	var sum float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			d := all.Weight(int64(i), int64(j))
			if math.IsInf(d, 1) {
				continue
			}
			sum += d
			if d > diameter {
				diameter = d
			}
		}
	}
	avg = sum / float64(n*(n-1))
	return diameter, avg
}
