// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package metrics

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/JacckNew/ietf-weavers/internal/socialgraph"
)

// CommunityResult carries the Louvain assignment along with whether the
// detection actually ran. When the graph is empty or carries no positive
// edge weight, Louvain is skipped: every node lands in community 0 and
// Fallback is true.
type CommunityResult struct {
	Assignments map[string]int
	Count       int
	Modularity  float64
	Fallback    bool
}

// communities runs Louvain modularity maximization on the undirected
// projection. Community numbering is deterministic: communities are
// ordered by their smallest member's graph id.
func (e *Engine) communities(p socialgraph.Projection) CommunityResult {
	assignments := make(map[string]int, len(p.IDs))
	for _, id := range p.IDs {
		assignments[id] = 0
	}

	fallback := CommunityResult{Assignments: assignments, Fallback: true}
	if len(p.IDs) > 0 {
		fallback.Count = 1
	}
	if len(p.IDs) == 0 || !hasPositiveWeight(p) {
		return fallback
	}

	groups, ok := modularize(p)
	if !ok {
		return fallback
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i][0].ID() < groups[j][0].ID() })
	for number, members := range groups {
		for _, node := range members {
			assignments[p.IDs[node.ID()]] = number
		}
	}

	return CommunityResult{
		Assignments: assignments,
		Count:       len(groups),
		Modularity:  community.Q(p.Undirected, groups, 1.0),
	}
}

// modularize wraps the Louvain call; degenerate inputs that panic
// inside gonum are reported as a failed detection instead.
func modularize(p socialgraph.Projection) (groups [][]graph.Node, ok bool) {
	defer func() {
		if recover() != nil {
			groups, ok = nil, false
		}
	}()

	reduced := community.Modularize(p.Undirected, 1.0, nil)
	for _, comm := range reduced.Communities() {
		members := make([]graph.Node, 0, len(comm))
		for _, node := range comm {
			members = append(members, simple.Node(node.ID()))
		}
		sort.Slice(members, func(i, j int) bool { return members[i].ID() < members[j].ID() })
		groups = append(groups, members)
	}
	return groups, len(groups) > 0
}

func hasPositiveWeight(p socialgraph.Projection) bool {
	edges := p.Undirected.WeightedEdges()
	for edges.Next() {
		if edges.WeightedEdge().Weight() > 0 {
			return true
		}
	}
	return false
}
