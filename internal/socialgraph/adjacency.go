// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package socialgraph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

// adjacencyGraph is the minimal map-based Graph implementation. It
// carries no algorithm support of its own; Project builds the gonum
// views on demand.
type adjacencyGraph struct {
	attrs map[string]*NodeAttrs
	out   map[string]map[string]*Edge
	in    map[string]map[string]struct{}
	size  int
}

func newAdjacencyGraph() *adjacencyGraph {
	return &adjacencyGraph{
		attrs: make(map[string]*NodeAttrs),
		out:   make(map[string]map[string]*Edge),
		in:    make(map[string]map[string]struct{}),
	}
}

func (g *adjacencyGraph) EnsureNode(id, email string) {
	if _, ok := g.attrs[id]; ok {
		return
	}
	g.attrs[id] = newNodeAttrs(email)
	g.out[id] = make(map[string]*Edge)
	g.in[id] = make(map[string]struct{})
}

func (g *adjacencyGraph) HasNode(id string) bool {
	_, ok := g.attrs[id]
	return ok
}

func (g *adjacencyGraph) Attrs(id string) *NodeAttrs {
	return g.attrs[id]
}

func (g *adjacencyGraph) edge(from, to string, create func() *Edge) *Edge {
	if from == to {
		return nil
	}
	g.EnsureNode(from, "")
	g.EnsureNode(to, "")
	e, ok := g.out[from][to]
	if !ok {
		if create == nil {
			return nil
		}
		e = create()
		g.out[from][to] = e
		g.in[to][from] = struct{}{}
		g.size++
	}
	return e
}

func (g *adjacencyGraph) AddReplyEdge(from, to string) {
	created := false
	e := g.edge(from, to, func() *Edge {
		created = true
		return &Edge{Weight: 1, Type: EdgeReply}
	})
	if e != nil && !created {
		e.Weight++
	}
}

func (g *adjacencyGraph) SetCoParticipation(a, b string, shared int) {
	for _, pair := range [][2]string{{a, b}, {b, a}} {
		e := g.edge(pair[0], pair[1], func() *Edge {
			return &Edge{Type: EdgeCoParticipation}
		})
		if e != nil {
			e.SharedLists = shared
		}
	}
}

func (g *adjacencyGraph) Edge(from, to string) (Edge, bool) {
	if e, ok := g.out[from][to]; ok {
		return *e, true
	}
	return Edge{}, false
}

func (g *adjacencyGraph) HasEdge(from, to string) bool {
	_, ok := g.out[from][to]
	return ok
}

func (g *adjacencyGraph) Nodes() []string {
	ids := make([]string, 0, len(g.attrs))
	for id := range g.attrs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (g *adjacencyGraph) Edges() []EdgeRef {
	refs := make([]EdgeRef, 0, g.size)
	for _, from := range g.Nodes() {
		tos := make([]string, 0, len(g.out[from]))
		for to := range g.out[from] {
			tos = append(tos, to)
		}
		sort.Strings(tos)
		for _, to := range tos {
			refs = append(refs, EdgeRef{From: from, To: to, Edge: *g.out[from][to]})
		}
	}
	return refs
}

func (g *adjacencyGraph) Successors(id string) []string {
	succ := make([]string, 0, len(g.out[id]))
	for to := range g.out[id] {
		succ = append(succ, to)
	}
	sort.Strings(succ)
	return succ
}

func (g *adjacencyGraph) InDegree(id string) int {
	return len(g.in[id])
}

func (g *adjacencyGraph) OutDegree(id string) int {
	return len(g.out[id])
}

func (g *adjacencyGraph) Order() int {
	return len(g.attrs)
}

func (g *adjacencyGraph) Size() int {
	return g.size
}

func (g *adjacencyGraph) Project() Projection {
	ids := g.Nodes()
	index := make(map[string]int64, len(ids))
	for i, id := range ids {
		index[id] = int64(i)
	}

	d := simple.NewWeightedDirectedGraph(0, 0)
	for i := range ids {
		d.AddNode(simple.Node(i))
	}
	edges := g.Edges()
	for _, e := range edges {
		d.SetWeightedEdge(simple.WeightedEdge{
			F: simple.Node(index[e.From]),
			T: simple.Node(index[e.To]),
			W: float64(e.Edge.Weight),
		})
	}

	return Projection{
		Directed:   d,
		Undirected: buildUndirected(index, len(ids), edges),
		IDs:        ids,
		Index:      index,
	}
}
