// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package socialgraph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

// denseGraph keeps topology in a live gonum weighted directed graph so
// Project hands the metrics engine the native structure. Edge state and
// node attributes live in side maps keyed by person id.
type denseGraph struct {
	attrs map[string]*NodeAttrs
	edges map[[2]string]*Edge
	wg    *simple.WeightedDirectedGraph
	index map[string]int64
	ids   []string
}

func newDenseGraph() *denseGraph {
	return &denseGraph{
		attrs: make(map[string]*NodeAttrs),
		edges: make(map[[2]string]*Edge),
		wg:    simple.NewWeightedDirectedGraph(0, 0),
		index: make(map[string]int64),
	}
}

func (g *denseGraph) EnsureNode(id, email string) {
	if _, ok := g.attrs[id]; ok {
		return
	}
	g.attrs[id] = newNodeAttrs(email)
	gid := int64(len(g.ids))
	g.index[id] = gid
	g.ids = append(g.ids, id)
	g.wg.AddNode(simple.Node(gid))
}

func (g *denseGraph) HasNode(id string) bool {
	_, ok := g.attrs[id]
	return ok
}

func (g *denseGraph) Attrs(id string) *NodeAttrs {
	return g.attrs[id]
}

func (g *denseGraph) setWeight(from, to string, w float64) {
	g.wg.SetWeightedEdge(simple.WeightedEdge{
		F: simple.Node(g.index[from]),
		T: simple.Node(g.index[to]),
		W: w,
	})
}

func (g *denseGraph) AddReplyEdge(from, to string) {
	if from == to {
		return
	}
	g.EnsureNode(from, "")
	g.EnsureNode(to, "")

	key := [2]string{from, to}
	if e, ok := g.edges[key]; ok {
		e.Weight++
		g.setWeight(from, to, float64(e.Weight))
		return
	}
	g.edges[key] = &Edge{Weight: 1, Type: EdgeReply}
	g.setWeight(from, to, 1)
}

func (g *denseGraph) SetCoParticipation(a, b string, shared int) {
	if a == b {
		return
	}
	g.EnsureNode(a, "")
	g.EnsureNode(b, "")

	for _, pair := range [][2]string{{a, b}, {b, a}} {
		if e, ok := g.edges[pair]; ok {
			e.SharedLists = shared
			continue
		}
		g.edges[pair] = &Edge{Type: EdgeCoParticipation, SharedLists: shared}
		g.setWeight(pair[0], pair[1], 0)
	}
}

func (g *denseGraph) Edge(from, to string) (Edge, bool) {
	if e, ok := g.edges[[2]string{from, to}]; ok {
		return *e, true
	}
	return Edge{}, false
}

func (g *denseGraph) HasEdge(from, to string) bool {
	_, ok := g.edges[[2]string{from, to}]
	return ok
}

func (g *denseGraph) Nodes() []string {
	ids := append([]string(nil), g.ids...)
	sort.Strings(ids)
	return ids
}

func (g *denseGraph) Edges() []EdgeRef {
	keys := make([][2]string, 0, len(g.edges))
	for key := range g.edges {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})

	refs := make([]EdgeRef, 0, len(keys))
	for _, key := range keys {
		refs = append(refs, EdgeRef{From: key[0], To: key[1], Edge: *g.edges[key]})
	}
	return refs
}

func (g *denseGraph) Successors(id string) []string {
	gid, ok := g.index[id]
	if !ok {
		return nil
	}
	var succ []string
	it := g.wg.From(gid)
	for it.Next() {
		succ = append(succ, g.ids[it.Node().ID()])
	}
	sort.Strings(succ)
	return succ
}

func (g *denseGraph) InDegree(id string) int {
	gid, ok := g.index[id]
	if !ok {
		return 0
	}
	return g.wg.To(gid).Len()
}

func (g *denseGraph) OutDegree(id string) int {
	gid, ok := g.index[id]
	if !ok {
		return 0
	}
	return g.wg.From(gid).Len()
}

func (g *denseGraph) Order() int {
	return len(g.attrs)
}

func (g *denseGraph) Size() int {
	return len(g.edges)
}

func (g *denseGraph) Project() Projection {
	index := make(map[string]int64, len(g.index))
	for id, gid := range g.index {
		index[id] = gid
	}
	ids := append([]string(nil), g.ids...)

	return Projection{
		Directed:   g.wg,
		Undirected: buildUndirected(index, len(ids), g.Edges()),
		IDs:        ids,
		Index:      index,
	}
}
