// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package socialgraph assembles the directed interaction graph over
// resolved person ids: reply edges extracted from thread structure and
// symmetric co-participation edges from shared mailing lists.
//
// Two Graph implementations exist behind one interface — a dense one
// backed by a gonum weighted directed graph and a minimal adjacency-map
// one — selected at construction time. Call sites never branch on the
// backend.
// See docs/ARCHITECTURE § Graph Construction.
package socialgraph

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/JacckNew/ietf-weavers/pkg/types"
)

// EdgeType tags the interaction an edge represents.
type EdgeType string

const (
	// EdgeReply is a directed reply edge derived from thread structure.
	EdgeReply EdgeType = "reply"

	// EdgeCoParticipation is one half of a symmetric shared-mailing-list
	// edge pair. Its weight starts at zero; SharedLists carries the count.
	EdgeCoParticipation EdgeType = "co_participation"
)

// NodeAttrs is the typed attribute record accumulated per person node.
// A node exists in the graph iff at least one individual email from
// that person was observed.
type NodeAttrs struct {
	// Email is the person's primary normalized address.
	Email string

	// EmailCount is the number of individual emails observed.
	EmailCount int

	// FirstEmail and LastEmail bound observed activity. Zero values mean
	// no parseable timestamp was seen.
	FirstEmail time.Time
	LastEmail  time.Time

	// MailingLists is the set of lists the person posted to.
	MailingLists map[string]struct{}
}

func newNodeAttrs(email string) *NodeAttrs {
	return &NodeAttrs{Email: email, MailingLists: make(map[string]struct{})}
}

// ObserveDate widens the first/last activity bounds to include t.
func (n *NodeAttrs) ObserveDate(t time.Time) {
	if n.FirstEmail.IsZero() || t.Before(n.FirstEmail) {
		n.FirstEmail = t
	}
	if n.LastEmail.IsZero() || t.After(n.LastEmail) {
		n.LastEmail = t
	}
}

// AddList records membership of a mailing list.
func (n *NodeAttrs) AddList(list string) {
	n.MailingLists[list] = struct{}{}
}

// Lists returns the mailing lists touched, sorted.
func (n *NodeAttrs) Lists() []string {
	lists := make([]string, 0, len(n.MailingLists))
	for l := range n.MailingLists {
		lists = append(lists, l)
	}
	sort.Strings(lists)
	return lists
}

// ActivityDurationDays returns the whole days between first and last
// observed activity, or 0 when either bound is unknown.
func (n *NodeAttrs) ActivityDurationDays() int {
	if n.FirstEmail.IsZero() || n.LastEmail.IsZero() {
		return 0
	}
	return int(n.LastEmail.Sub(n.FirstEmail).Hours() / 24)
}

// Edge carries the accumulated state of one directed edge. At most one
// edge exists per ordered node pair; a reply edge that also represents
// shared list membership keeps its reply type and gains SharedLists.
type Edge struct {
	Weight      int
	Type        EdgeType
	SharedLists int
}

// EdgeRef is an edge together with its endpoints, for iteration.
type EdgeRef struct {
	From string
	To   string
	Edge Edge
}

// Graph is the directed interaction graph over person ids. Self-loops
// are rejected. Implementations are owned by one pipeline run and are
// not safe for concurrent mutation.
type Graph interface {
	// EnsureNode creates the node if absent. The email is recorded only
	// on creation.
	EnsureNode(id, email string)
	HasNode(id string) bool

	// Attrs returns the mutable attribute record for id, or nil.
	Attrs(id string) *NodeAttrs

	// AddReplyEdge increments the weight of the from→to edge, creating
	// a reply edge of weight 1 if absent.
	AddReplyEdge(from, to string)

	// SetCoParticipation records shared list membership on both edges of
	// the a↔b pair, creating zero-weight co-participation edges where no
	// edge exists yet.
	SetCoParticipation(a, b string, shared int)

	Edge(from, to string) (Edge, bool)
	HasEdge(from, to string) bool

	// Nodes returns all node ids, sorted.
	Nodes() []string

	// Edges returns all edges in deterministic order.
	Edges() []EdgeRef

	// Successors returns the targets of out-edges of id, sorted.
	Successors(id string) []string

	InDegree(id string) int
	OutDegree(id string) int

	// Order and Size return the node and edge counts.
	Order() int
	Size() int

	// Project builds gonum views of the graph for algorithm passes.
	Project() Projection
}

// Projection is a pair of gonum graphs over dense integer ids, plus the
// mapping back to person ids. The undirected view symmetrizes edge
// weights by summing both directions.
type Projection struct {
	Directed   *simple.WeightedDirectedGraph
	Undirected *simple.WeightedUndirectedGraph
	IDs        []string
	Index      map[string]int64
}

// New constructs a Graph for the configured backend. Unknown backends
// fall back to the dense implementation.
func New(backend types.GraphBackend) Graph {
	if backend == types.BackendAdjacency {
		return newAdjacencyGraph()
	}
	return newDenseGraph()
}

// buildUndirected symmetrizes a directed edge set into a gonum
// undirected graph, summing the weights of antiparallel edge pairs.
func buildUndirected(index map[string]int64, n int, edges []EdgeRef) *simple.WeightedUndirectedGraph {
	u := simple.NewWeightedUndirectedGraph(0, 0)
	for i := 0; i < n; i++ {
		u.AddNode(simple.Node(i))
	}

	weights := make(map[[2]int64]float64)
	for _, e := range edges {
		a, b := index[e.From], index[e.To]
		if a > b {
			a, b = b, a
		}
		weights[[2]int64{a, b}] += float64(e.Edge.Weight)
	}
	for pair, w := range weights {
		u.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(pair[0]), T: simple.Node(pair[1]), W: w})
	}
	return u
}
