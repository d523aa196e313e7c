package socialgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JacckNew/ietf-weavers/pkg/types"
)

var backends = map[string]types.GraphBackend{
	"dense":     types.BackendDense,
	"adjacency": types.BackendAdjacency,
}

func TestEnsureNodeAndAttrs(t *testing.T) {
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			g := New(backend)
			g.EnsureNode("person_000001", "alice@example.com")
			g.EnsureNode("person_000001", "other@example.com")

			require.True(t, g.HasNode("person_000001"))
			assert.Equal(t, "alice@example.com", g.Attrs("person_000001").Email,
				"second EnsureNode must not overwrite the email")
			assert.Equal(t, 1, g.Order())
			assert.Nil(t, g.Attrs("person_999999"))
		})
	}
}

func TestAddReplyEdgeAccumulatesWeight(t *testing.T) {
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			g := New(backend)
			g.AddReplyEdge("a", "b")
			g.AddReplyEdge("a", "b")
			g.AddReplyEdge("a", "b")

			e, ok := g.Edge("a", "b")
			require.True(t, ok)
			assert.Equal(t, 3, e.Weight)
			assert.Equal(t, EdgeReply, e.Type)
			assert.False(t, g.HasEdge("b", "a"))
			assert.Equal(t, 1, g.Size())
		})
	}
}

func TestAddReplyEdgeRejectsSelfLoop(t *testing.T) {
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			g := New(backend)
			g.AddReplyEdge("a", "a")
			assert.Equal(t, 0, g.Size())
		})
	}
}

func TestSetCoParticipationIsSymmetric(t *testing.T) {
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			g := New(backend)
			g.SetCoParticipation("a", "b", 2)

			for _, pair := range [][2]string{{"a", "b"}, {"b", "a"}} {
				e, ok := g.Edge(pair[0], pair[1])
				require.True(t, ok, "%v missing", pair)
				assert.Equal(t, 0, e.Weight)
				assert.Equal(t, EdgeCoParticipation, e.Type)
				assert.Equal(t, 2, e.SharedLists)
			}
		})
	}
}

// A reply edge that also represents shared list membership keeps its
// reply type and weight; only SharedLists changes.
func TestCoParticipationDoesNotDowngradeReplyEdge(t *testing.T) {
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			g := New(backend)
			g.AddReplyEdge("a", "b")
			g.SetCoParticipation("a", "b", 3)

			e, _ := g.Edge("a", "b")
			assert.Equal(t, EdgeReply, e.Type)
			assert.Equal(t, 1, e.Weight)
			assert.Equal(t, 3, e.SharedLists)

			back, _ := g.Edge("b", "a")
			assert.Equal(t, EdgeCoParticipation, back.Type)
			assert.Equal(t, 3, back.SharedLists)
		})
	}
}

func TestDegreesAndSuccessors(t *testing.T) {
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			g := New(backend)
			g.AddReplyEdge("a", "b")
			g.AddReplyEdge("a", "c")
			g.AddReplyEdge("c", "b")

			assert.Equal(t, []string{"b", "c"}, g.Successors("a"))
			assert.Equal(t, 2, g.OutDegree("a"))
			assert.Equal(t, 2, g.InDegree("b"))
			assert.Equal(t, 0, g.InDegree("a"))
			assert.Equal(t, []string{"a", "b", "c"}, g.Nodes())
		})
	}
}

func TestEdgesDeterministicOrder(t *testing.T) {
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			g := New(backend)
			g.AddReplyEdge("c", "a")
			g.AddReplyEdge("a", "b")
			g.SetCoParticipation("b", "c", 1)

			refs := g.Edges()
			require.Len(t, refs, 4)
			for i := 1; i < len(refs); i++ {
				prev, cur := refs[i-1], refs[i]
				less := prev.From < cur.From || (prev.From == cur.From && prev.To < cur.To)
				assert.True(t, less, "edges out of order at %d", i)
			}
		})
	}
}

func TestProjectionSymmetrizesWeights(t *testing.T) {
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			g := New(backend)
			g.AddReplyEdge("a", "b")
			g.AddReplyEdge("a", "b")
			g.AddReplyEdge("b", "a")

			p := g.Project()
			require.Len(t, p.IDs, 2)

			ia, ib := p.Index["a"], p.Index["b"]
			w, ok := p.Undirected.Weight(ia, ib)
			require.True(t, ok)
			assert.InDelta(t, 3.0, w, 1e-12, "antiparallel weights must sum")

			dw, ok := p.Directed.Weight(ia, ib)
			require.True(t, ok)
			assert.InDelta(t, 2.0, dw, 1e-12)
		})
	}
}

func TestProjectionRoundTripsIDs(t *testing.T) {
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			g := New(backend)
			for _, id := range []string{"x", "y", "z"} {
				g.EnsureNode(id, id+"@example.com")
			}

			p := g.Project()
			require.Len(t, p.IDs, 3)
			for _, id := range []string{"x", "y", "z"} {
				gid, ok := p.Index[id]
				require.True(t, ok)
				assert.Equal(t, id, p.IDs[gid])
			}
		})
	}
}
