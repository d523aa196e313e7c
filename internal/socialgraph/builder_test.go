package socialgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JacckNew/ietf-weavers/internal/identity"
	"github.com/JacckNew/ietf-weavers/internal/mailparse"
	"github.com/JacckNew/ietf-weavers/pkg/types"
)

func newTestBuilder(t *testing.T, backend types.GraphBackend) *Builder {
	t.Helper()
	parser, err := mailparse.New(nil, nil)
	require.NoError(t, err)
	return NewBuilder(parser, identity.NewResolver(), New(backend))
}

func TestAddEmailDropsNonIndividuals(t *testing.T) {
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			b := newTestBuilder(t, backend)
			b.AddEmail(types.Email{From: "noreply@ietf.org", MessageID: "<1@x>"})
			b.AddEmail(types.Email{From: "chair@ietf.org", MessageID: "<2@x>"})
			b.AddEmail(types.Email{From: "not-an-address", MessageID: "<3@x>"})
			b.AddEmail(types.Email{From: "alice@example.com", MessageID: "<4@x>"})

			assert.Equal(t, 3, b.Dropped())
			assert.Equal(t, 1, b.Graph().Order())
			assert.Equal(t, 1, b.Threads().Len(), "dropped senders must not enter threads")
		})
	}
}

func TestAddEmailAccumulatesNodeAttrs(t *testing.T) {
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			b := newTestBuilder(t, backend)
			b.AddEmail(types.Email{
				From: "Alice <alice@example.com>", MessageID: "<1@x>",
				Date: "2024-01-01T00:00:00Z", MailingList: "quic",
			})
			b.AddEmail(types.Email{
				From: "alice@example.com", MessageID: "<2@x>",
				Date: "2024-03-01T00:00:00Z", MailingList: "tls",
			})

			pids := b.Graph().Nodes()
			require.Len(t, pids, 1, "display-name variant must resolve to the same person")

			attrs := b.Graph().Attrs(pids[0])
			assert.Equal(t, "alice@example.com", attrs.Email)
			assert.Equal(t, 2, attrs.EmailCount)
			assert.Equal(t, []string{"quic", "tls"}, attrs.Lists())
			assert.Equal(t, 60, attrs.ActivityDurationDays())
		})
	}
}

// C replies to B replies to A: exactly two reply edges, replier to
// original author, and no transitive C to A edge.
func TestBuildInteractionGraphDirectRepliesOnly(t *testing.T) {
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			b := newTestBuilder(t, backend)
			b.AddEmail(types.Email{From: "alice@example.com", MessageID: "<a@x>"})
			b.AddEmail(types.Email{From: "bob@example.com", MessageID: "<b@x>", InReplyTo: "<a@x>"})
			b.AddEmail(types.Email{From: "carol@example.com", MessageID: "<c@x>", InReplyTo: "<b@x>"})
			b.BuildInteractionGraph()

			g := b.Graph()
			alice, _ := b.resolver.PersonFor("alice@example.com")
			bob, _ := b.resolver.PersonFor("bob@example.com")
			carol, _ := b.resolver.PersonFor("carol@example.com")

			assert.True(t, g.HasEdge(bob, alice))
			assert.True(t, g.HasEdge(carol, bob))
			assert.False(t, g.HasEdge(carol, alice))
			assert.False(t, g.HasEdge(alice, bob), "edges point replier to author")
			assert.Equal(t, 2, g.Size())
		})
	}
}

func TestBuildInteractionGraphRepeatedRepliesAddWeight(t *testing.T) {
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			b := newTestBuilder(t, backend)
			b.AddEmail(types.Email{From: "alice@example.com", MessageID: "<a1@x>"})
			b.AddEmail(types.Email{From: "alice@example.com", MessageID: "<a2@x>"})
			b.AddEmail(types.Email{From: "bob@example.com", MessageID: "<b1@x>", InReplyTo: "<a1@x>"})
			b.AddEmail(types.Email{From: "bob@example.com", MessageID: "<b2@x>", InReplyTo: "<a2@x>"})
			b.BuildInteractionGraph()

			alice, _ := b.resolver.PersonFor("alice@example.com")
			bob, _ := b.resolver.PersonFor("bob@example.com")
			e, ok := b.Graph().Edge(bob, alice)
			require.True(t, ok)
			assert.Equal(t, 2, e.Weight)
		})
	}
}

func TestBuildInteractionGraphSkipsSelfAfterResolution(t *testing.T) {
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			b := newTestBuilder(t, backend)
			// Two raw spellings of the same address; the thread layer sees
			// distinct From strings, resolution collapses them.
			b.AddEmail(types.Email{From: "Alice <alice@example.com>", MessageID: "<a@x>"})
			b.AddEmail(types.Email{From: "ALICE@EXAMPLE.COM", MessageID: "<b@x>", InReplyTo: "<a@x>"})
			b.BuildInteractionGraph()

			assert.Equal(t, 0, b.Graph().Size())
		})
	}
}

// Two participants sharing two lists get SharedLists == 2 on both
// directions of their pair.
func TestAddCoParticipationEdgesSharedListCount(t *testing.T) {
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			b := newTestBuilder(t, backend)
			for _, list := range []string{"quic", "tls"} {
				b.AddEmail(types.Email{From: "alice@example.com", MessageID: "<a-" + list + "@x>", MailingList: list})
				b.AddEmail(types.Email{From: "bob@example.com", MessageID: "<b-" + list + "@x>", MailingList: list})
			}
			b.AddEmail(types.Email{From: "carol@example.com", MessageID: "<c@x>", MailingList: "quic"})
			b.AddCoParticipationEdges()

			alice, _ := b.resolver.PersonFor("alice@example.com")
			bob, _ := b.resolver.PersonFor("bob@example.com")
			carol, _ := b.resolver.PersonFor("carol@example.com")

			ab, ok := b.Graph().Edge(alice, bob)
			require.True(t, ok)
			assert.Equal(t, 2, ab.SharedLists)
			assert.Equal(t, EdgeCoParticipation, ab.Type)
			assert.Equal(t, 0, ab.Weight)

			ba, ok := b.Graph().Edge(bob, alice)
			require.True(t, ok)
			assert.Equal(t, 2, ba.SharedLists)

			ac, ok := b.Graph().Edge(alice, carol)
			require.True(t, ok)
			assert.Equal(t, 1, ac.SharedLists)
		})
	}
}

func TestAddCoParticipationEdgesPreservesReplyEdges(t *testing.T) {
	for name, backend := range backends {
		t.Run(name, func(t *testing.T) {
			b := newTestBuilder(t, backend)
			b.AddEmail(types.Email{From: "alice@example.com", MessageID: "<a@x>", MailingList: "quic"})
			b.AddEmail(types.Email{From: "bob@example.com", MessageID: "<b@x>", InReplyTo: "<a@x>", MailingList: "quic"})
			b.BuildInteractionGraph()
			b.AddCoParticipationEdges()

			alice, _ := b.resolver.PersonFor("alice@example.com")
			bob, _ := b.resolver.PersonFor("bob@example.com")

			reply, _ := b.Graph().Edge(bob, alice)
			assert.Equal(t, EdgeReply, reply.Type)
			assert.Equal(t, 1, reply.Weight)
			assert.Equal(t, 1, reply.SharedLists)

			co, _ := b.Graph().Edge(alice, bob)
			assert.Equal(t, EdgeCoParticipation, co.Type)
			assert.Equal(t, 0, co.Weight)
		})
	}
}
