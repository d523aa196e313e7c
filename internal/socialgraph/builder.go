// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package socialgraph

import (
	"sort"

	"github.com/JacckNew/ietf-weavers/internal/identity"
	"github.com/JacckNew/ietf-weavers/internal/mailparse"
	"github.com/JacckNew/ietf-weavers/internal/thread"
	"github.com/JacckNew/ietf-weavers/pkg/types"
)

// Builder feeds filtered emails through identity resolution and thread
// analysis into a Graph. It drops automated and role-based senders
// silently; only individuals become nodes.
type Builder struct {
	parser   *mailparse.Parser
	resolver *identity.Resolver
	graph    Graph
	threads  *thread.Analyzer

	// listMembers is an inverted index from mailing list to the set of
	// person ids that posted to it, for co-participation joins.
	listMembers map[string]map[string]struct{}

	dropped int
}

// NewBuilder wires a Builder over the given parser, resolver, and graph.
// The resolver is shared state: mappings accumulated here are later read
// back by the exporter.
func NewBuilder(parser *mailparse.Parser, resolver *identity.Resolver, g Graph) *Builder {
	return &Builder{
		parser:      parser,
		resolver:    resolver,
		graph:       g,
		threads:     thread.NewAnalyzer(),
		listMembers: make(map[string]map[string]struct{}),
	}
}

// Graph returns the graph under construction.
func (b *Builder) Graph() Graph {
	return b.graph
}

// Threads returns the thread analyzer, populated as emails are added.
func (b *Builder) Threads() *thread.Analyzer {
	return b.threads
}

// Dropped returns how many emails were skipped as non-individual or
// unusable.
func (b *Builder) Dropped() int {
	return b.dropped
}

// AddEmail registers one email: classifies the sender, resolves it to a
// person id, updates node attributes, and records the message for
// thread reconstruction. Non-individual senders and unusable addresses
// are counted and skipped.
func (b *Builder) AddEmail(e types.Email) {
	if b.parser.Classify(e.From) != mailparse.ClassIndividual {
		b.dropped++
		return
	}
	pid := b.resolver.AddMapping(e.From, "", "")
	if pid == "" {
		b.dropped++
		return
	}

	b.threads.AddMessage(e.MessageID, e.InReplyTo, e.From, e.Date, e.Subject)

	b.graph.EnsureNode(pid, b.resolver.PrimaryEmail(pid))
	attrs := b.graph.Attrs(pid)
	attrs.EmailCount++
	if t, ok := e.ParseDate(); ok {
		attrs.ObserveDate(t)
	}
	if list := e.List(); list != "" {
		attrs.AddList(list)
		members, ok := b.listMembers[list]
		if !ok {
			members = make(map[string]struct{})
			b.listMembers[list] = members
		}
		members[pid] = struct{}{}
	}
}

// BuildInteractionGraph reconstructs threads and turns each direct reply
// into a weighted edge from the replier to the original author. Pairs
// where either address fails to resolve, or both resolve to the same
// person, contribute nothing.
func (b *Builder) BuildInteractionGraph() {
	b.threads.BuildThreadStructure()
	for _, in := range b.threads.ExtractInteractions() {
		from, ok := b.resolver.PersonFor(in.From)
		if !ok {
			continue
		}
		to, ok := b.resolver.PersonFor(in.To)
		if !ok || from == to {
			continue
		}
		b.graph.AddReplyEdge(from, to)
	}
}

// AddCoParticipationEdges joins persons through the list membership
// index and records the shared-list count on both directions of every
// co-participating pair. Pairs that already interact through replies
// keep their reply edges and merely gain the count.
func (b *Builder) AddCoParticipationEdges() {
	counts := make(map[[2]string]int)
	for _, members := range b.listMembers {
		ids := make([]string, 0, len(members))
		for id := range members {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				counts[[2]string{ids[i], ids[j]}]++
			}
		}
	}

	pairs := make([][2]string, 0, len(counts))
	for pair := range counts {
		pairs = append(pairs, pair)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	for _, pair := range pairs {
		b.graph.SetCoParticipation(pair[0], pair[1], counts[pair])
	}
}
