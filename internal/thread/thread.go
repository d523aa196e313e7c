// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package thread reconstructs reply trees from Message-ID/In-Reply-To
// pairs and extracts pairwise interaction edges. It operates on raw
// addresses; identity resolution happens downstream.
// See docs/ARCHITECTURE § Thread Reconstruction.
package thread

// Message is one registered message and, once BuildThreadStructure has
// run, the ids of its direct replies. Replies stays empty until then —
// a partial build never materializes unknown reply links.
type Message struct {
	InReplyTo string
	From      string
	Date      string
	Subject   string
	Replies   []string
}

// Interaction is one directed reply pair: From replied to a message
// authored by To.
type Interaction struct {
	From string
	To   string
}

// Analyzer accumulates messages and reconstructs thread structure in a
// single full pass once all messages are registered.
type Analyzer struct {
	messages map[string]*Message
	order    []string
}

// NewAnalyzer returns an empty Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{messages: make(map[string]*Message)}
}

// AddMessage registers a message. A duplicate message id replaces the
// earlier registration; duplicates are tolerated, not errors.
func (a *Analyzer) AddMessage(id, inReplyTo, from, date, subject string) {
	if id == "" {
		return
	}
	if _, seen := a.messages[id]; !seen {
		a.order = append(a.order, id)
	}
	a.messages[id] = &Message{
		InReplyTo: inReplyTo,
		From:      from,
		Date:      date,
		Subject:   subject,
	}
}

// Message returns the registered message for id, or nil.
func (a *Analyzer) Message(id string) *Message {
	return a.messages[id]
}

// Len returns the number of registered messages.
func (a *Analyzer) Len() int {
	return len(a.messages)
}

// BuildThreadStructure links every message whose In-Reply-To resolves to
// a known message into its parent's reply list and returns the thread
// roots (messages whose parent is absent or unknown). Reply lists are
// rebuilt from scratch on every call, so re-invocation on an unchanged
// message set is idempotent.
func (a *Analyzer) BuildThreadStructure() []string {
	for _, msg := range a.messages {
		msg.Replies = nil
	}

	var roots []string
	for _, id := range a.order {
		msg := a.messages[id]
		if parent, ok := a.messages[msg.InReplyTo]; ok && msg.InReplyTo != "" {
			parent.Replies = append(parent.Replies, id)
		} else {
			roots = append(roots, id)
		}
	}
	return roots
}

// ExtractInteractions returns one directed pair per direct reply:
// (replier, original author), skipping pairs where the two addresses
// are identical. Deeper ancestry is intentionally ignored — a reply to
// a reply does not generate an edge to the thread root. Results are in
// registration order of the parent, then of the reply.
func (a *Analyzer) ExtractInteractions() []Interaction {
	var interactions []Interaction
	for _, id := range a.order {
		parent := a.messages[id]
		for _, replyID := range parent.Replies {
			reply := a.messages[replyID]
			if reply.From == parent.From {
				continue
			}
			interactions = append(interactions, Interaction{From: reply.From, To: parent.From})
		}
	}
	return interactions
}
