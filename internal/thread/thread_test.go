package thread

import (
	"reflect"
	"testing"
)

// chainAnalyzer registers A (root), B (reply to A), C (reply to B).
func chainAnalyzer() *Analyzer {
	a := NewAnalyzer()
	a.AddMessage("<a@list>", "", "alice@example.com", "2024-01-01T00:00:00Z", "proposal")
	a.AddMessage("<b@list>", "<a@list>", "bob@example.com", "2024-01-02T00:00:00Z", "Re: proposal")
	a.AddMessage("<c@list>", "<b@list>", "carol@example.com", "2024-01-03T00:00:00Z", "Re: proposal")
	return a
}

func TestBuildThreadStructure(t *testing.T) {
	a := chainAnalyzer()
	roots := a.BuildThreadStructure()

	if !reflect.DeepEqual(roots, []string{"<a@list>"}) {
		t.Errorf("roots = %v, want [<a@list>]", roots)
	}
	if got := a.Message("<a@list>").Replies; !reflect.DeepEqual(got, []string{"<b@list>"}) {
		t.Errorf("replies of A = %v, want [<b@list>]", got)
	}
	if got := a.Message("<b@list>").Replies; !reflect.DeepEqual(got, []string{"<c@list>"}) {
		t.Errorf("replies of B = %v, want [<c@list>]", got)
	}
}

func TestBuildThreadStructureIdempotent(t *testing.T) {
	a := chainAnalyzer()
	a.BuildThreadStructure()
	a.BuildThreadStructure()

	if got := len(a.Message("<a@list>").Replies); got != 1 {
		t.Errorf("replies duplicated on rebuild: %d entries", got)
	}
}

func TestDanglingParentIsRoot(t *testing.T) {
	a := NewAnalyzer()
	a.AddMessage("<x@list>", "<missing@list>", "alice@example.com", "", "orphan")

	roots := a.BuildThreadStructure()
	if !reflect.DeepEqual(roots, []string{"<x@list>"}) {
		t.Errorf("roots = %v, want [<x@list>]", roots)
	}
}

// Direct replies only: C replying to B must not produce an edge to A.
func TestExtractInteractionsDirectRepliesOnly(t *testing.T) {
	a := chainAnalyzer()
	a.BuildThreadStructure()

	got := a.ExtractInteractions()
	want := []Interaction{
		{From: "bob@example.com", To: "alice@example.com"},
		{From: "carol@example.com", To: "bob@example.com"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("interactions = %v, want %v", got, want)
	}
}

func TestExtractInteractionsSkipsSelfReply(t *testing.T) {
	a := NewAnalyzer()
	a.AddMessage("<a@list>", "", "alice@example.com", "", "note")
	a.AddMessage("<b@list>", "<a@list>", "alice@example.com", "", "Re: note")
	a.BuildThreadStructure()

	if got := a.ExtractInteractions(); len(got) != 0 {
		t.Errorf("self-reply produced interactions: %v", got)
	}
}

func TestExtractInteractionsBeforeBuildIsEmpty(t *testing.T) {
	a := chainAnalyzer()
	if got := a.ExtractInteractions(); len(got) != 0 {
		t.Errorf("interactions before build = %v, want none", got)
	}
}

func TestAddMessageDuplicateID(t *testing.T) {
	a := NewAnalyzer()
	a.AddMessage("<a@list>", "", "alice@example.com", "", "first")
	a.AddMessage("<a@list>", "", "bob@example.com", "", "second")

	if a.Len() != 1 {
		t.Errorf("Len = %d, want 1", a.Len())
	}
	if got := a.Message("<a@list>").From; got != "bob@example.com" {
		t.Errorf("duplicate did not replace: From = %q", got)
	}
}
