package identity

import (
	"testing"
)

func TestAddMappingAllocatesDistinctIDs(t *testing.T) {
	r := NewResolver()

	a := r.AddMapping("alice@example.com", "", "")
	b := r.AddMapping("bob@example.com", "", "")

	if a == "" || b == "" {
		t.Fatalf("expected non-empty ids, got %q and %q", a, b)
	}
	if a == b {
		t.Errorf("distinct addresses share person id %q", a)
	}
	if a != "person_000001" || b != "person_000002" {
		t.Errorf("ids not allocated monotonically: %q, %q", a, b)
	}
}

func TestAddMappingIsStable(t *testing.T) {
	r := NewResolver()

	first := r.AddMapping("alice@example.com", "", "")
	second := r.AddMapping("Alice <alice@example.com>", "", "")
	if first != second {
		t.Errorf("same normalized address resolved to %q then %q", first, second)
	}
}

func TestAddMappingUnusableAddress(t *testing.T) {
	r := NewResolver()

	if pid := r.AddMapping("not an address", "", ""); pid != "" {
		t.Errorf("unusable address allocated person %q", pid)
	}
	if pid := r.AddMapping("", "", ""); pid != "" {
		t.Errorf("empty address allocated person %q", pid)
	}
}

func TestNameFirstNonEmptyWins(t *testing.T) {
	r := NewResolver()

	pid := r.AddMapping("alice@example.com", "", "")
	r.AddMapping("alice@example.com", "Alice Smith", "")
	r.AddMapping("alice@example.com", "A. Smith", "")

	if got := r.Name(pid); got != "Alice Smith" {
		t.Errorf("Name = %q, want %q", got, "Alice Smith")
	}
}

func TestMerge(t *testing.T) {
	r := NewResolver()

	a := r.AddMapping("alice@example.com", "Alice", "")
	b := r.AddMapping("alice@corp.example", "", "https://datatracker.ietf.org/person/1")

	got := r.Merge(a, b)
	if got != a {
		t.Fatalf("Merge returned %q, want %q", got, a)
	}

	// Every address previously owned by b now resolves to a.
	pid, ok := r.PersonFor("alice@corp.example")
	if !ok || pid != a {
		t.Errorf("PersonFor(absorbed address) = %q, %v; want %q, true", pid, ok, a)
	}

	// b is no longer a valid lookup target.
	if emails := r.Emails(b); emails != nil {
		t.Errorf("absorbed person still owns emails %v", emails)
	}
	for _, pid := range r.Persons() {
		if pid == b {
			t.Errorf("absorbed person %q still listed", b)
		}
	}

	// a keeps its name and inherits b's datatracker URI.
	if r.Name(a) != "Alice" {
		t.Errorf("Name = %q, want Alice", r.Name(a))
	}
	m := r.Mappings()
	if m.PersonTracker[a] != "https://datatracker.ietf.org/person/1" {
		t.Errorf("tracker URI not inherited: %q", m.PersonTracker[a])
	}

	if emails := r.Emails(a); len(emails) != 2 {
		t.Errorf("merged person owns %d addresses, want 2", len(emails))
	}
}

func TestMergeUnknownIDs(t *testing.T) {
	r := NewResolver()
	a := r.AddMapping("alice@example.com", "", "")

	if got := r.Merge(a, "person_999999"); got != a {
		t.Errorf("Merge with unknown absorbee returned %q", got)
	}
	if got := r.Merge("person_999999", a); got != "person_999999" {
		t.Errorf("Merge with unknown keeper returned %q", got)
	}
	// a must be untouched.
	if pid, ok := r.PersonFor("alice@example.com"); !ok || pid != a {
		t.Errorf("mapping disturbed by no-op merge: %q, %v", pid, ok)
	}
}

func TestMappingsSnapshotIsACopy(t *testing.T) {
	r := NewResolver()
	pid := r.AddMapping("alice@example.com", "Alice", "")

	m := r.Mappings()
	m.EmailToPerson["alice@example.com"] = "tampered"
	m.PersonEmails[pid][0] = "tampered"

	if got, _ := r.PersonFor("alice@example.com"); got != pid {
		t.Errorf("snapshot mutation leaked into resolver: %q", got)
	}
	if r.Emails(pid)[0] != "alice@example.com" {
		t.Errorf("snapshot slice mutation leaked into resolver")
	}
}
