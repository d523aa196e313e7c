// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package identity maps normalized email addresses to stable synthetic
// person identifiers and supports destructive identity merges. A
// Resolver owns its own id counter, so independent pipeline runs and
// tests stay isolated.
// See docs/ARCHITECTURE § Identity Resolution.
package identity

import (
	"fmt"
	"sort"

	"github.com/JacckNew/ietf-weavers/internal/mailparse"
)

// Resolver maintains the address-to-person mapping tables. Invariant:
// every known address maps to exactly one live person id. A Resolver is
// owned by a single pipeline run; it is not safe for concurrent use.
type Resolver struct {
	emailToPerson map[string]string
	personEmails  map[string][]string
	personName    map[string]string
	personTracker map[string]string
	counter       int
}

// NewResolver returns an empty Resolver.
func NewResolver() *Resolver {
	return &Resolver{
		emailToPerson: make(map[string]string),
		personEmails:  make(map[string][]string),
		personName:    make(map[string]string),
		personTracker: make(map[string]string),
	}
}

func (r *Resolver) nextID() string {
	r.counter++
	return fmt.Sprintf("person_%06d", r.counter)
}

// AddMapping normalizes email and returns the owning person id,
// allocating a new identity on first sight. An unusable address returns
// the empty id; callers treat that as "skip". Name and datatracker URI
// are set only if absent — the first non-empty value wins, never
// silently overwritten.
func (r *Resolver) AddMapping(email, name, datatrackerURI string) string {
	addr := mailparse.Normalize(email)
	if addr == "" {
		return ""
	}

	pid, ok := r.emailToPerson[addr]
	if !ok {
		pid = r.nextID()
		r.emailToPerson[addr] = pid
		r.personEmails[pid] = []string{addr}
	}

	if name != "" {
		if _, exists := r.personName[pid]; !exists {
			r.personName[pid] = name
		}
	}
	if datatrackerURI != "" {
		if _, exists := r.personTracker[pid]; !exists {
			r.personTracker[pid] = datatrackerURI
		}
	}
	return pid
}

// Merge absorbs person b into person a: b's addresses are repointed to
// a, a keeps its name and datatracker URI unless it lacked one, and b's
// records are deleted entirely. Merge is destructive — b is no longer a
// valid lookup target afterward. Unknown ids leave the tables untouched.
//
// No merge heuristic lives here; callers supply their own identity
// linking policy (datatracker URI or name cross-validation) and invoke
// Merge explicitly.
func (r *Resolver) Merge(a, b string) string {
	if a == b {
		return a
	}
	if _, ok := r.personEmails[a]; !ok {
		return a
	}
	emailsB, ok := r.personEmails[b]
	if !ok {
		return a
	}

	for _, addr := range emailsB {
		r.emailToPerson[addr] = a
	}

	seen := make(map[string]bool, len(r.personEmails[a]))
	for _, addr := range r.personEmails[a] {
		seen[addr] = true
	}
	for _, addr := range emailsB {
		if !seen[addr] {
			r.personEmails[a] = append(r.personEmails[a], addr)
			seen[addr] = true
		}
	}

	if _, ok := r.personName[a]; !ok {
		if name, ok := r.personName[b]; ok {
			r.personName[a] = name
		}
	}
	if _, ok := r.personTracker[a]; !ok {
		if uri, ok := r.personTracker[b]; ok {
			r.personTracker[a] = uri
		}
	}

	delete(r.personEmails, b)
	delete(r.personName, b)
	delete(r.personTracker, b)
	return a
}

// PersonFor returns the live person id owning the address, normalizing
// first. The second return is false for unknown or unusable addresses.
func (r *Resolver) PersonFor(email string) (string, bool) {
	addr := mailparse.Normalize(email)
	if addr == "" {
		return "", false
	}
	pid, ok := r.emailToPerson[addr]
	return pid, ok
}

// Name returns the display name recorded for the person, or "".
func (r *Resolver) Name(pid string) string {
	return r.personName[pid]
}

// Emails returns the addresses owned by the person, in first-seen order.
func (r *Resolver) Emails(pid string) []string {
	return r.personEmails[pid]
}

// PrimaryEmail returns the first address recorded for the person, or
// the person id itself when no address is known.
func (r *Resolver) PrimaryEmail(pid string) string {
	if emails := r.personEmails[pid]; len(emails) > 0 {
		return emails[0]
	}
	return pid
}

// Persons returns all live person ids in sorted order.
func (r *Resolver) Persons() []string {
	ids := make([]string, 0, len(r.personEmails))
	for pid := range r.personEmails {
		ids = append(ids, pid)
	}
	sort.Strings(ids)
	return ids
}

// Mappings is a copy of the resolver's side tables, shaped for the
// per-mapping JSON export files.
type Mappings struct {
	EmailToPerson map[string]string   `json:"email_to_person"`
	PersonEmails  map[string][]string `json:"person_to_emails"`
	PersonName    map[string]string   `json:"person_to_name"`
	PersonTracker map[string]string   `json:"person_to_datatracker"`
}

// Mappings snapshots the current tables. The returned maps are copies;
// mutating them does not affect the Resolver.
func (r *Resolver) Mappings() Mappings {
	m := Mappings{
		EmailToPerson: make(map[string]string, len(r.emailToPerson)),
		PersonEmails:  make(map[string][]string, len(r.personEmails)),
		PersonName:    make(map[string]string, len(r.personName)),
		PersonTracker: make(map[string]string, len(r.personTracker)),
	}
	for k, v := range r.emailToPerson {
		m.EmailToPerson[k] = v
	}
	for k, v := range r.personEmails {
		m.PersonEmails[k] = append([]string(nil), v...)
	}
	for k, v := range r.personName {
		m.PersonName[k] = v
	}
	for k, v := range r.personTracker {
		m.PersonTracker[k] = v
	}
	return m
}
