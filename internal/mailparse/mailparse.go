// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mailparse normalizes raw sender addresses and classifies them
// as automated, role-based, or individual. The classification gates
// every downstream stage: only individual senders create person records
// or contribute interaction edges.
// See docs/ARCHITECTURE § Email Parsing.
package mailparse

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

// Class is the sender category assigned by Classify.
type Class string

const (
	ClassAutomated  Class = "automated"
	ClassRoleBased  Class = "role-based"
	ClassIndividual Class = "individual"
)

// automatedPatterns match list machinery and notification senders.
// Checked before rolePatterns; first match wins.
var automatedPatterns = []string{
	`.*-archive@.*`,
	`.*-bounces@.*`,
	`noreply@.*`,
	`notification@.*`,
	`trac\+.*@tools\.ietf\.org`,
	`.*-secretary@.*`,
	`.*-secretariat@.*`,
}

// rolePatterns match shared role addresses rather than people.
var rolePatterns = []string{
	`.*-chairs@ietf\.org`,
	`.*-ads@ietf\.org`,
	`chair@ietf\.org`,
	`ietf-.*@ietf\.org`,
}

// addrShape is the minimal local@domain.tld shape a normalized address
// must satisfy. Anything else is unusable.
var addrShape = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

var (
	obfuscatedAt  = regexp.MustCompile(`\s+at\s+`)
	obfuscatedDot = regexp.MustCompile(`\s+dot\s+`)
	whitespace    = regexp.MustCompile(`\s+`)
)

// Parser classifies sender addresses against ordered pattern sets.
type Parser struct {
	automated []*regexp.Regexp
	role      []*regexp.Regexp
}

// New builds a Parser with the built-in IETF pattern sets plus any
// extra patterns from configuration. Patterns are matched against the
// start of the normalized address, case-insensitively.
func New(extraAutomated, extraRole []string) (*Parser, error) {
	automated, err := compilePatterns(append(append([]string{}, automatedPatterns...), extraAutomated...))
	if err != nil {
		return nil, fmt.Errorf("compiling automated patterns: %w", err)
	}
	role, err := compilePatterns(append(append([]string{}, rolePatterns...), extraRole...))
	if err != nil {
		return nil, fmt.Errorf("compiling role patterns: %w", err)
	}
	return &Parser{automated: automated, role: role}, nil
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(`(?i)^(?:` + p + `)`)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

// Normalize strips the display-name wrapper, lowercases, de-obfuscates
// " at "/" dot " spellings, and removes angle brackets and whitespace.
// It fails closed: the empty string is the sentinel for an unusable
// address. Normalize is idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	addr := raw
	if parsed, err := mail.ParseAddress(raw); err == nil {
		addr = parsed.Address
	} else if open := strings.LastIndex(raw, "<"); open >= 0 {
		// Obfuscated addresses inside angle brackets defeat net/mail;
		// take the bracketed span directly.
		if close := strings.Index(raw[open:], ">"); close > 0 {
			addr = raw[open+1 : open+close]
		}
	}

	addr = strings.ToLower(strings.TrimSpace(addr))
	addr = obfuscatedAt.ReplaceAllString(addr, "@")
	addr = obfuscatedDot.ReplaceAllString(addr, ".")
	addr = strings.NewReplacer("<", "", ">", "").Replace(addr)
	addr = whitespace.ReplaceAllString(addr, "")

	if !addrShape.MatchString(addr) {
		return ""
	}
	return addr
}

// Classify assigns a sender category. It is total: every input maps to
// exactly one class. Automated patterns are checked before role-based
// ones; an address matching neither (including an unusable one) is
// individual.
func (p *Parser) Classify(raw string) Class {
	normalized := Normalize(raw)

	for _, re := range p.automated {
		if re.MatchString(normalized) {
			return ClassAutomated
		}
	}
	for _, re := range p.role {
		if re.MatchString(normalized) {
			return ClassRoleBased
		}
	}
	return ClassIndividual
}
