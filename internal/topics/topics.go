// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package topics segments each person's mail into time-window documents,
// fits a topic model over them, and derives per-person topic
// distributions and entropy. The model itself sits behind the Modeler
// interface; the deterministic term-frequency implementation is the
// default.
// See docs/ARCHITECTURE § Topic Analysis.
package topics

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/JacckNew/ietf-weavers/internal/identity"
	"github.com/JacckNew/ietf-weavers/pkg/types"
)

// Document is one person's cleaned mail text within one time window.
type Document struct {
	PersonID   string
	Window     string
	Tokens     []string
	EmailCount int
}

var (
	quoteLine     = regexp.MustCompile(`(?m)^\s*>.*$`)
	attribLine    = regexp.MustCompile(`(?m)^On .{0,200}wrote:\s*$`)
	headerLine    = regexp.MustCompile(`(?mi)^(From|To|Cc|Subject|Date|Message-ID|In-Reply-To):.*$`)
	signatureMark = regexp.MustCompile(`(?m)^(--\s*|_{3,}|\*{3,})$`)
	tokenPattern  = regexp.MustCompile(`[a-z][a-z']+`)
)

// CleanText strips quoted text, reply attributions, pasted headers, and
// everything below a signature marker, then lowercases and tokenizes.
// Tokens shorter than three characters and stopwords are dropped.
func CleanText(text string) []string {
	if loc := signatureMark.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	text = quoteLine.ReplaceAllString(text, "")
	text = attribLine.ReplaceAllString(text, "")
	text = headerLine.ReplaceAllString(text, "")

	var tokens []string
	for _, tok := range tokenPattern.FindAllString(strings.ToLower(text), -1) {
		if len(tok) < 3 || stopwords[tok] {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// windowKey floors t's month to the start of its window and formats it
// as YYYY-MM. A four-month window maps May 2024 to 2024-05's window
// start 2024-05 only when windows begin in January; the general rule is
// month index floored to a multiple of the window length.
func windowKey(t time.Time, windowMonths int) string {
	if windowMonths < 1 {
		windowMonths = 1
	}
	month := int(t.Month()) - 1
	floored := (month/windowMonths)*windowMonths + 1
	return fmt.Sprintf("%04d-%02d", t.Year(), floored)
}

// BuildDocuments groups emails by resolved person and time window and
// keeps the documents substantial enough to model: at least
// cfg.MinEmailsPerDoc emails and cfg.MinTokens cleaned tokens. Emails
// without a parseable date or an unresolvable sender contribute nothing.
func BuildDocuments(emails []types.Email, resolver *identity.Resolver, cfg types.TopicsConfig) []Document {
	type key struct {
		person string
		window string
	}
	grouped := make(map[key]*Document)

	for _, e := range emails {
		pid, ok := resolver.PersonFor(e.From)
		if !ok {
			continue
		}
		t, ok := e.ParseDate()
		if !ok {
			continue
		}

		k := key{person: pid, window: windowKey(t, cfg.TimeWindowMonths)}
		doc, ok := grouped[k]
		if !ok {
			doc = &Document{PersonID: pid, Window: k.window}
			grouped[k] = doc
		}
		doc.Tokens = append(doc.Tokens, CleanText(e.Text())...)
		doc.EmailCount++
	}

	keys := make([]key, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].person != keys[j].person {
			return keys[i].person < keys[j].person
		}
		return keys[i].window < keys[j].window
	})

	docs := make([]Document, 0, len(keys))
	for _, k := range keys {
		doc := grouped[k]
		if doc.EmailCount < cfg.MinEmailsPerDoc || len(doc.Tokens) < cfg.MinTokens {
			continue
		}
		docs = append(docs, *doc)
	}
	return docs
}
