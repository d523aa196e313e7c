// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared record and configuration types used
// across the ietf-weavers pipeline stages.
// See docs/ARCHITECTURE § Data Model.
package types

import "time"

// Email is one normalized mail record as produced by the acquisition
// boundary. Records are immutable once loaded; the core consumes them
// read-only. MessageID uniqueness is not guaranteed and InReplyTo may be
// absent or dangling.
type Email struct {
	// From is the raw sender header, display name and all.
	From string `json:"from"`

	// MessageID identifies the message. Duplicates are tolerated.
	MessageID string `json:"message_id"`

	// InReplyTo holds zero or one parent message id.
	InReplyTo string `json:"in_reply_to,omitempty"`

	// Date is the ISO-8601 timestamp string; it may fail to parse.
	Date string `json:"date,omitempty"`

	Subject string `json:"subject,omitempty"`

	// Content is the message body. Some archive dumps use "body" instead;
	// both are accepted.
	Content string `json:"content,omitempty"`
	Body    string `json:"body,omitempty"`

	// MailingList names the list the message was posted to. Some dumps
	// use "list_name"; both are accepted.
	MailingList string `json:"mailing_list,omitempty"`
	ListName    string `json:"list_name,omitempty"`
}

// Text returns the message body, preferring Content over Body.
func (e Email) Text() string {
	if e.Content != "" {
		return e.Content
	}
	return e.Body
}

// List returns the mailing list name, preferring MailingList over ListName.
func (e Email) List() string {
	if e.MailingList != "" {
		return e.MailingList
	}
	return e.ListName
}

// dateLayouts are the timestamp shapes seen in archive dumps: RFC 3339
// with an offset or Z suffix, and the same without a zone.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses the Date field. The second return is false when the
// field is empty or unparseable; callers skip timestamp handling in that
// case rather than failing the record.
func (e Email) ParseDate() (time.Time, bool) {
	if e.Date == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, e.Date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
