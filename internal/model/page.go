// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Page statuses, derived from the publication date at render time.
const (
	PageStatusDraft     = "draft"
	PageStatusScheduled = "scheduled"
	PageStatusPublished = "published"
)

// Section types
const (
	SectionTypeHeader    = "header"
	SectionTypeParagraph = "paragraph"
	SectionTypeImage     = "image"
)

// DateLayout is the wire and storage format for page dates (calendar days).
const DateLayout = time.DateOnly

// Page represents a CMS page composed of ordered content sections.
// Status is never stored; it is recomputed from PublicationDate on every render.
type Page struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	Author          string     `json:"author"` // username of the owner
	PublicationDate *time.Time `json:"publicationDate,omitempty"`
	CreationDate    time.Time  `json:"creationDate"`
	Content         []Section  `json:"content"`
}

// Section is one ordered content block of a page. Its ID is positional:
// it is rewritten to the section's 0-based index every time the page is
// persisted, so it carries no identity across edits.
type Section struct {
	ID    int    `json:"id"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// IsKnownSectionType reports whether t is one of the supported section types.
func IsKnownSectionType(t string) bool {
	switch t {
	case SectionTypeHeader, SectionTypeParagraph, SectionTypeImage:
		return true
	}
	return false
}

// ResolveStatus derives a page's lifecycle status from its publication date.
// No publication date means the page is a draft. A publication date strictly
// in the future means scheduled; a date at or before now means published.
// Pure and total: safe to call on every render, which is required since "now"
// keeps advancing.
func ResolveStatus(publicationDate *time.Time, now time.Time) string {
	if publicationDate == nil {
		return PageStatusDraft
	}
	if publicationDate.After(now) {
		return PageStatusScheduled
	}
	return PageStatusPublished
}

// Status resolves the page's status against now.
func (p *Page) Status(now time.Time) string {
	return ResolveStatus(p.PublicationDate, now)
}

// IsPublished returns true if the page is published as of now.
func (p *Page) IsPublished(now time.Time) bool {
	return p.Status(now) == PageStatusPublished
}

// ParseDate parses a calendar-day date in the wire format.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// FormatDate renders a date in the wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
