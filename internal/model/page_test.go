// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestResolveStatus(t *testing.T) {
	now := date("2024-06-15")

	past := date("2024-01-01")
	future := date("2024-12-31")
	sameInstant := now

	tests := []struct {
		name            string
		publicationDate *time.Time
		want            string
	}{
		{"no publication date", nil, PageStatusDraft},
		{"past publication date", &past, PageStatusPublished},
		{"future publication date", &future, PageStatusScheduled},
		{"publication date equals now", &sameInstant, PageStatusPublished},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveStatus(tt.publicationDate, now); got != tt.want {
				t.Errorf("ResolveStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

// statusRank orders statuses along the lifecycle: draft < scheduled < published.
func statusRank(s string) int {
	switch s {
	case PageStatusDraft:
		return 0
	case PageStatusScheduled:
		return 1
	case PageStatusPublished:
		return 2
	}
	return -1
}

func TestResolveStatus_Monotonic(t *testing.T) {
	// An untouched page must never move backwards in the lifecycle as time
	// advances: once published it stays published.
	pub := date("2024-06-01")
	dates := []*time.Time{nil, &pub}

	times := []time.Time{
		date("2024-01-01"),
		date("2024-05-31"),
		date("2024-06-01"),
		date("2024-06-02"),
		date("2025-01-01"),
	}

	for _, pd := range dates {
		prev := -1
		for _, now := range times {
			rank := statusRank(ResolveStatus(pd, now))
			if pd != nil && rank < prev {
				t.Fatalf("status went backwards at now=%s: rank %d -> %d", now, prev, rank)
			}
			prev = rank
		}
	}
}

func TestPageStatus(t *testing.T) {
	pub := date("2024-06-01")
	p := Page{PublicationDate: &pub}

	if got := p.Status(date("2024-03-01")); got != PageStatusScheduled {
		t.Errorf("Status before publication = %q, want scheduled", got)
	}
	if got := p.Status(date("2024-07-01")); got != PageStatusPublished {
		t.Errorf("Status after publication = %q, want published", got)
	}
	if !p.IsPublished(date("2024-07-01")) {
		t.Error("IsPublished = false after publication date")
	}
}

func TestIsKnownSectionType(t *testing.T) {
	for _, typ := range []string{SectionTypeHeader, SectionTypeParagraph, SectionTypeImage} {
		if !IsKnownSectionType(typ) {
			t.Errorf("IsKnownSectionType(%q) = false", typ)
		}
	}
	for _, typ := range []string{"", "video", "HEADER", "footer"} {
		if IsKnownSectionType(typ) {
			t.Errorf("IsKnownSectionType(%q) = true", typ)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-06-01")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if FormatDate(got) != "2024-06-01" {
		t.Errorf("round trip = %q, want 2024-06-01", FormatDate(got))
	}

	if _, err := ParseDate("01/06/2024"); err == nil {
		t.Error("ParseDate accepted a non-ISO date")
	}
	if _, err := ParseDate("not-a-date"); err == nil {
		t.Error("ParseDate accepted garbage")
	}
}
