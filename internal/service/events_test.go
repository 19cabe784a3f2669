// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/store"
	"github.com/olegiv/scms-go/internal/testutil"
)

func TestLogAuthEvent(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewEventService(db)
	ctx := context.Background()

	err := svc.LogAuthEvent(ctx, model.EventLevelInfo, "user logged in",
		sql.NullInt64{Int64: 1, Valid: true}, "127.0.0.1",
		map[string]any{"username": "alice"})
	if err != nil {
		t.Fatalf("LogAuthEvent: %v", err)
	}

	events, err := store.New(db).ListRecentEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	e := events[0]
	if e.Category != model.EventCategoryAuth {
		t.Errorf("Category = %q, want %q", e.Category, model.EventCategoryAuth)
	}
	if !e.UserID.Valid || e.UserID.Int64 != 1 {
		t.Errorf("UserID = %+v, want 1", e.UserID)
	}
	if e.IPAddress != "127.0.0.1" {
		t.Errorf("IPAddress = %q, want %q", e.IPAddress, "127.0.0.1")
	}
}

func TestLogEvent_NilMetadata(t *testing.T) {
	db := testutil.TestDB(t)
	svc := NewEventService(db)
	ctx := context.Background()

	err := svc.LogPageEvent(ctx, model.EventLevelInfo, "page created", sql.NullInt64{}, "", nil)
	if err != nil {
		t.Fatalf("LogPageEvent: %v", err)
	}

	events, err := store.New(db).ListRecentEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentEvents: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Metadata != "{}" {
		t.Errorf("Metadata = %q, want %q", events[0].Metadata, "{}")
	}
	if events[0].UserID.Valid {
		t.Error("UserID should be unset")
	}
}
