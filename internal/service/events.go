// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic and service layer functionality
// including event logging for audit trails.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/olegiv/scms-go/internal/model"
	"github.com/olegiv/scms-go/internal/store"
)

// EventService provides event logging functionality.
type EventService struct {
	queries *store.Queries
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{
		queries: store.New(db),
	}
}

// LogEvent creates a new event log entry.
func (s *EventService) LogEvent(ctx context.Context, level, category, message string, userID sql.NullInt64, ipAddress string, metadata map[string]any) error {
	metadataJSON := "{}"
	if metadata != nil {
		if jsonBytes, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(jsonBytes)
		}
	}

	err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		UserID:    userID,
		IPAddress: ipAddress,
		Metadata:  metadataJSON,
	})
	if err != nil {
		slog.Error("failed to log event", "error", err)
		return err
	}

	return nil
}

// LogAuthEvent logs an authentication-related event.
func (s *EventService) LogAuthEvent(ctx context.Context, level, message string, userID sql.NullInt64, ipAddress string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryAuth, message, userID, ipAddress, metadata)
}

// LogPageEvent logs a page-related event.
func (s *EventService) LogPageEvent(ctx context.Context, level, message string, userID sql.NullInt64, ipAddress string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryPage, message, userID, ipAddress, metadata)
}

// LogConfigEvent logs a config-related event.
func (s *EventService) LogConfigEvent(ctx context.Context, level, message string, userID sql.NullInt64, ipAddress string, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryConfig, message, userID, ipAddress, metadata)
}
