// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/scms-go/internal/auth"
	"github.com/olegiv/scms-go/internal/model"
)

// Default admin credentials
const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "changeme"
	DefaultSiteName      = "My Site"
)

// Seed creates initial data in the database: an admin, a regular author, the
// site name, a handful of images, and sample pages covering every status.
// It is a no-op when the admin user already exists.
func Seed(ctx context.Context, db *sql.DB, now time.Time) error {
	queries := New(db)

	// Check if admin user already exists
	_, err := queries.GetUserByUsername(ctx, DefaultAdminUsername)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	createdAt := now.UTC().Format(time.RFC3339)

	adminHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}
	admin, err := queries.CreateUser(ctx, CreateUserParams{
		Username:     DefaultAdminUsername,
		PasswordHash: adminHash,
		Role:         model.RoleAdmin,
		CreatedAt:    createdAt,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	authorHash, err := auth.HashPassword("password")
	if err != nil {
		return fmt.Errorf("hashing author password: %w", err)
	}
	author, err := queries.CreateUser(ctx, CreateUserParams{
		Username:     "writer",
		PasswordHash: authorHash,
		Role:         model.RoleUser,
		CreatedAt:    createdAt,
	})
	if err != nil {
		return fmt.Errorf("creating author user: %w", err)
	}

	if err := queries.UpdateSiteName(ctx, DefaultSiteName); err != nil {
		return fmt.Errorf("setting site name: %w", err)
	}

	for _, name := range []string{"forest.jpg", "harbor.jpg", "mountains.jpg"} {
		if _, err := queries.CreateImage(ctx, name); err != nil {
			return fmt.Errorf("registering image %q: %w", name, err)
		}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	lastMonth := today.AddDate(0, -1, 0)
	nextMonth := today.AddDate(0, 1, 0)

	samples := []model.Page{
		{
			Title:           "Welcome",
			Author:          admin.Username,
			CreationDate:    lastMonth,
			PublicationDate: &lastMonth,
			Content: []model.Section{
				{Type: model.SectionTypeHeader, Value: "Welcome"},
				{Type: model.SectionTypeParagraph, Value: "This site is up and running."},
				{Type: model.SectionTypeImage, Value: "harbor.jpg"},
			},
		},
		{
			Title:           "Coming soon",
			Author:          author.Username,
			CreationDate:    today,
			PublicationDate: &nextMonth,
			Content: []model.Section{
				{Type: model.SectionTypeHeader, Value: "Coming soon"},
				{Type: model.SectionTypeParagraph, Value: "This announcement is scheduled for next month."},
			},
		},
		{
			Title:        "Notes",
			Author:       author.Username,
			CreationDate: today,
			Content: []model.Section{
				{Type: model.SectionTypeHeader, Value: "Notes"},
				{Type: model.SectionTypeParagraph, Value: "Still a draft."},
			},
		},
	}
	for _, page := range samples {
		if _, err := queries.CreatePage(ctx, page); err != nil {
			return fmt.Errorf("creating sample page %q: %w", page.Title, err)
		}
	}

	slog.Info("seeded database",
		"admin", admin.Username,
		"password", DefaultAdminPassword,
		"pages", len(samples),
	)

	return nil
}
