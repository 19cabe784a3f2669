// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"

	"github.com/olegiv/scms-go/internal/model"
)

const getSiteInfoField = `
SELECT field_value FROM site_info WHERE field_name = ?
`

// GetSiteInfo returns the site settings, or sql.ErrNoRows when the site name
// has never been set.
func (q *Queries) GetSiteInfo(ctx context.Context) (model.SiteInfo, error) {
	row := q.db.QueryRowContext(ctx, getSiteInfoField, model.SiteInfoFieldSiteName)
	var info model.SiteInfo
	err := row.Scan(&info.SiteName)
	return info, err
}

const upsertSiteInfoField = `
INSERT INTO site_info (field_name, field_value)
VALUES (?, ?)
ON CONFLICT(field_name) DO UPDATE SET field_value = excluded.field_value
`

// UpdateSiteName sets the site name, creating the row on first write.
func (q *Queries) UpdateSiteName(ctx context.Context, name string) error {
	_, err := q.db.ExecContext(ctx, upsertSiteInfoField, model.SiteInfoFieldSiteName, name)
	return err
}
