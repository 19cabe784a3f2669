// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// SiteInfo field names as stored in the site_info key/value table.
const (
	SiteInfoFieldSiteName = "siteName"
)

// SiteInfo is the single logical site-settings record. The table is a
// key/value bag but only the site name is used; modeling it as a typed
// record keeps the non-empty invariant checkable at the boundary.
type SiteInfo struct {
	SiteName string `json:"siteName"`
}
