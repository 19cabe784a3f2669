// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the application
// including Page, Section, and the page status derivation.
package model

// User roles. Accounts themselves live in the store layer; the domain only
// cares about the role strings.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
