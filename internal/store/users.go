// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
)

const createUser = `
INSERT INTO users (username, password_hash, role, created_at)
VALUES (?, ?, ?, ?)
RETURNING id, username, password_hash, role, created_at, last_login_at
`

// CreateUserParams holds the fields for CreateUser.
type CreateUserParams struct {
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    string
}

// CreateUser inserts a new user and returns the stored row.
func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	row := q.db.QueryRowContext(ctx, createUser,
		arg.Username,
		arg.PasswordHash,
		arg.Role,
		arg.CreatedAt,
	)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.LastLoginAt)
	return u, err
}

const getUserByID = `
SELECT id, username, password_hash, role, created_at, last_login_at
FROM users WHERE id = ?
`

// GetUserByID returns the user with the given id, or sql.ErrNoRows.
func (q *Queries) GetUserByID(ctx context.Context, id int64) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByID, id)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.LastLoginAt)
	return u, err
}

const getUserByUsername = `
SELECT id, username, password_hash, role, created_at, last_login_at
FROM users WHERE username = ?
`

// GetUserByUsername returns the user with the given username, or sql.ErrNoRows.
func (q *Queries) GetUserByUsername(ctx context.Context, username string) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByUsername, username)
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.LastLoginAt)
	return u, err
}

const listUsernames = `
SELECT username FROM users ORDER BY username
`

// ListUsernames returns every username, sorted.
func (q *Queries) ListUsernames(ctx context.Context) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listUsernames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

const updateUserPassword = `
UPDATE users SET password_hash = ? WHERE id = ?
`

// UpdateUserPassword replaces a user's password hash.
func (q *Queries) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := q.db.ExecContext(ctx, updateUserPassword, passwordHash, id)
	return err
}

const updateUserLastLogin = `
UPDATE users SET last_login_at = ? WHERE id = ?
`

// UpdateUserLastLogin records the time of a successful login.
func (q *Queries) UpdateUserLastLogin(ctx context.Context, id int64, at string) error {
	_, err := q.db.ExecContext(ctx, updateUserLastLogin, at, id)
	return err
}
