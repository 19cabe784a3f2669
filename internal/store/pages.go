// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/olegiv/scms-go/internal/model"
)

// pageRow mirrors the pages table with dates and content still in
// storage form.
type pageRow struct {
	ID              int64
	Title           string
	Author          string
	CreationDate    string
	PublicationDate sql.NullString
	Content         string
}

func (r pageRow) toModel() (model.Page, error) {
	p := model.Page{
		ID:     r.ID,
		Title:  r.Title,
		Author: r.Author,
	}

	creation, err := model.ParseDate(r.CreationDate)
	if err != nil {
		return model.Page{}, fmt.Errorf("page %d: parsing creation date: %w", r.ID, err)
	}
	p.CreationDate = creation

	if r.PublicationDate.Valid {
		publication, err := model.ParseDate(r.PublicationDate.String)
		if err != nil {
			return model.Page{}, fmt.Errorf("page %d: parsing publication date: %w", r.ID, err)
		}
		p.PublicationDate = &publication
	}

	if err := json.Unmarshal([]byte(r.Content), &p.Content); err != nil {
		return model.Page{}, fmt.Errorf("page %d: decoding content: %w", r.ID, err)
	}
	if p.Content == nil {
		p.Content = []model.Section{}
	}

	return p, nil
}

// encodeContent renumbers section ids to their positions and serializes the
// result. Every write path goes through here so the stored ids always match
// section order, whatever ids the caller carried in.
func encodeContent(sections []model.Section) (string, error) {
	out := make([]model.Section, len(sections))
	for i, s := range sections {
		out[i] = model.Section{ID: i, Type: s.Type, Value: s.Value}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encoding content: %w", err)
	}
	return string(data), nil
}

func nullableDate(d *model.Page) sql.NullString {
	if d.PublicationDate == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: model.FormatDate(*d.PublicationDate), Valid: true}
}

const createPage = `
INSERT INTO pages (title, author, creation_date, publication_date, content)
VALUES (?, ?, ?, ?, ?)
RETURNING id
`

// CreatePage inserts a page and returns it as stored, section ids renumbered.
func (q *Queries) CreatePage(ctx context.Context, page model.Page) (model.Page, error) {
	content, err := encodeContent(page.Content)
	if err != nil {
		return model.Page{}, err
	}

	row := q.db.QueryRowContext(ctx, createPage,
		page.Title,
		page.Author,
		model.FormatDate(page.CreationDate),
		nullableDate(&page),
		content,
	)
	var id int64
	if err := row.Scan(&id); err != nil {
		return model.Page{}, err
	}
	return q.GetPageByID(ctx, id)
}

const getPageByID = `
SELECT id, title, author, creation_date, publication_date, content
FROM pages WHERE id = ?
`

// GetPageByID returns the page with the given id, or sql.ErrNoRows.
func (q *Queries) GetPageByID(ctx context.Context, id int64) (model.Page, error) {
	row := q.db.QueryRowContext(ctx, getPageByID, id)
	var r pageRow
	if err := row.Scan(&r.ID, &r.Title, &r.Author, &r.CreationDate, &r.PublicationDate, &r.Content); err != nil {
		return model.Page{}, err
	}
	return r.toModel()
}

const listPages = `
SELECT id, title, author, creation_date, publication_date, content
FROM pages ORDER BY id
`

// ListPages returns every page ordered by id.
func (q *Queries) ListPages(ctx context.Context) ([]model.Page, error) {
	rows, err := q.db.QueryContext(ctx, listPages)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []model.Page
	for rows.Next() {
		var r pageRow
		if err := rows.Scan(&r.ID, &r.Title, &r.Author, &r.CreationDate, &r.PublicationDate, &r.Content); err != nil {
			return nil, err
		}
		p, err := r.toModel()
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

const updatePage = `
UPDATE pages
SET title = ?, author = ?, creation_date = ?, publication_date = ?, content = ?
WHERE id = ?
`

// UpdatePage replaces the stored page and returns it as stored, section ids
// renumbered. Returns sql.ErrNoRows if no page has the given id.
func (q *Queries) UpdatePage(ctx context.Context, page model.Page) (model.Page, error) {
	content, err := encodeContent(page.Content)
	if err != nil {
		return model.Page{}, err
	}

	res, err := q.db.ExecContext(ctx, updatePage,
		page.Title,
		page.Author,
		model.FormatDate(page.CreationDate),
		nullableDate(&page),
		content,
		page.ID,
	)
	if err != nil {
		return model.Page{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return model.Page{}, err
	}
	if affected == 0 {
		return model.Page{}, sql.ErrNoRows
	}
	return q.GetPageByID(ctx, page.ID)
}

const deletePage = `
DELETE FROM pages WHERE id = ?
`

// DeletePage removes the page with the given id. Returns sql.ErrNoRows if no
// page has that id.
func (q *Queries) DeletePage(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deletePage, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
