// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
)

const createImage = `
INSERT INTO images (name) VALUES (?)
RETURNING id, name
`

// CreateImage registers an image filename in the library.
func (q *Queries) CreateImage(ctx context.Context, name string) (Image, error) {
	row := q.db.QueryRowContext(ctx, createImage, name)
	var img Image
	err := row.Scan(&img.ID, &img.Name)
	return img, err
}

const listImages = `
SELECT id, name FROM images ORDER BY name
`

// ListImages returns every registered image, sorted by name.
func (q *Queries) ListImages(ctx context.Context) ([]Image, error) {
	rows, err := q.db.QueryContext(ctx, listImages)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var images []Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.Name); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}
