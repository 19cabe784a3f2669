// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package validate checks page payloads before they reach the store. Failures
// come back as a list of field-scoped errors, never a single generic one, so
// the caller can highlight every offending field at once.
package validate

import (
	"slices"

	"github.com/olegiv/scms-go/internal/apperr"
	"github.com/olegiv/scms-go/internal/model"
)

// validationScope is the scope component of page validation error codes.
const validationScope = "pages"

// SectionInput is a candidate content section as submitted by the client.
// Client-supplied ids are ignored; the store assigns positional ids on write.
type SectionInput struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// PageInput is a candidate page body with dates still in wire format.
type PageInput struct {
	Title           string
	Author          string
	CreationDate    string
	PublicationDate *string // nil when absent
	Content         []SectionInput
}

// Page validates a candidate page. All applicable failures are collected;
// a nil slice means the payload is valid. knownUsernames is the current user
// roster, used to verify the author reference.
func Page(in PageInput, knownUsernames []string) []*apperr.Error {
	var errs []*apperr.Error

	if in.Title == "" {
		errs = append(errs, apperr.ValidationFailed(validationScope, "title", "title must not be empty"))
	}

	if in.Author != "" && !slices.Contains(knownUsernames, in.Author) {
		errs = append(errs, apperr.ValidationFailed(validationScope, "author", "author not found"))
	}

	creation, err := model.ParseDate(in.CreationDate)
	creationOK := err == nil
	if !creationOK {
		errs = append(errs, apperr.ValidationFailed(validationScope, "creationDate", "invalid date format"))
	}

	if in.PublicationDate != nil {
		publication, err := model.ParseDate(*in.PublicationDate)
		if err != nil {
			errs = append(errs, apperr.ValidationFailed(validationScope, "publicationDate", "invalid date format"))
		} else if creationOK && publication.Before(creation) {
			errs = append(errs, apperr.ValidationFailed(validationScope, "publicationDate",
				"the publication date cannot be earlier than the creation date"))
		}
	}

	if err := content(in.Content); err != nil {
		errs = append(errs, err)
	}

	return errs
}

// content checks the section invariant: at least one header plus at least one
// paragraph or image, and no unrecognized section types anywhere.
func content(sections []SectionInput) *apperr.Error {
	headers := 0
	blocks := 0
	for _, s := range sections {
		switch s.Type {
		case model.SectionTypeHeader:
			headers++
		case model.SectionTypeParagraph, model.SectionTypeImage:
			blocks++
		default:
			return apperr.ValidationFailed(validationScope, "content", "the page content is not valid")
		}
	}
	if headers == 0 || blocks == 0 {
		return apperr.ValidationFailed(validationScope, "content", "the page content is not valid")
	}
	return nil
}
