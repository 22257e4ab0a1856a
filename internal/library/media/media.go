// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package media describes the catalog items that library entries point at.
// Catalog data itself lives in the third-party media database; the library
// only keeps a denormalized snapshot for display.
package media

import (
	"github.com/taibuivan/reelhub/internal/platform/validate"
)

// Supported media types.
const (
	TypeMovie = "movie"
	TypeTV    = "tv"
)

// Field identifiers shared by favorites and reviews.
const (
	FieldMediaType   = "mediaType"
	FieldMediaID     = "mediaId"
	FieldMediaTitle  = "mediaTitle"
	FieldMediaPoster = "mediaPoster"
)

const (
	maxIDLength     = 64
	maxTitleLength  = 500
	maxPosterLength = 1000
)

// Types lists the accepted media types.
func Types() []string {
	return []string{TypeMovie, TypeTV}
}

// Ref is the snapshot of a catalog item stored with a library entry.
type Ref struct {
	Type   string `json:"mediaType"`
	ID     string `json:"mediaId"`
	Title  string `json:"mediaTitle"`
	Poster string `json:"mediaPoster"`
}

// Check adds the media reference rules to validator.
func (ref Ref) Check(validator *validate.Validator) *validate.Validator {
	return validator.
		Required(FieldMediaType, ref.Type).
		OneOf(FieldMediaType, ref.Type, Types()...).
		Required(FieldMediaID, ref.ID).
		MaxLen(FieldMediaID, ref.ID, maxIDLength).
		Required(FieldMediaTitle, ref.Title).
		MaxLen(FieldMediaTitle, ref.Title, maxTitleLength).
		MaxLen(FieldMediaPoster, ref.Poster, maxPosterLength)
}
