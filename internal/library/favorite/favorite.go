// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package favorite keeps each account's list of favorite movies and shows.
package favorite

import (
	"time"

	"github.com/taibuivan/reelhub/internal/library/media"
)

// FieldMediaRate is the rating snapshot field.
const FieldMediaRate = "mediaRate"

// Favorite is a catalog item saved by an account. An account holds at most one
// favorite per (media type, media id).
type Favorite struct {
	ID        string `json:"id"`
	AccountID string `json:"accountId"`
	media.Ref
	MediaRate float64   `json:"mediaRate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
