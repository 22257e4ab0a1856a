// Copyright (c) 2026 Reelhub. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package review stores written reviews of movies and shows. Reviews are
// readable by anyone and writable by their author only.
package review

import (
	"time"

	"github.com/taibuivan/reelhub/internal/library/media"
)

// FieldContent is the review body field.
const FieldContent = "content"

// Author is the public projection of the account that wrote a review.
type Author struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

// Review is a written opinion about one catalog item.
type Review struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	media.Ref
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
