package schema

// LibraryReviewTable represents the 'library.review' table
type LibraryReviewTable struct {
	Table       string
	ID          string
	AccountID   string
	Content     string
	MediaType   string
	MediaID     string
	MediaTitle  string
	MediaPoster string
	CreatedAt   string
	UpdatedAt   string
}

// LibraryReview is the schema definition for library.review
var LibraryReview = LibraryReviewTable{
	Table:       "library.review",
	ID:          "id",
	AccountID:   "accountid",
	Content:     "content",
	MediaType:   "mediatype",
	MediaID:     "mediaid",
	MediaTitle:  "mediatitle",
	MediaPoster: "mediaposter",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t LibraryReviewTable) Columns() []string {
	return []string{
		t.ID, t.AccountID, t.Content, t.MediaType, t.MediaID, t.MediaTitle,
		t.MediaPoster, t.CreatedAt, t.UpdatedAt,
	}
}
