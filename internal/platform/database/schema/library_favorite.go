package schema

// LibraryFavoriteTable represents the 'library.favorite' table
type LibraryFavoriteTable struct {
	Table       string
	ID          string
	AccountID   string
	MediaType   string
	MediaID     string
	MediaTitle  string
	MediaPoster string
	MediaRate   string
	CreatedAt   string
	UpdatedAt   string
}

// LibraryFavorite is the schema definition for library.favorite
var LibraryFavorite = LibraryFavoriteTable{
	Table:       "library.favorite",
	ID:          "id",
	AccountID:   "accountid",
	MediaType:   "mediatype",
	MediaID:     "mediaid",
	MediaTitle:  "mediatitle",
	MediaPoster: "mediaposter",
	MediaRate:   "mediarate",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

// Columns returns all standard column names
func (t LibraryFavoriteTable) Columns() []string {
	return []string{
		t.ID, t.AccountID, t.MediaType, t.MediaID, t.MediaTitle, t.MediaPoster,
		t.MediaRate, t.CreatedAt, t.UpdatedAt,
	}
}
