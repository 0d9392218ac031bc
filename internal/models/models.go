package models

// BookRecord is the normalized, canonical representation of a catalog lookup
// result. Immutable once constructed; the lookup layer fills in sentinel
// values when the source omits authors or a description.
type BookRecord struct {
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	Summary       string   `json:"summary"`
	CoverImageURL string   `json:"cover_image_url,omitempty"`
}

// Sentinel values used when the catalog response omits a field.
const (
	UnknownAuthor = "Unknown Author"
	NoSummary     = "No description available."
)

// SearchQuery is one weighted catalog search request derived from profile terms.
// Ephemeral: generated by the matching stage and consumed immediately.
type SearchQuery struct {
	Terms string `json:"terms"`
	Limit int    `json:"limit"`
}

// Track is a normalized music catalog item. Identity is ID: two Track values
// with the same ID are the same track regardless of other fields.
type Track struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Artist        string `json:"artist"`
	Album         string `json:"album"`
	URI           string `json:"uri"`
	Popularity    int    `json:"popularity"` // 0-100
	PreviewURL    string `json:"preview_url,omitempty"`
	AlbumImageURL string `json:"album_image_url,omitempty"`
}

// Playlist represents a playlist created on the music service.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Public      bool   `json:"public"`
	URL         string `json:"url,omitempty"`
}
