package models

import "time"

const (
	ContentTypeYouTube = "youtube"
	ContentTypeTwitter = "twitter"
	ContentTypePDF     = "pdf"
)

type Content struct {
	ContentID string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Type      string    `json:"type"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidContentType reports whether t is one of the storable content kinds.
func ValidContentType(t string) bool {
	switch t {
	case ContentTypeYouTube, ContentTypeTwitter, ContentTypePDF:
		return true
	}
	return false
}
