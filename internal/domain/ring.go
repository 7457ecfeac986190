package domain

import "time"

const (
	AccentUnseen = "#25D366"
	AccentSeen   = "#8696A0"
)

// StatusRing summarizes one author's live posts for the browsing list. It is
// derived on demand and never persisted.
type StatusRing struct {
	AuthorID           string    `json:"author_id"`
	AuthorName         string    `json:"author_name"`
	AuthorAvatarRef    string    `json:"author_avatar_ref"`
	HasUnseenContent   bool      `json:"has_unseen_content"`
	MostRecentPostTime time.Time `json:"most_recent_post_time"`
	PostCount          int       `json:"post_count"`
	IsLocalViewer      bool      `json:"is_local_viewer"`
	AccentColorToken   string    `json:"accent_color_token"`
}
