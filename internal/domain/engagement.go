package domain

import "time"

type ReactionKind string

const (
	ReactionLike      ReactionKind = "like"
	ReactionLove      ReactionKind = "love"
	ReactionLaugh     ReactionKind = "laugh"
	ReactionWow       ReactionKind = "wow"
	ReactionSad       ReactionKind = "sad"
	ReactionAngry     ReactionKind = "angry"
	ReactionFire      ReactionKind = "fire"
	ReactionHeartEyes ReactionKind = "heart_eyes"
)

const DefaultGlyph = "👍"

var glyphs = map[ReactionKind]string{
	ReactionLike:      "👍",
	ReactionLove:      "❤️",
	ReactionLaugh:     "😂",
	ReactionWow:       "😮",
	ReactionSad:       "😢",
	ReactionAngry:     "😡",
	ReactionFire:      "🔥",
	ReactionHeartEyes: "😍",
}

// GlyphFor maps a reaction kind to its display symbol. Unknown kinds get DefaultGlyph.
func GlyphFor(kind ReactionKind) string {
	if g, ok := glyphs[kind]; ok {
		return g
	}
	return DefaultGlyph
}

type Reaction struct {
	ID              string       `json:"id"`
	PostID          string       `json:"post_id"`
	ViewerID        string       `json:"viewer_id"`
	ViewerName      string       `json:"viewer_name"`
	ViewerAvatarRef string       `json:"viewer_avatar_ref"`
	Kind            ReactionKind `json:"kind"`
	Glyph           string       `json:"glyph"`
	CreatedAt       time.Time    `json:"created_at"`
}

type View struct {
	ID              string    `json:"id"`
	PostID          string    `json:"post_id"`
	ViewerID        string    `json:"viewer_id"`
	ViewerName      string    `json:"viewer_name"`
	ViewerAvatarRef string    `json:"viewer_avatar_ref"`
	ViewedAt        time.Time `json:"viewed_at"`
}
