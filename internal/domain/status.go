package domain

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/orgball2608/status-engine/pkg/errors"
)

// StatusTTL is how long a status stays visible after it is posted.
const StatusTTL = 24 * time.Hour

type PostKind string

const (
	PostKindImage PostKind = "image"
	PostKindText  PostKind = "text"
)

type Visibility string

const (
	VisibilityPublic       Visibility = "public"
	VisibilityContacts     Visibility = "contacts"
	VisibilityCloseFriends Visibility = "close_friends"
)

type ImagePayload struct {
	MediaRef string `json:"media_ref"`
}

type TextPayload struct {
	Body            string `json:"body"`
	BackgroundColor string `json:"background_color"`
	TextColor       string `json:"text_color"`
	Font            string `json:"font,omitempty"`
}

// StatusPost is one ephemeral content unit. Exactly one of Image and Text is set,
// matching Kind.
type StatusPost struct {
	ID              string        `json:"id"`
	AuthorID        string        `json:"author_id"`
	AuthorName      string        `json:"author_name"`
	AuthorAvatarRef string        `json:"author_avatar_ref"`
	Kind            PostKind      `json:"kind"`
	Image           *ImagePayload `json:"image,omitempty"`
	Text            *TextPayload  `json:"text,omitempty"`
	Caption         string        `json:"caption,omitempty"`
	Visibility      Visibility    `json:"visibility"`
	AllowList       []string      `json:"allow_list,omitempty"`
	BlockList       []string      `json:"block_list,omitempty"`
	Reactions       []Reaction    `json:"reactions"`
	Views           []View        `json:"views"`
	CreatedAt       time.Time     `json:"created_at"`
	ExpiresAt       time.Time     `json:"expires_at"`
	Active          bool          `json:"active"`
}

// IsLive reports whether the post is visible at now.
func (p *StatusPost) IsLive(now time.Time) bool {
	return p.Active && now.Before(p.ExpiresAt)
}

// ViewedBy reports whether viewerID has a view record on the post.
func (p *StatusPost) ViewedBy(viewerID string) bool {
	for i := range p.Views {
		if p.Views[i].ViewerID == viewerID {
			return true
		}
	}
	return false
}

// ReactionBy returns the index of viewerID's reaction, or -1.
func (p *StatusPost) ReactionBy(viewerID string) int {
	for i := range p.Reactions {
		if p.Reactions[i].ViewerID == viewerID {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy so callers never share slices with the store.
func (p StatusPost) Clone() StatusPost {
	out := p
	if p.Image != nil {
		img := *p.Image
		out.Image = &img
	}
	if p.Text != nil {
		txt := *p.Text
		out.Text = &txt
	}
	out.AllowList = cloneStrings(p.AllowList)
	out.BlockList = cloneStrings(p.BlockList)
	out.Reactions = append([]Reaction(nil), p.Reactions...)
	out.Views = append([]View(nil), p.Views...)
	return out
}

func ClonePosts(posts []StatusPost) []StatusPost {
	out := make([]StatusPost, len(posts))
	for i := range posts {
		out[i] = posts[i].Clone()
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

// PostSpec is the caller-supplied part of a new post.
type PostSpec struct {
	Author     Viewer
	Kind       PostKind      `validate:"required,oneof=image text"`
	Image      *ImagePayload `validate:"required_if=Kind image"`
	Text       *TextPayload  `validate:"required_if=Kind text"`
	Caption    string
	Visibility Visibility `validate:"omitempty,oneof=public contacts close_friends"`
	AllowList  []string
	BlockList  []string
}

var validate = validator.New()

// Validate checks that the payload matching Kind is present. Everything else about
// the payload is the caller's business.
func (s PostSpec) Validate() error {
	if err := validate.Struct(s); err != nil {
		return errors.InvalidPayload(err)
	}
	return nil
}
