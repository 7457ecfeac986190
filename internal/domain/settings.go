package domain

import (
	"slices"

	"github.com/samber/lo"
)

type StatusSettings struct {
	AutoSaveToGallery bool       `json:"auto_save_to_gallery"`
	AllowReplies      bool       `json:"allow_replies"`
	ShowViewers       bool       `json:"show_viewers"`
	AllowForwarding   bool       `json:"allow_forwarding"`
	DefaultVisibility Visibility `json:"default_visibility"`
	MutedAuthorIDs    []string   `json:"muted_author_ids"`
	CloseFriendsIDs   []string   `json:"close_friends_ids"`
}

func DefaultSettings() StatusSettings {
	return StatusSettings{
		AutoSaveToGallery: false,
		AllowReplies:      true,
		ShowViewers:       true,
		AllowForwarding:   true,
		DefaultVisibility: VisibilityContacts,
		MutedAuthorIDs:    []string{},
		CloseFriendsIDs:   []string{},
	}
}

// SettingsPatch is a partial update; nil fields are left untouched. ID lists replace
// the stored set wholesale.
type SettingsPatch struct {
	AutoSaveToGallery *bool
	AllowReplies      *bool
	ShowViewers       *bool
	AllowForwarding   *bool
	DefaultVisibility *Visibility
	MutedAuthorIDs    []string
	CloseFriendsIDs   []string
}

func (s StatusSettings) Apply(p SettingsPatch) StatusSettings {
	out := s.Clone()
	if p.AutoSaveToGallery != nil {
		out.AutoSaveToGallery = *p.AutoSaveToGallery
	}
	if p.AllowReplies != nil {
		out.AllowReplies = *p.AllowReplies
	}
	if p.ShowViewers != nil {
		out.ShowViewers = *p.ShowViewers
	}
	if p.AllowForwarding != nil {
		out.AllowForwarding = *p.AllowForwarding
	}
	if p.DefaultVisibility != nil && *p.DefaultVisibility != "" {
		out.DefaultVisibility = *p.DefaultVisibility
	}
	if p.MutedAuthorIDs != nil {
		out.MutedAuthorIDs = NormalizeIDSet(p.MutedAuthorIDs)
	}
	if p.CloseFriendsIDs != nil {
		out.CloseFriendsIDs = NormalizeIDSet(p.CloseFriendsIDs)
	}
	return out
}

func (s StatusSettings) Clone() StatusSettings {
	out := s
	out.MutedAuthorIDs = NormalizeIDSet(s.MutedAuthorIDs)
	out.CloseFriendsIDs = NormalizeIDSet(s.CloseFriendsIDs)
	return out
}

func (s StatusSettings) IsMuted(authorID string) bool {
	return slices.Contains(s.MutedAuthorIDs, authorID)
}

func (s StatusSettings) IsCloseFriend(viewerID string) bool {
	return slices.Contains(s.CloseFriendsIDs, viewerID)
}

// NormalizeIDSet drops blanks and duplicates and sorts, so a set has one encoding.
func NormalizeIDSet(ids []string) []string {
	out := lo.Uniq(lo.Compact(ids))
	slices.Sort(out)
	return out
}
