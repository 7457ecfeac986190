// Package ring derives the ordered per-author status rings from a post collection.
// Everything here is pure: no clocks, no storage, no mutation of the input.
package ring

import (
	"slices"
	"time"

	"github.com/orgball2608/status-engine/internal/domain"
	"github.com/samber/lo"
)

// Build returns one ring per author with at least one live post at now, ordered
// with the local viewer's ring first, then authors with unseen posts, then the
// rest, each group most recent first.
func Build(posts []domain.StatusPost, localViewerID string, now time.Time) []domain.StatusRing {
	live := lo.Filter(posts, func(p domain.StatusPost, _ int) bool {
		return p.IsLive(now)
	})
	if len(live) == 0 {
		return []domain.StatusRing{}
	}

	byAuthor := lo.GroupBy(live, func(p domain.StatusPost) string {
		return p.AuthorID
	})

	rings := make([]domain.StatusRing, 0, len(byAuthor))
	for authorID, authored := range byAuthor {
		rings = append(rings, summarize(authorID, authored, localViewerID))
	}

	slices.SortFunc(rings, Compare)
	return rings
}

// ValidUntil is the earliest instant at which a ring built from posts at now stops
// being accurate, i.e. the first expiry among the live posts. The zero time means
// the result never goes stale on its own.
func ValidUntil(posts []domain.StatusPost, now time.Time) time.Time {
	var until time.Time
	for i := range posts {
		if !posts[i].IsLive(now) {
			continue
		}
		if until.IsZero() || posts[i].ExpiresAt.Before(until) {
			until = posts[i].ExpiresAt
		}
	}
	return until
}

func summarize(authorID string, posts []domain.StatusPost, localViewerID string) domain.StatusRing {
	latest := lo.MaxBy(posts, newer)
	unseen := lo.SomeBy(posts, func(p domain.StatusPost) bool {
		return !p.ViewedBy(localViewerID)
	})

	accent := domain.AccentSeen
	if unseen {
		accent = domain.AccentUnseen
	}

	return domain.StatusRing{
		AuthorID:           authorID,
		AuthorName:         latest.AuthorName,
		AuthorAvatarRef:    latest.AuthorAvatarRef,
		HasUnseenContent:   unseen,
		MostRecentPostTime: latest.CreatedAt,
		PostCount:          len(posts),
		IsLocalViewer:      authorID == localViewerID,
		AccentColorToken:   accent,
	}
}

// newer reports whether a was posted after b; equal timestamps fall back to the
// greater id so the pick does not depend on collection order.
func newer(a, b domain.StatusPost) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

// Compare is the ring ordering: local viewer, then unseen, then recency. Author id
// breaks exact ties to keep the order stable across map iteration.
func Compare(a, b domain.StatusRing) int {
	if a.IsLocalViewer != b.IsLocalViewer {
		if a.IsLocalViewer {
			return -1
		}
		return 1
	}
	if a.HasUnseenContent != b.HasUnseenContent {
		if a.HasUnseenContent {
			return -1
		}
		return 1
	}
	if c := b.MostRecentPostTime.Compare(a.MostRecentPostTime); c != 0 {
		return c
	}
	switch {
	case a.AuthorID < b.AuthorID:
		return -1
	case a.AuthorID > b.AuthorID:
		return 1
	}
	return 0
}
