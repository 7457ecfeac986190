package statusimpl

import (
	"slices"

	"github.com/google/uuid"
	"github.com/orgball2608/status-engine/internal/domain"
)

// React sets viewer's reaction on a live post, replacing any earlier one. Missing or
// expired posts are ignored: the user is reacting to something that is already gone.
func (s *StatusImpl) React(postID string, viewer domain.Viewer, kind domain.ReactionKind) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Clock.Now()
	if i := s.liveIndex(postID, now); i >= 0 {
		post := &s.posts[i]
		post.Reactions = slices.DeleteFunc(post.Reactions, func(r domain.Reaction) bool {
			return r.ViewerID == viewer.ID
		})
		post.Reactions = append(post.Reactions, domain.Reaction{
			ID:              uuid.NewString(),
			PostID:          postID,
			ViewerID:        viewer.ID,
			ViewerName:      viewer.Name,
			ViewerAvatarRef: viewer.AvatarRef,
			Kind:            kind,
			Glyph:           domain.GlyphFor(kind),
			CreatedAt:       now,
		})
	} else {
		s.Logger.Debug("Reaction on unavailable status ignored", "post_id", postID, "viewer_id", viewer.ID)
	}
	s.commit(now)
}

func (s *StatusImpl) Unreact(postID, viewerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(postID); i >= 0 {
		s.posts[i].Reactions = slices.DeleteFunc(s.posts[i].Reactions, func(r domain.Reaction) bool {
			return r.ViewerID == viewerID
		})
	}
	s.commit(s.Clock.Now())
}

// MarkViewed records the first time viewer opens a live post; repeats are no-ops.
func (s *StatusImpl) MarkViewed(postID string, viewer domain.Viewer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Clock.Now()
	if i := s.liveIndex(postID, now); i >= 0 && !s.posts[i].ViewedBy(viewer.ID) {
		s.posts[i].Views = append(s.posts[i].Views, domain.View{
			ID:              uuid.NewString(),
			PostID:          postID,
			ViewerID:        viewer.ID,
			ViewerName:      viewer.Name,
			ViewerAvatarRef: viewer.AvatarRef,
			ViewedAt:        now,
		})
	}
	s.commit(now)
}
