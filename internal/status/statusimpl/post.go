package statusimpl

import (
	"slices"

	"github.com/google/uuid"
	"github.com/orgball2608/status-engine/internal/domain"
)

// Create stores a new post at the head of the collection. The only rejection is a
// kind without its matching payload.
func (s *StatusImpl) Create(spec domain.PostSpec) (domain.StatusPost, error) {
	if err := spec.Validate(); err != nil {
		return domain.StatusPost{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Clock.Now()
	visibility := spec.Visibility
	if visibility == "" {
		visibility = s.settings.DefaultVisibility
	}

	post := domain.StatusPost{
		ID:              uuid.NewString(),
		AuthorID:        spec.Author.ID,
		AuthorName:      spec.Author.Name,
		AuthorAvatarRef: spec.Author.AvatarRef,
		Kind:            spec.Kind,
		Caption:         spec.Caption,
		Visibility:      visibility,
		AllowList:       slices.Clone(spec.AllowList),
		BlockList:       slices.Clone(spec.BlockList),
		Reactions:       []domain.Reaction{},
		Views:           []domain.View{},
		CreatedAt:       now,
		ExpiresAt:       now.Add(domain.StatusTTL),
		Active:          true,
	}
	switch spec.Kind {
	case domain.PostKindImage:
		image := *spec.Image
		post.Image = &image
	case domain.PostKindText:
		text := *spec.Text
		post.Text = &text
	}

	s.posts = slices.Insert(s.posts, 0, post)
	s.commit(now)

	s.Logger.Info("Status created", "post_id", post.ID, "author_id", post.AuthorID, "kind", post.Kind)
	return post.Clone(), nil
}

func (s *StatusImpl) Delete(postID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(postID); i >= 0 {
		s.posts = slices.Delete(s.posts, i, i+1)
		s.Logger.Info("Status deleted", "post_id", postID)
	} else {
		s.Logger.Debug("Delete of unknown status ignored", "post_id", postID)
	}
	s.commit(s.Clock.Now())
}

// GetByAuthor returns copies of the author's live posts, newest first.
func (s *StatusImpl) GetByAuthor(authorID string) []domain.StatusPost {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Clock.Now()
	out := []domain.StatusPost{}
	for i := range s.posts {
		if s.posts[i].AuthorID == authorID && s.posts[i].IsLive(now) {
			out = append(out, s.posts[i].Clone())
		}
	}
	return out
}
