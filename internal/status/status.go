package status

import (
	"context"

	"github.com/orgball2608/status-engine/internal/domain"
)

// Client is the status engine surface. Mutations apply in memory, refresh the ring
// list and queue a background save before they return; storage failures are logged
// and never surface here.
type Client interface {
	// Load rehydrates posts and settings from storage, dropping expired posts.
	Load(ctx context.Context)
	// Refresh waits for pending saves and then runs Load again.
	Refresh(ctx context.Context)

	Create(spec domain.PostSpec) (domain.StatusPost, error)
	Delete(postID string)
	GetByAuthor(authorID string) []domain.StatusPost

	React(postID string, viewer domain.Viewer, kind domain.ReactionKind)
	Unreact(postID, viewerID string)
	MarkViewed(postID string, viewer domain.Viewer)

	// CurrentRings is the cached ring list for the session's local viewer.
	CurrentRings() []domain.StatusRing
	// RingsFor computes the ring list as seen by an arbitrary viewer.
	RingsFor(viewerID string) []domain.StatusRing

	CurrentSettings() domain.StatusSettings
	UpdateSettings(patch domain.SettingsPatch) domain.StatusSettings

	// PurgeExpired drops non-live posts from memory and expired rows from storage,
	// returning how many posts left the in-memory collection.
	PurgeExpired(ctx context.Context) int
	SchedulePurge(ctx context.Context) error

	// Flush blocks until every queued save has been attempted.
	Flush(ctx context.Context) error
	Close(ctx context.Context) error
}
