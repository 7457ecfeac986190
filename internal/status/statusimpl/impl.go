package statusimpl

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/status-engine/internal/domain"
	statusRepo "github.com/orgball2608/status-engine/internal/repositories/status"
	"github.com/orgball2608/status-engine/internal/ring"
	"github.com/orgball2608/status-engine/internal/status"
	"github.com/orgball2608/status-engine/pkg/config"
	"github.com/orgball2608/status-engine/pkg/logger"
	"github.com/orgball2608/status-engine/pkg/retry"
	"github.com/samber/lo"
	"go.uber.org/fx"
)

type Opts struct {
	fx.In

	Repo   statusRepo.Repository
	Logger logger.Logger
	Config *config.Config
	Clock  clockwork.Clock
	Viewer domain.Viewer
}

// StatusImpl owns the post collection. Every exported method takes mu for its whole
// mutate, recompute, enqueue-save sequence, so concurrent callers cannot break the
// one-reaction and one-view rules.
type StatusImpl struct {
	Repo   statusRepo.Repository
	Logger logger.Logger
	Config *config.Config
	Clock  clockwork.Clock
	Viewer domain.Viewer

	mu         sync.Mutex
	posts      []domain.StatusPost
	rings      []domain.StatusRing
	ringsUntil time.Time
	settings   domain.StatusSettings

	persister *persister
}

func New(opts Opts) *StatusImpl {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	log := opts.Logger.WithComponent("StatusEngine")

	return &StatusImpl{
		Repo:      opts.Repo,
		Logger:    log,
		Config:    opts.Config,
		Clock:     clock,
		Viewer:    opts.Viewer,
		posts:     []domain.StatusPost{},
		rings:     []domain.StatusRing{},
		settings:  domain.DefaultSettings(),
		persister: newPersister(opts.Repo, log, retry.FromConfig(opts.Config)),
	}
}

var _ status.Client = (*StatusImpl)(nil)

func (s *StatusImpl) Load(ctx context.Context) {
	posts, err := s.Repo.LoadPosts(ctx)
	if err != nil {
		s.Logger.Error("Failed to load status posts, starting with an empty collection", "error", err)
		posts = nil
	}

	settings, settingsErr := s.Repo.LoadSettings(ctx)
	if settingsErr != nil {
		s.Logger.Error("Failed to load status settings, keeping current values", "error", settingsErr)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Clock.Now()
	s.posts = lo.Filter(posts, func(p domain.StatusPost, _ int) bool {
		return p.ExpiresAt.After(now)
	})
	switch {
	case settings != nil:
		s.settings = settings.Clone()
	case settingsErr == nil:
		s.settings = domain.DefaultSettings()
	}
	s.recompute(now)

	s.Logger.Info("Loaded status posts", "stored", len(posts), "kept", len(s.posts), "rings", len(s.rings))
}

func (s *StatusImpl) Refresh(ctx context.Context) {
	if err := s.persister.flush(ctx); err != nil {
		s.Logger.Warn("Refreshing before pending saves finished", "error", err)
	}
	s.Load(ctx)
}

func (s *StatusImpl) CurrentRings() []domain.StatusRing {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Clock.Now()
	if !s.ringsUntil.IsZero() && !now.Before(s.ringsUntil) {
		s.recompute(now)
	}
	return slices.Clone(s.rings)
}

func (s *StatusImpl) RingsFor(viewerID string) []domain.StatusRing {
	s.mu.Lock()
	defer s.mu.Unlock()

	return ring.Build(s.posts, viewerID, s.Clock.Now())
}

func (s *StatusImpl) Flush(ctx context.Context) error {
	return s.persister.flush(ctx)
}

// Close waits for queued saves and stops the background writer.
func (s *StatusImpl) Close(ctx context.Context) error {
	return s.persister.close(ctx)
}

// recompute rebuilds the cached rings. Callers hold mu.
func (s *StatusImpl) recompute(now time.Time) {
	s.rings = ring.Build(s.posts, s.Viewer.ID, now)
	s.ringsUntil = ring.ValidUntil(s.posts, now)
}

// commit finishes a post mutation. Callers hold mu.
func (s *StatusImpl) commit(now time.Time) {
	s.recompute(now)
	s.persister.savePosts(domain.ClonePosts(s.posts))
}

func (s *StatusImpl) indexOf(postID string) int {
	return slices.IndexFunc(s.posts, func(p domain.StatusPost) bool {
		return p.ID == postID
	})
}

// liveIndex is indexOf restricted to posts that are still live at now.
func (s *StatusImpl) liveIndex(postID string, now time.Time) int {
	i := s.indexOf(postID)
	if i < 0 || !s.posts[i].IsLive(now) {
		return -1
	}
	return i
}
