package statusimpl

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/orgball2608/status-engine/internal/domain"
)

const defaultPurgeInterval = 15 * time.Minute

// PurgeExpired evicts posts that are no longer live and asks storage to drop its
// expired rows. Reads already hide such posts; this only reclaims space.
func (s *StatusImpl) PurgeExpired(ctx context.Context) int {
	s.mu.Lock()
	now := s.Clock.Now()
	before := len(s.posts)
	s.posts = slices.DeleteFunc(s.posts, func(p domain.StatusPost) bool {
		return !p.IsLive(now)
	})
	removed := before - len(s.posts)
	if removed > 0 {
		s.commit(now)
	}
	s.mu.Unlock()

	stored, err := s.Repo.PurgeExpired(ctx, now)
	if err != nil {
		s.Logger.Error("Failed to purge expired status rows", "error", err)
	}

	s.Logger.Info("Expired statuses purged", "in_memory", removed, "stored", stored)
	return removed
}

// SchedulePurge runs PurgeExpired every STATUS_PURGE_INTERVAL until ctx is done.
func (s *StatusImpl) SchedulePurge(ctx context.Context) error {
	interval := defaultPurgeInterval
	if s.Config != nil && s.Config.Status.PurgeInterval > 0 {
		interval = s.Config.Status.PurgeInterval
	}

	scheduler, err := gocron.NewScheduler(gocron.WithClock(s.Clock))
	if err != nil {
		return fmt.Errorf("failed to create purge scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if ctx.Err() != nil {
				s.Logger.Info("Context cancelled, skipping status purge")
				return
			}

			purgeCtx, cancel := context.WithTimeout(ctx, time.Minute)
			defer cancel()

			s.PurgeExpired(purgeCtx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule status purge: %w", err)
	}

	scheduler.Start()
	s.Logger.Info("Status purge scheduled", "interval", interval.String())

	go func() {
		<-ctx.Done()
		s.Logger.Info("Stopping status purge scheduler")
		if err := scheduler.Shutdown(); err != nil {
			s.Logger.Error("Failed to shut down purge scheduler", "error", err)
		}
	}()

	return nil
}
