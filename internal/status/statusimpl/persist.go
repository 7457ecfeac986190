package statusimpl

import (
	"context"
	"sync"

	"github.com/orgball2608/status-engine/internal/domain"
	statusRepo "github.com/orgball2608/status-engine/internal/repositories/status"
	"github.com/orgball2608/status-engine/pkg/errors"
	"github.com/orgball2608/status-engine/pkg/logger"
	"github.com/orgball2608/status-engine/pkg/retry"
)

var errPersisterStopped = errors.New("status persister stopped")

// persister writes snapshots in the background. Only the newest queued snapshot of
// each kind is written, since each one supersedes the previous.
type persister struct {
	repo   statusRepo.Repository
	logger logger.Logger
	retry  retry.Config

	mu         sync.Mutex
	posts      []domain.StatusPost
	postsDirty bool
	settings   *domain.StatusSettings
	queued     uint64
	written    uint64
	// closed and replaced after every write round
	round chan struct{}

	wake    chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
}

func newPersister(repo statusRepo.Repository, log logger.Logger, cfg retry.Config) *persister {
	ctx, cancel := context.WithCancel(context.Background())
	p := &persister{
		repo:    repo,
		logger:  log,
		retry:   cfg,
		round:   make(chan struct{}),
		wake:    make(chan struct{}, 1),
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *persister) savePosts(posts []domain.StatusPost) {
	p.mu.Lock()
	p.posts = posts
	p.postsDirty = true
	p.queued++
	p.mu.Unlock()
	p.signal()
}

func (p *persister) saveSettings(settings domain.StatusSettings) {
	p.mu.Lock()
	p.settings = &settings
	p.queued++
	p.mu.Unlock()
	p.signal()
}

func (p *persister) signal() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *persister) run() {
	defer close(p.stopped)
	for {
		select {
		case <-p.ctx.Done():
			return
		case <-p.wake:
			p.writePending()
		}
	}
}

func (p *persister) writePending() {
	p.mu.Lock()
	posts, postsDirty, settings := p.posts, p.postsDirty, p.settings
	target := p.queued
	p.posts, p.postsDirty, p.settings = nil, false, nil
	p.mu.Unlock()

	if postsDirty {
		err := retry.Do(p.ctx, p.logger, "save status posts", func() error {
			return p.repo.SavePosts(p.ctx, posts)
		}, p.retry)
		if err != nil {
			p.logger.Error("Failed to persist status posts, keeping in-memory state only", "error", err, "count", len(posts))
		}
	}

	if settings != nil {
		err := retry.Do(p.ctx, p.logger, "save status settings", func() error {
			return p.repo.SaveSettings(p.ctx, *settings)
		}, p.retry)
		if err != nil {
			p.logger.Error("Failed to persist status settings", "error", err)
		}
	}

	p.mu.Lock()
	p.written = target
	close(p.round)
	p.round = make(chan struct{})
	p.mu.Unlock()
}

// flush waits until everything queued before the call has been attempted.
func (p *persister) flush(ctx context.Context) error {
	p.mu.Lock()
	target := p.queued
	for p.written < target {
		round := p.round
		p.mu.Unlock()

		select {
		case <-round:
		case <-p.stopped:
			return errPersisterStopped
		case <-ctx.Done():
			return ctx.Err()
		}

		p.mu.Lock()
	}
	p.mu.Unlock()
	return nil
}

func (p *persister) close(ctx context.Context) error {
	err := p.flush(ctx)
	if errors.Is(err, errPersisterStopped) {
		return nil
	}
	p.cancel()
	<-p.stopped
	return err
}
