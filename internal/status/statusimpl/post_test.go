package statusimpl

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/orgball2608/status-engine/internal/domain"
	statusRepo "github.com/orgball2608/status-engine/internal/repositories/status"
	"github.com/orgball2608/status-engine/pkg/errors"
	"github.com/orgball2608/status-engine/pkg/logger"
)

func TestCreateSetsSystemFields(t *testing.T) {
	engine, _, _ := newMemoryEngine(t)

	post := mustCreate(t, engine, imageSpec(alice, "media/a.jpg"))

	if post.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !post.CreatedAt.Equal(start) {
		t.Fatalf("expected createdAt %v got %v", start, post.CreatedAt)
	}
	if !post.ExpiresAt.Equal(start.Add(24 * time.Hour)) {
		t.Fatalf("expected expiresAt %v got %v", start.Add(24*time.Hour), post.ExpiresAt)
	}
	if !post.Active || len(post.Reactions) != 0 || len(post.Views) != 0 {
		t.Fatalf("expected active post without engagement got %+v", post)
	}
	if post.AuthorName != alice.Name || post.AuthorAvatarRef != alice.AvatarRef {
		t.Fatalf("author identity not copied: %+v", post)
	}
}

func TestCreatePrependsNewest(t *testing.T) {
	engine, _, clock := newMemoryEngine(t)

	first := mustCreate(t, engine, textSpec(alice, "first"))
	clock.Advance(time.Second)
	second := mustCreate(t, engine, textSpec(alice, "second"))

	got := engine.GetByAuthor(alice.ID)
	if len(got) != 2 || got[0].ID != second.ID || got[1].ID != first.ID {
		t.Fatalf("expected newest first, got %v", got)
	}
}

func TestCreateRejectsMismatchedPayload(t *testing.T) {
	engine, _, _ := newMemoryEngine(t)

	tests := []struct {
		name string
		spec domain.PostSpec
	}{
		{
			name: "image kind without media",
			spec: domain.PostSpec{Author: alice, Kind: domain.PostKindImage, Text: &domain.TextPayload{Body: "hi"}},
		},
		{
			name: "text kind without text",
			spec: domain.PostSpec{Author: alice, Kind: domain.PostKindText, Image: &domain.ImagePayload{MediaRef: "m"}},
		},
		{
			name: "unknown kind",
			spec: domain.PostSpec{Author: alice, Kind: "video"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := engine.Create(tt.spec)
			if !errors.IsInvalidPayload(err) {
				t.Fatalf("expected invalid payload error got %v", err)
			}
		})
	}

	if got := engine.GetByAuthor(alice.ID); len(got) != 0 {
		t.Fatalf("rejected creates must not touch the collection, got %d posts", len(got))
	}
}

func TestCreateUsesDefaultVisibility(t *testing.T) {
	engine, _, _ := newMemoryEngine(t)

	closeFriends := domain.VisibilityCloseFriends
	engine.UpdateSettings(domain.SettingsPatch{DefaultVisibility: &closeFriends})

	implicit := mustCreate(t, engine, textSpec(alice, "implicit"))
	if implicit.Visibility != domain.VisibilityCloseFriends {
		t.Fatalf("expected default visibility got %q", implicit.Visibility)
	}

	spec := textSpec(alice, "explicit")
	spec.Visibility = domain.VisibilityPublic
	explicit := mustCreate(t, engine, spec)
	if explicit.Visibility != domain.VisibilityPublic {
		t.Fatalf("expected explicit visibility got %q", explicit.Visibility)
	}
}

func TestGetByAuthorHonorsTTL(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    int
	}{
		{name: "just before expiry", elapsed: 23*time.Hour + 59*time.Minute, want: 1},
		{name: "exactly at expiry", elapsed: 24 * time.Hour, want: 0},
		{name: "after expiry", elapsed: 24*time.Hour + time.Second, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _, clock := newMemoryEngine(t)
			mustCreate(t, engine, textSpec(alice, "ttl"))

			clock.Advance(tt.elapsed)

			if got := engine.GetByAuthor(alice.ID); len(got) != tt.want {
				t.Fatalf("expected %d posts got %d", tt.want, len(got))
			}
			if got := engine.CurrentRings(); len(got) != tt.want {
				t.Fatalf("expected %d rings got %d", tt.want, len(got))
			}
		})
	}
}

func TestDelete(t *testing.T) {
	engine, repo, _ := newMemoryEngine(t)

	keep := mustCreate(t, engine, textSpec(alice, "keep"))
	drop := mustCreate(t, engine, textSpec(alice, "drop"))

	engine.Delete(drop.ID)
	engine.Delete("missing")

	got := engine.GetByAuthor(alice.ID)
	if len(got) != 1 || got[0].ID != keep.ID {
		t.Fatalf("expected only %s to remain, got %v", keep.ID, got)
	}
	if rings := engine.CurrentRings(); len(rings) != 1 || rings[0].PostCount != 1 {
		t.Fatalf("expected ring recomputed after delete, got %v", rings)
	}

	flush(t, engine)
	stored, err := repo.LoadPosts(context.Background())
	if err != nil {
		t.Fatalf("load stored posts: %v", err)
	}
	if len(stored) != 1 || stored[0].ID != keep.ID {
		t.Fatalf("expected deletion persisted, got %v", stored)
	}
}

func TestInactivePostsAreHidden(t *testing.T) {
	clock := clockwork.NewFakeClockAt(start)
	repo := statusRepo.NewMemory(logger.NewNop())

	inactive := domain.StatusPost{
		ID:        "inactive",
		AuthorID:  alice.ID,
		Kind:      domain.PostKindText,
		Text:      &domain.TextPayload{Body: "hidden"},
		CreatedAt: start,
		ExpiresAt: start.Add(domain.StatusTTL),
		Active:    false,
	}
	if err := repo.SavePosts(context.Background(), []domain.StatusPost{inactive}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	engine := newEngine(t, repo, clock)
	if got := engine.GetByAuthor(alice.ID); len(got) != 0 {
		t.Fatalf("inactive post returned: %v", got)
	}
	if got := engine.CurrentRings(); len(got) != 0 {
		t.Fatalf("inactive post produced a ring: %v", got)
	}
}
