package statusimpl

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/orgball2608/status-engine/internal/domain"
)

func TestReactReplacesPreviousKind(t *testing.T) {
	engine, _, clock := newMemoryEngine(t)
	post := mustCreate(t, engine, textSpec(alice, "hello"))

	engine.React(post.ID, bob, domain.ReactionLove)
	clock.Advance(time.Second)
	engine.React(post.ID, bob, domain.ReactionFire)

	got := engine.GetByAuthor(alice.ID)[0].Reactions
	if len(got) != 1 {
		t.Fatalf("expected exactly one reaction got %d", len(got))
	}
	if got[0].Kind != domain.ReactionFire || got[0].Glyph != "🔥" {
		t.Fatalf("expected fire reaction got %+v", got[0])
	}
	if got[0].ViewerName != bob.Name || !got[0].CreatedAt.Equal(start.Add(time.Second)) {
		t.Fatalf("reaction metadata wrong: %+v", got[0])
	}
}

func TestReactKeepsOtherViewers(t *testing.T) {
	engine, _, _ := newMemoryEngine(t)
	post := mustCreate(t, engine, textSpec(alice, "hello"))

	engine.React(post.ID, bob, domain.ReactionLike)
	engine.React(post.ID, carol, domain.ReactionSad)
	engine.React(post.ID, bob, domain.ReactionWow)

	got := engine.GetByAuthor(alice.ID)[0].Reactions
	if len(got) != 2 {
		t.Fatalf("expected two reactions got %d", len(got))
	}
	if got[0].ViewerID != carol.ID || got[1].ViewerID != bob.ID || got[1].Kind != domain.ReactionWow {
		t.Fatalf("unexpected reactions %+v", got)
	}
}

func TestReactUnknownKindUsesDefaultGlyph(t *testing.T) {
	engine, _, _ := newMemoryEngine(t)
	post := mustCreate(t, engine, textSpec(alice, "hello"))

	engine.React(post.ID, bob, domain.ReactionKind("shrug"))

	got := engine.GetByAuthor(alice.ID)[0].Reactions
	if len(got) != 1 || got[0].Glyph != domain.DefaultGlyph {
		t.Fatalf("expected default glyph got %+v", got)
	}
}

func TestReactIgnoresMissingAndExpiredPosts(t *testing.T) {
	engine, repo, clock := newMemoryEngine(t)
	post := mustCreate(t, engine, textSpec(alice, "hello"))

	engine.React("missing", bob, domain.ReactionLike)

	clock.Advance(24 * time.Hour)
	engine.React(post.ID, bob, domain.ReactionLike)
	engine.MarkViewed(post.ID, bob)
	flush(t, engine)

	stored, err := repo.LoadPosts(context.Background())
	if err != nil {
		t.Fatalf("load stored posts: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("expected the expired post still stored, got %d", len(stored))
	}
	if len(stored[0].Reactions) != 0 || len(stored[0].Views) != 0 {
		t.Fatalf("engagement recorded on an expired post: %+v", stored[0])
	}
}

func TestUnreact(t *testing.T) {
	engine, _, _ := newMemoryEngine(t)
	post := mustCreate(t, engine, textSpec(alice, "hello"))

	engine.React(post.ID, bob, domain.ReactionLaugh)
	engine.React(post.ID, carol, domain.ReactionLove)
	engine.Unreact(post.ID, bob.ID)
	engine.Unreact(post.ID, "nobody")
	engine.Unreact("missing", carol.ID)

	got := engine.GetByAuthor(alice.ID)[0].Reactions
	if len(got) != 1 || got[0].ViewerID != carol.ID {
		t.Fatalf("expected only carol's reaction got %+v", got)
	}
}

func TestMarkViewedIsIdempotent(t *testing.T) {
	engine, _, clock := newMemoryEngine(t)
	post := mustCreate(t, engine, textSpec(alice, "hello"))

	engine.MarkViewed(post.ID, bob)
	clock.Advance(time.Minute)
	engine.MarkViewed(post.ID, bob)

	views := engine.GetByAuthor(alice.ID)[0].Views
	if len(views) != 1 {
		t.Fatalf("expected one view got %d", len(views))
	}
	if !views[0].ViewedAt.Equal(start) {
		t.Fatalf("repeat view overwrote the first: %v", views[0].ViewedAt)
	}
}

func TestConcurrentEngagementKeepsOnePerViewer(t *testing.T) {
	engine, _, _ := newMemoryEngine(t)
	post := mustCreate(t, engine, textSpec(alice, "hello"))

	kinds := []domain.ReactionKind{domain.ReactionLike, domain.ReactionLove, domain.ReactionFire, domain.ReactionSad}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			engine.MarkViewed(post.ID, bob)
			engine.React(post.ID, bob, kinds[i%len(kinds)])
		}(i)
	}
	wg.Wait()

	got := engine.GetByAuthor(alice.ID)[0]
	if len(got.Views) != 1 {
		t.Fatalf("expected one view got %d", len(got.Views))
	}
	if len(got.Reactions) != 1 {
		t.Fatalf("expected one reaction got %d", len(got.Reactions))
	}
}

func TestUnseenFlagPerViewer(t *testing.T) {
	engine, _, _ := newMemoryEngine(t)
	post := mustCreate(t, engine, textSpec(alice, "hello"))

	engine.MarkViewed(post.ID, bob)

	forBob := engine.RingsFor(bob.ID)
	forCarol := engine.RingsFor(carol.ID)
	if len(forBob) != 1 || len(forCarol) != 1 {
		t.Fatalf("expected one ring each, got %v and %v", forBob, forCarol)
	}
	if forBob[0].HasUnseenContent {
		t.Fatalf("bob viewed the post, ring should be seen")
	}
	if !forCarol[0].HasUnseenContent {
		t.Fatalf("carol has not viewed the post, ring should be unseen")
	}
	if forBob[0].AccentColorToken != domain.AccentSeen || forCarol[0].AccentColorToken != domain.AccentUnseen {
		t.Fatalf("unexpected accents %q and %q", forBob[0].AccentColorToken, forCarol[0].AccentColorToken)
	}
}

func TestViewMovesRingBehindUnseen(t *testing.T) {
	engine, _, clock := newMemoryEngine(t)

	mustCreate(t, engine, textSpec(bob, "older"))
	clock.Advance(time.Minute)
	fromCarol := mustCreate(t, engine, textSpec(carol, "newer"))

	if got := ringAuthors(engine.CurrentRings()); got[0] != carol.ID {
		t.Fatalf("expected most recent unseen first, got %v", got)
	}

	engine.MarkViewed(fromCarol.ID, me)

	got := ringAuthors(engine.CurrentRings())
	if len(got) != 2 || got[0] != bob.ID || got[1] != carol.ID {
		t.Fatalf("expected unseen bob before seen carol, got %v", got)
	}
}
