package status

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/orgball2608/status-engine/internal/domain"
)

type recordedExec struct {
	sql  string
	args int
}

type recordingExecer struct {
	calls []recordedExec
}

func (r *recordingExecer) Exec(_ context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	r.calls = append(r.calls, recordedExec{sql: sql, args: len(arguments)})
	return pgconn.CommandTag{}, nil
}

func postsWithEngagement(posts, perPost int) []domain.StatusPost {
	out := make([]domain.StatusPost, posts)
	for i := range out {
		id := fmt.Sprintf("p%d", i)
		out[i] = domain.StatusPost{ID: id, AuthorID: "alice", Kind: domain.PostKindText, Text: &domain.TextPayload{Body: "x"}, CreatedAt: base, ExpiresAt: base, Active: true}
		for j := 0; j < perPost; j++ {
			viewer := fmt.Sprintf("v%d", j)
			out[i].Reactions = append(out[i].Reactions, domain.Reaction{ID: id + viewer, PostID: id, ViewerID: viewer, Kind: domain.ReactionLike})
			out[i].Views = append(out[i].Views, domain.View{ID: id + viewer, PostID: id, ViewerID: viewer})
		}
	}
	return out
}

func TestInsertsStayUnderBindLimit(t *testing.T) {
	posts := postsWithEngagement(4000, 3)

	tests := []struct {
		name    string
		insert  func(context.Context, execer, []domain.StatusPost) error
		rows    int
		columns int
	}{
		{name: "posts", insert: insertPosts, rows: 4000, columns: len(postColumns)},
		{name: "reactions", insert: insertReactions, rows: 12000, columns: len(reactionColumns)},
		{name: "views", insert: insertViews, rows: 12000, columns: len(viewColumns)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingExecer{}
			if err := tt.insert(context.Background(), rec, posts); err != nil {
				t.Fatalf("insert: %v", err)
			}
			if len(rec.calls) < 2 {
				t.Fatalf("expected the insert split into several statements, got %d", len(rec.calls))
			}

			total := 0
			for _, call := range rec.calls {
				if call.args > maxBindParams {
					t.Fatalf("statement carries %d bind params, limit is %d", call.args, maxBindParams)
				}
				if !strings.HasPrefix(call.sql, "INSERT INTO") {
					t.Fatalf("unexpected statement %q", call.sql)
				}
				total += call.args
			}
			if total != tt.rows*tt.columns {
				t.Fatalf("expected %d params across batches got %d", tt.rows*tt.columns, total)
			}
		})
	}
}

func TestInsertWithoutRowsIssuesNothing(t *testing.T) {
	rec := &recordingExecer{}
	if err := insertReactions(context.Background(), rec, postsWithEngagement(5, 0)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(rec.calls) != 0 {
		t.Fatalf("expected no statements for empty reactions, got %d", len(rec.calls))
	}
}
