package status

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orgball2608/status-engine/internal/domain"
	"github.com/orgball2608/status-engine/internal/repositories"
	errs "github.com/orgball2608/status-engine/pkg/errors"
	"github.com/orgball2608/status-engine/pkg/logger"
	"github.com/samber/lo"
)

const (
	postsTable     = "status_posts"
	reactionsTable = "status_reactions"
	viewsTable     = "status_views"
	settingsTable  = "status_settings"

	// status_settings holds a single row.
	settingsRowID = 1
)

type Pgx struct {
	pg     *pgxpool.Pool
	logger logger.Logger
}

func NewPgx(pg *pgxpool.Pool, logger logger.Logger) *Pgx {
	return &Pgx{
		pg:     pg,
		logger: logger.WithComponent("StatusRepo"),
	}
}

var _ Repository = (*Pgx)(nil)

// LoadPosts returns the stored collection in its saved order with reactions and
// views attached in insertion order.
func (p *Pgx) LoadPosts(ctx context.Context) ([]domain.StatusPost, error) {
	query, args, err := repositories.SqBuilder.
		Select(
			"id", "author_id", "author_name", "author_avatar_ref", "kind",
			"media_ref", "text_body", "background_color", "text_color", "font",
			"caption", "visibility", "allow_list", "block_list",
			"created_at", "expires_at", "active",
		).
		From(postsTable).
		OrderBy("position ASC").
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return nil, errs.Storage(err, "query status posts")
	}
	defer rows.Close()

	var posts []domain.StatusPost
	index := make(map[string]int)
	for rows.Next() {
		var post domain.StatusPost
		var mediaRef, body, background, textColor, font string
		if err := rows.Scan(
			&post.ID, &post.AuthorID, &post.AuthorName, &post.AuthorAvatarRef, &post.Kind,
			&mediaRef, &body, &background, &textColor, &font,
			&post.Caption, &post.Visibility, &post.AllowList, &post.BlockList,
			&post.CreatedAt, &post.ExpiresAt, &post.Active,
		); err != nil {
			return nil, errs.Storage(err, "scan status post")
		}

		switch post.Kind {
		case domain.PostKindImage:
			post.Image = &domain.ImagePayload{MediaRef: mediaRef}
		case domain.PostKindText:
			post.Text = &domain.TextPayload{Body: body, BackgroundColor: background, TextColor: textColor, Font: font}
		}
		post.Reactions = []domain.Reaction{}
		post.Views = []domain.View{}

		index[post.ID] = len(posts)
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, errs.Storage(err, "iterate status posts")
	}

	if len(posts) == 0 {
		return nil, nil
	}

	if err := p.loadReactions(ctx, posts, index); err != nil {
		return nil, err
	}
	if err := p.loadViews(ctx, posts, index); err != nil {
		return nil, err
	}

	return posts, nil
}

func (p *Pgx) loadReactions(ctx context.Context, posts []domain.StatusPost, index map[string]int) error {
	query, args, err := repositories.SqBuilder.
		Select("id", "post_id", "viewer_id", "viewer_name", "viewer_avatar_ref", "kind", "glyph", "created_at").
		From(reactionsTable).
		OrderBy("post_id ASC", "position ASC").
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return errs.Storage(err, "query status reactions")
	}
	defer rows.Close()

	for rows.Next() {
		var r domain.Reaction
		if err := rows.Scan(&r.ID, &r.PostID, &r.ViewerID, &r.ViewerName, &r.ViewerAvatarRef, &r.Kind, &r.Glyph, &r.CreatedAt); err != nil {
			return errs.Storage(err, "scan status reaction")
		}
		i, ok := index[r.PostID]
		if !ok {
			continue
		}
		posts[i].Reactions = append(posts[i].Reactions, r)
	}
	if err := rows.Err(); err != nil {
		return errs.Storage(err, "iterate status reactions")
	}
	return nil
}

func (p *Pgx) loadViews(ctx context.Context, posts []domain.StatusPost, index map[string]int) error {
	query, args, err := repositories.SqBuilder.
		Select("id", "post_id", "viewer_id", "viewer_name", "viewer_avatar_ref", "viewed_at").
		From(viewsTable).
		OrderBy("post_id ASC", "position ASC").
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	rows, err := p.pg.Query(ctx, query, args...)
	if err != nil {
		return errs.Storage(err, "query status views")
	}
	defer rows.Close()

	for rows.Next() {
		var v domain.View
		if err := rows.Scan(&v.ID, &v.PostID, &v.ViewerID, &v.ViewerName, &v.ViewerAvatarRef, &v.ViewedAt); err != nil {
			return errs.Storage(err, "scan status view")
		}
		i, ok := index[v.PostID]
		if !ok {
			continue
		}
		posts[i].Views = append(posts[i].Views, v)
	}
	if err := rows.Err(); err != nil {
		return errs.Storage(err, "iterate status views")
	}
	return nil
}

// SavePosts replaces the stored collection with posts in one transaction.
func (p *Pgx) SavePosts(ctx context.Context, posts []domain.StatusPost) error {
	tx, err := p.pg.Begin(ctx)
	if err != nil {
		return errs.Storage(err, "begin save status posts")
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			p.logger.Error("Failed to roll back status save", "error", err)
		}
	}()

	// reactions and views go with their posts via ON DELETE CASCADE
	if _, err := tx.Exec(ctx, "DELETE FROM "+postsTable); err != nil {
		return errs.Storage(err, "clear status posts")
	}

	if len(posts) > 0 {
		if err := insertPosts(ctx, tx, posts); err != nil {
			return err
		}
		if err := insertReactions(ctx, tx, posts); err != nil {
			return err
		}
		if err := insertViews(ctx, tx, posts); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Storage(err, "commit status posts")
	}

	p.logger.Debug("Saved status posts", "count", len(posts))
	return nil
}

// Postgres accepts at most 65535 bind parameters per statement.
const maxBindParams = 65535

var (
	postColumns = []string{
		"id", "position", "author_id", "author_name", "author_avatar_ref", "kind",
		"media_ref", "text_body", "background_color", "text_color", "font",
		"caption", "visibility", "allow_list", "block_list",
		"created_at", "expires_at", "active",
	}
	reactionColumns = []string{"id", "post_id", "position", "viewer_id", "viewer_name", "viewer_avatar_ref", "kind", "glyph", "created_at"}
	viewColumns     = []string{"id", "post_id", "position", "viewer_id", "viewer_name", "viewer_avatar_ref", "viewed_at"}
)

type execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func insertPosts(ctx context.Context, tx execer, posts []domain.StatusPost) error {
	rows := make([][]any, 0, len(posts))
	for i, post := range posts {
		var mediaRef string
		var text domain.TextPayload
		if post.Image != nil {
			mediaRef = post.Image.MediaRef
		}
		if post.Text != nil {
			text = *post.Text
		}
		rows = append(rows, []any{
			post.ID, i, post.AuthorID, post.AuthorName, post.AuthorAvatarRef, string(post.Kind),
			mediaRef, text.Body, text.BackgroundColor, text.TextColor, text.Font,
			post.Caption, string(post.Visibility), nonNil(post.AllowList), nonNil(post.BlockList),
			post.CreatedAt, post.ExpiresAt, post.Active,
		})
	}
	return insertRows(ctx, tx, postsTable, postColumns, rows, "insert status posts")
}

func insertReactions(ctx context.Context, tx execer, posts []domain.StatusPost) error {
	var rows [][]any
	for _, post := range posts {
		for i, r := range post.Reactions {
			rows = append(rows, []any{r.ID, post.ID, i, r.ViewerID, r.ViewerName, r.ViewerAvatarRef, string(r.Kind), r.Glyph, r.CreatedAt})
		}
	}
	return insertRows(ctx, tx, reactionsTable, reactionColumns, rows, "insert status reactions")
}

func insertViews(ctx context.Context, tx execer, posts []domain.StatusPost) error {
	var rows [][]any
	for _, post := range posts {
		for i, v := range post.Views {
			rows = append(rows, []any{v.ID, post.ID, i, v.ViewerID, v.ViewerName, v.ViewerAvatarRef, v.ViewedAt})
		}
	}
	return insertRows(ctx, tx, viewsTable, viewColumns, rows, "insert status views")
}

// insertRows writes rows in as many multi-row INSERTs as the bind parameter limit needs.
func insertRows(ctx context.Context, tx execer, table string, columns []string, rows [][]any, msg string) error {
	for _, batch := range lo.Chunk(rows, maxBindParams/len(columns)) {
		builder := repositories.SqBuilder.Insert(table).Columns(columns...)
		for _, row := range batch {
			builder = builder.Values(row...)
		}

		query, args, err := builder.ToSql()
		if err != nil {
			return repositories.ErrBadQuery
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return errs.Storage(err, msg)
		}
	}
	return nil
}

func (p *Pgx) LoadSettings(ctx context.Context) (*domain.StatusSettings, error) {
	query, args, err := repositories.SqBuilder.
		Select(
			"auto_save_to_gallery", "allow_replies", "show_viewers", "allow_forwarding",
			"default_visibility", "muted_author_ids", "close_friends_ids",
		).
		From(settingsTable).
		Where(sq.Eq{"id": settingsRowID}).
		ToSql()
	if err != nil {
		return nil, repositories.ErrBadQuery
	}

	var s domain.StatusSettings
	err = p.pg.QueryRow(ctx, query, args...).Scan(
		&s.AutoSaveToGallery, &s.AllowReplies, &s.ShowViewers, &s.AllowForwarding,
		&s.DefaultVisibility, &s.MutedAuthorIDs, &s.CloseFriendsIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errs.Storage(err, "load status settings")
	}
	return &s, nil
}

func (p *Pgx) SaveSettings(ctx context.Context, s domain.StatusSettings) error {
	query, args, err := repositories.SqBuilder.
		Insert(settingsTable).
		Columns(
			"id", "auto_save_to_gallery", "allow_replies", "show_viewers", "allow_forwarding",
			"default_visibility", "muted_author_ids", "close_friends_ids", "updated_at",
		).
		Values(
			settingsRowID, s.AutoSaveToGallery, s.AllowReplies, s.ShowViewers, s.AllowForwarding,
			string(s.DefaultVisibility), nonNil(s.MutedAuthorIDs), nonNil(s.CloseFriendsIDs), time.Now(),
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			auto_save_to_gallery = EXCLUDED.auto_save_to_gallery,
			allow_replies = EXCLUDED.allow_replies,
			show_viewers = EXCLUDED.show_viewers,
			allow_forwarding = EXCLUDED.allow_forwarding,
			default_visibility = EXCLUDED.default_visibility,
			muted_author_ids = EXCLUDED.muted_author_ids,
			close_friends_ids = EXCLUDED.close_friends_ids,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return repositories.ErrBadQuery
	}

	if _, err := p.pg.Exec(ctx, query, args...); err != nil {
		return errs.Storage(err, "save status settings")
	}
	return nil
}

func (p *Pgx) PurgeExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := repositories.SqBuilder.
		Delete(postsTable).
		Where(sq.LtOrEq{"expires_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, repositories.ErrBadQuery
	}

	result, err := p.pg.Exec(ctx, query, args...)
	if err != nil {
		return 0, errs.Storage(err, "purge expired status posts")
	}
	return result.RowsAffected(), nil
}

// pgx encodes a nil slice as NULL; the array columns are NOT NULL.
func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
