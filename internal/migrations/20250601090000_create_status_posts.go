package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateStatusPosts, downCreateStatusPosts)
}

func upCreateStatusPosts(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE status_posts (
		id                TEXT PRIMARY KEY,
		position          INTEGER NOT NULL,
		author_id         TEXT NOT NULL,
		author_name       TEXT NOT NULL DEFAULT '',
		author_avatar_ref TEXT NOT NULL DEFAULT '',
		kind              TEXT NOT NULL CHECK (kind IN ('image', 'text')),
		media_ref         TEXT NOT NULL DEFAULT '',
		text_body         TEXT NOT NULL DEFAULT '',
		background_color  TEXT NOT NULL DEFAULT '',
		text_color        TEXT NOT NULL DEFAULT '',
		font              TEXT NOT NULL DEFAULT '',
		caption           TEXT NOT NULL DEFAULT '',
		visibility        TEXT NOT NULL,
		allow_list        TEXT[] NOT NULL DEFAULT '{}',
		block_list        TEXT[] NOT NULL DEFAULT '{}',
		created_at        TIMESTAMPTZ NOT NULL,
		expires_at        TIMESTAMPTZ NOT NULL,
		active            BOOLEAN NOT NULL DEFAULT TRUE
	);
	CREATE INDEX status_posts_expires_at_idx ON status_posts (expires_at);
	CREATE INDEX status_posts_author_id_idx ON status_posts (author_id);

	CREATE TABLE status_reactions (
		id                TEXT PRIMARY KEY,
		post_id           TEXT NOT NULL REFERENCES status_posts (id) ON DELETE CASCADE,
		position          INTEGER NOT NULL,
		viewer_id         TEXT NOT NULL,
		viewer_name       TEXT NOT NULL DEFAULT '',
		viewer_avatar_ref TEXT NOT NULL DEFAULT '',
		kind              TEXT NOT NULL,
		glyph             TEXT NOT NULL,
		created_at        TIMESTAMPTZ NOT NULL,
		UNIQUE (post_id, viewer_id)
	);

	CREATE TABLE status_views (
		id                TEXT PRIMARY KEY,
		post_id           TEXT NOT NULL REFERENCES status_posts (id) ON DELETE CASCADE,
		position          INTEGER NOT NULL,
		viewer_id         TEXT NOT NULL,
		viewer_name       TEXT NOT NULL DEFAULT '',
		viewer_avatar_ref TEXT NOT NULL DEFAULT '',
		viewed_at         TIMESTAMPTZ NOT NULL,
		UNIQUE (post_id, viewer_id)
	);
	`)
	return err
}

func downCreateStatusPosts(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		DROP TABLE IF EXISTS status_views;
		DROP TABLE IF EXISTS status_reactions;
		DROP TABLE IF EXISTS status_posts;
	`)
	return err
}
