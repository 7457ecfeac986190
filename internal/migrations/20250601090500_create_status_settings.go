package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateStatusSettings, downCreateStatusSettings)
}

func upCreateStatusSettings(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE TABLE status_settings (
		id                   SMALLINT PRIMARY KEY CHECK (id = 1),
		auto_save_to_gallery BOOLEAN NOT NULL DEFAULT FALSE,
		allow_replies        BOOLEAN NOT NULL DEFAULT TRUE,
		show_viewers         BOOLEAN NOT NULL DEFAULT TRUE,
		allow_forwarding     BOOLEAN NOT NULL DEFAULT TRUE,
		default_visibility   TEXT NOT NULL DEFAULT 'contacts',
		muted_author_ids     TEXT[] NOT NULL DEFAULT '{}',
		close_friends_ids    TEXT[] NOT NULL DEFAULT '{}',
		updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`)
	return err
}

func downCreateStatusSettings(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS status_settings;`)
	return err
}
