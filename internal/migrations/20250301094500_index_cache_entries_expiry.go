package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upIndexCacheEntriesExpiry, downIndexCacheEntriesExpiry)
}

// The cleanup job deletes by expires_at; permanent entries are left out of the index.
func upIndexCacheEntriesExpiry(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
	CREATE INDEX IF NOT EXISTS cache_entries_expires_at_idx
		ON cache_entries (expires_at)
		WHERE expires_at IS NOT NULL;
	`)
	return err
}

func downIndexCacheEntriesExpiry(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP INDEX IF EXISTS cache_entries_expires_at_idx;`)
	return err
}
