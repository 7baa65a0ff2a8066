package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateDateLogsTable, downCreateDateLogsTable)
}

func upCreateDateLogsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS date_logs (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			created_at DATE NOT NULL,
			last_user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			updated_at DATE NOT NULL
		);
	`)
	return err
}

func downCreateDateLogsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS date_logs;`)
	return err
}
