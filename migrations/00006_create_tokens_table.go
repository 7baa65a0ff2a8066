package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateTokensTable, downCreateTokensTable)
}

func upCreateTokensTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS tokens (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			access_token TEXT NOT NULL UNIQUE,
			refresh_token TEXT NOT NULL UNIQUE,
			access_token_expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
			refresh_token_expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);
	`)
	return err
}

func downCreateTokensTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS tokens;`)
	return err
}
