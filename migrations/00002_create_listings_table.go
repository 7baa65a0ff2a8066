package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateListingsTable, downCreateListingsTable)
}

func upCreateListingsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS listings (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			room_type TEXT NOT NULL,
			address VARCHAR(100) NOT NULL,
			address_detail VARCHAR(50) NOT NULL DEFAULT '',
			province TEXT NOT NULL,
			city TEXT NOT NULL,
			district TEXT NOT NULL,
			neighborhood TEXT NOT NULL,
			latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			deposit BIGINT NOT NULL DEFAULT 0,
			price BIGINT NOT NULL DEFAULT 0,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_listings_address ON listings(address, created_at);
	`)
	return err
}

func downCreateListingsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS listings;`)
	return err
}
