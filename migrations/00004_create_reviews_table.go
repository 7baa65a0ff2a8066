package migrations

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigrationContext(upCreateReviewsTable, downCreateReviewsTable)
}

func upCreateReviewsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS reviews (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			listing_id UUID NOT NULL REFERENCES listings(id) ON DELETE CASCADE,
			date_log_id UUID NOT NULL REFERENCES date_logs(id),
			address VARCHAR(100) NOT NULL CHECK (address <> ''),
			address_detail VARCHAR(50) NOT NULL DEFAULT '',
			started_at DATE NOT NULL,
			ended_at DATE NOT NULL,
			total_rate NUMERIC(2,1) NOT NULL CHECK (total_rate BETWEEN 0 AND 5),
			clean_rate NUMERIC(2,1) NOT NULL CHECK (clean_rate BETWEEN 0 AND 5),
			noise_rate NUMERIC(2,1) NOT NULL CHECK (noise_rate BETWEEN 0 AND 5),
			access_rate NUMERIC(2,1) NOT NULL CHECK (access_rate BETWEEN 0 AND 5),
			host_rate NUMERIC(2,1) NOT NULL CHECK (host_rate BETWEEN 0 AND 5),
			facility_rate NUMERIC(2,1) NOT NULL CHECK (facility_rate BETWEEN 0 AND 5),
			content TEXT NOT NULL,
			image_id UUID,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT now(),
			deleted_at TIMESTAMP WITH TIME ZONE
		);

		CREATE INDEX IF NOT EXISTS idx_reviews_address ON reviews(address) WHERE deleted_at IS NULL;
		CREATE INDEX IF NOT EXISTS idx_reviews_created_at ON reviews(created_at DESC) WHERE deleted_at IS NULL;
		CREATE INDEX IF NOT EXISTS idx_reviews_listing_id ON reviews(listing_id);
	`)
	return err
}

func downCreateReviewsTable(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS reviews;`)
	return err
}
