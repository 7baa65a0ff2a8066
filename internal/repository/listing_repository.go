package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"review-service/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const listingColumns = `id, owner_id, room_type, address, address_detail, province, city, district, neighborhood,
		latitude, longitude, deposit, price, created_at`

type ListingRepository interface {
	Create(ctx context.Context, listing *model.Listing) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Listing, error)
	// FindFirstByAddress returns the oldest listing whose address equals
	// address exactly, or nil.
	FindFirstByAddress(ctx context.Context, address string) (*model.Listing, error)
}

type postgresListingRepository struct {
	db *sqlx.DB
}

func NewPostgresListingRepository(db *sqlx.DB) ListingRepository {
	return &postgresListingRepository{db: db}
}

func (r *postgresListingRepository) Create(ctx context.Context, l *model.Listing) error {
	query := `
		INSERT INTO listings (owner_id, room_type, address, address_detail, province, city, district, neighborhood,
			latitude, longitude, deposit, price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		l.OwnerID, l.RoomType, l.Address, l.AddressDetail, l.Province, l.City, l.District, l.Neighborhood,
		l.Latitude, l.Longitude, l.Deposit, l.Price,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("ListingRepository.Create: %w", err)
	}
	return nil
}

func (r *postgresListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Listing, error) {
	return r.getOne(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)
}

func (r *postgresListingRepository) FindFirstByAddress(ctx context.Context, address string) (*model.Listing, error) {
	return r.getOne(ctx, `SELECT `+listingColumns+` FROM listings WHERE address = $1 ORDER BY created_at ASC LIMIT 1`, address)
}

func (r *postgresListingRepository) getOne(ctx context.Context, query string, args ...interface{}) (*model.Listing, error) {
	var listing model.Listing
	if err := r.db.GetContext(ctx, &listing, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ListingRepository: %w", err)
	}
	return &listing, nil
}
