package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"review-service/internal/model"
	"review-service/internal/review"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const reviewColumns = `id, user_id, listing_id, date_log_id, address, address_detail, started_at, ended_at,
		total_rate, clean_rate, noise_rate, access_rate, host_rate, facility_rate,
		content, created_at, deleted_at, image_id`

// likeEscaper makes a filter match literally inside LIKE ... ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ReviewRepository reads and writes reviews. Every Find method except
// FindByIDAndUser returns active (not soft-deleted) reviews only.
type ReviewRepository interface {
	// Create stores dateLog and then r, which references it, in one
	// transaction.
	Create(ctx context.Context, dateLog *model.DateLog, r *model.Review) error
	FindByAddress(ctx context.Context, address string) ([]model.Review, error)
	FindByAddressContaining(ctx context.Context, filter string) ([]model.Review, error)
	FindByListing(ctx context.Context, listingID uuid.UUID) ([]model.Review, error)
	FindActive(ctx context.Context, page, pageSize int, key review.SortKey) ([]model.Review, error)
	FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.Review, error)
	SoftDelete(ctx context.Context, id uuid.UUID, deletedAt time.Time) error
}

type postgresReviewRepository struct {
	db *sqlx.DB
}

func NewPostgresReviewRepository(db *sqlx.DB) ReviewRepository {
	return &postgresReviewRepository{db: db}
}

func (r *postgresReviewRepository) Create(ctx context.Context, dateLog *model.DateLog, rv *model.Review) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ReviewRepository.Create: %w", err)
	}
	defer tx.Rollback()

	logQuery := `
		INSERT INTO date_logs (user_id, created_at, last_user_id, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err = tx.QueryRowxContext(ctx, logQuery, dateLog.UserID, dateLog.CreatedAt, dateLog.LastUserID, dateLog.UpdatedAt).
		Scan(&dateLog.ID)
	if err != nil {
		return fmt.Errorf("ReviewRepository.Create date log: %w", err)
	}
	rv.DateLogID = dateLog.ID

	reviewQuery := `
		INSERT INTO reviews (user_id, listing_id, date_log_id, address, address_detail, started_at, ended_at,
			total_rate, clean_rate, noise_rate, access_rate, host_rate, facility_rate, content, image_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at
	`
	err = tx.QueryRowxContext(ctx, reviewQuery,
		rv.UserID, rv.ListingID, rv.DateLogID, rv.Address, rv.AddressDetail, rv.StartedAt, rv.EndedAt,
		rv.TotalRate, rv.CleanRate, rv.NoiseRate, rv.AccessRate, rv.HostRate, rv.FacilityRate,
		rv.Content, rv.ImageID,
	).Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		return fmt.Errorf("ReviewRepository.Create: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ReviewRepository.Create commit: %w", err)
	}
	return nil
}

func (r *postgresReviewRepository) FindByAddress(ctx context.Context, address string) ([]model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE address = $1 AND deleted_at IS NULL ORDER BY created_at DESC`
	reviews := []model.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, address); err != nil {
		return nil, fmt.Errorf("ReviewRepository.FindByAddress: %w", err)
	}
	return reviews, nil
}

func (r *postgresReviewRepository) FindByAddressContaining(ctx context.Context, filter string) ([]model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE deleted_at IS NULL`
	args := []interface{}{}
	if filter != "" {
		query += ` AND address LIKE '%' || $1 || '%' ESCAPE '\'`
		args = append(args, likeEscaper.Replace(filter))
	}
	query += ` ORDER BY created_at DESC`

	reviews := []model.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, args...); err != nil {
		return nil, fmt.Errorf("ReviewRepository.FindByAddressContaining: %w", err)
	}
	return reviews, nil
}

func (r *postgresReviewRepository) FindByListing(ctx context.Context, listingID uuid.UUID) ([]model.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE listing_id = $1 AND deleted_at IS NULL ORDER BY created_at DESC`
	reviews := []model.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, listingID); err != nil {
		return nil, fmt.Errorf("ReviewRepository.FindByListing: %w", err)
	}
	return reviews, nil
}

func (r *postgresReviewRepository) FindActive(ctx context.Context, page, pageSize int, key review.SortKey) ([]model.Review, error) {
	// id breaks ties so OFFSET pages never overlap.
	orderBy := "created_at DESC, id"
	if key == review.SortStar {
		orderBy = "total_rate DESC, created_at DESC, id"
	}

	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE deleted_at IS NULL ORDER BY %s LIMIT $1 OFFSET $2`, reviewColumns, orderBy)
	reviews := []model.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, pageSize, page*pageSize); err != nil {
		return nil, fmt.Errorf("ReviewRepository.FindActive: %w", err)
	}
	return reviews, nil
}

func (r *postgresReviewRepository) FindByIDAndUser(ctx context.Context, id, userID uuid.UUID) (*model.Review, error) {
	var rv model.Review
	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1 AND user_id = $2`
	err := r.db.GetContext(ctx, &rv, query, id, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ReviewRepository.FindByIDAndUser: %w", err)
	}
	return &rv, nil
}

func (r *postgresReviewRepository) SoftDelete(ctx context.Context, id uuid.UUID, deletedAt time.Time) error {
	query := `UPDATE reviews SET deleted_at = $1 WHERE id = $2 AND deleted_at IS NULL`
	if _, err := r.db.ExecContext(ctx, query, deletedAt, id); err != nil {
		return fmt.Errorf("ReviewRepository.SoftDelete: %w", err)
	}
	return nil
}
