package repository

import (
	"context"
	"fmt"

	"review-service/internal/model"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type ImageRepository interface {
	Create(ctx context.Context, image *model.Image) error
	// FindByTarget returns images in upload order.
	FindByTarget(ctx context.Context, targetID uuid.UUID, imageType model.ImageType) ([]model.Image, error)
}

type postgresImageRepository struct {
	db *sqlx.DB
}

func NewPostgresImageRepository(db *sqlx.DB) ImageRepository {
	return &postgresImageRepository{db: db}
}

func (r *postgresImageRepository) Create(ctx context.Context, image *model.Image) error {
	query := `
		INSERT INTO images (target_id, image_type, url, is_main)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowxContext(ctx, query, image.TargetID, image.ImageType, image.URL, image.IsMain).
		Scan(&image.ID, &image.CreatedAt)
	if err != nil {
		return fmt.Errorf("ImageRepository.Create: %w", err)
	}
	return nil
}

func (r *postgresImageRepository) FindByTarget(ctx context.Context, targetID uuid.UUID, imageType model.ImageType) ([]model.Image, error) {
	query := `
		SELECT id, target_id, image_type, url, is_main, created_at
		FROM images
		WHERE target_id = $1 AND image_type = $2
		ORDER BY created_at ASC, id ASC
	`
	images := []model.Image{}
	if err := r.db.SelectContext(ctx, &images, query, targetID, imageType); err != nil {
		return nil, fmt.Errorf("ImageRepository.FindByTarget: %w", err)
	}
	return images, nil
}
