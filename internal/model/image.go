package model

import (
	"time"

	"github.com/google/uuid"
)

// ImageType values match the image_type column.
type ImageType int

const (
	ImageTypeListing ImageType = 0
	ImageTypeReview  ImageType = 3
)

type Image struct {
	ID        uuid.UUID `db:"id"`
	TargetID  uuid.UUID `db:"target_id"`
	ImageType ImageType `db:"image_type"`
	URL       string    `db:"url"`
	IsMain    bool      `db:"is_main"`
	CreatedAt time.Time `db:"created_at"`
}
