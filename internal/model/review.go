package model

import (
	"time"

	"github.com/google/uuid"
)

// Rating bounds shared by the total rating and every dimension.
const (
	MinRate = 0.0
	MaxRate = 5.0
)

type Review struct {
	ID            uuid.UUID  `db:"id"`
	UserID        uuid.UUID  `db:"user_id"`
	ListingID     uuid.UUID  `db:"listing_id"`
	DateLogID     uuid.UUID  `db:"date_log_id"`
	Address       string     `db:"address"`
	AddressDetail string     `db:"address_detail"`
	StartedAt     time.Time  `db:"started_at"`
	EndedAt       time.Time  `db:"ended_at"`
	TotalRate     float64    `db:"total_rate"`
	CleanRate     float64    `db:"clean_rate"`
	NoiseRate     float64    `db:"noise_rate"`
	AccessRate    float64    `db:"access_rate"`
	HostRate      float64    `db:"host_rate"`
	FacilityRate  float64    `db:"facility_rate"`
	Content       string     `db:"content"`
	CreatedAt     time.Time  `db:"created_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
	ImageID       *uuid.UUID `db:"image_id"`
}

func (r Review) IsDeleted() bool {
	return r.DeletedAt != nil
}
