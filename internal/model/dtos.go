package model

import (
	"time"

	"github.com/google/uuid"
)

type ReviewSummary struct {
	ReviewID      uuid.UUID `json:"review_id"`
	ListingID     uuid.UUID `json:"listing_id"`
	Nickname      string    `json:"nickname,omitempty"`
	Address       string    `json:"address"`
	AddressDetail string    `json:"address_detail"`
	RoomType      string    `json:"room_type"`
	TotalRate     float64   `json:"total_rate"`
	Content       string    `json:"content"`
	ImageURL      *string   `json:"img_url"`
	StartedAt     time.Time `json:"started_at"`
	EndedAt       time.Time `json:"end_at"`
	CreatedAt     time.Time `json:"created_at"`
}

type ReviewDetailSummary struct {
	Address         string  `json:"address"`
	ImageURL        *string `json:"img_url"`
	ReviewCount     int     `json:"review_count"`
	AvgTotalRate    float64 `json:"avg_total_rate"`
	AvgCleanRate    float64 `json:"avg_clean_rate"`
	AvgNoiseRate    float64 `json:"avg_noise_rate"`
	AvgAccessRate   float64 `json:"avg_access_rate"`
	AvgHostRate     float64 `json:"avg_host_rate"`
	AvgFacilityRate float64 `json:"avg_facility_rate"`
}

type OtherReview struct {
	ReviewID   uuid.UUID `json:"review_id"`
	Nickname   string    `json:"nickname"`
	University *string   `json:"univ,omitempty"`
	TotalRate  float64   `json:"total_rate"`
	Content    string    `json:"content"`
	ImageURLs  []string  `json:"img_urls"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"end_at"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReviewSearchResult struct {
	Address      string  `json:"address"`
	AvgTotalRate float64 `json:"avg_total_rate"`
	ReviewCount  int     `json:"review_count"`
	ImageURL     *string `json:"img_url"`
}

type ListingDetail struct {
	Listing
	ImageURL    *string `json:"img_url"`
	ReviewCount int     `json:"review_count"`
	AvgRate     float64 `json:"avg_total_rate"`
}
