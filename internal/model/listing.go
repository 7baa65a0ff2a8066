package model

import (
	"time"

	"github.com/google/uuid"
)

// Listing is a rentable room. Province, City, District and Neighborhood are
// the leading parts of Address.
type Listing struct {
	ID            uuid.UUID `db:"id" json:"id"`
	OwnerID       uuid.UUID `db:"owner_id" json:"owner_id"`
	RoomType      string    `db:"room_type" json:"room_type"`
	Address       string    `db:"address" json:"address"`
	AddressDetail string    `db:"address_detail" json:"address_detail"`
	Province      string    `db:"province" json:"province"`
	City          string    `db:"city" json:"city"`
	District      string    `db:"district" json:"district"`
	Neighborhood  string    `db:"neighborhood" json:"neighborhood"`
	Latitude      float64   `db:"latitude" json:"latitude"`
	Longitude     float64   `db:"longitude" json:"longitude"`
	Deposit       int64     `db:"deposit" json:"deposit"`
	Price         int64     `db:"price" json:"price"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
