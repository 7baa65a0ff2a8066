package model

import (
	"time"

	"github.com/google/uuid"
)

// TokenRecord is the stored access/refresh pair of one login.
type TokenRecord struct {
	ID                    uuid.UUID `db:"id" json:"-"`
	UserID                uuid.UUID `db:"user_id" json:"id"`
	AccessToken           string    `db:"access_token" json:"access_token"`
	RefreshToken          string    `db:"refresh_token" json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `db:"access_token_expires_at" json:"access_token_expired_at"`
	RefreshTokenExpiresAt time.Time `db:"refresh_token_expires_at" json:"refresh_token_expired_at"`
	CreatedAt             time.Time `db:"created_at" json:"-"`
}
