package model

import (
	"time"

	"github.com/google/uuid"
)

type DateLog struct {
	ID         uuid.UUID `db:"id"`
	UserID     uuid.UUID `db:"user_id"`
	CreatedAt  time.Time `db:"created_at"`
	LastUserID uuid.UUID `db:"last_user_id"`
	UpdatedAt  time.Time `db:"updated_at"`
}
