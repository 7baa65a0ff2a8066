package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Nickname     string    `db:"nickname"`
	University   *string   `db:"university"`
	CreatedAt    time.Time `db:"created_at"`
}
