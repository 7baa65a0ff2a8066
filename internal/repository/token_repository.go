package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"review-service/internal/model"

	"github.com/jmoiron/sqlx"
)

// ErrStaleToken means the record no longer holds the access token the
// update was conditioned on.
var ErrStaleToken = errors.New("token record was rotated concurrently")

type TokenRepository interface {
	Create(ctx context.Context, token *model.TokenRecord) error
	// FindByPair returns nil when no record holds both tokens.
	FindByPair(ctx context.Context, accessToken, refreshToken string) (*model.TokenRecord, error)
	// UpdateAccessToken stores token's access fields if the record still
	// holds previousAccessToken, else returns ErrStaleToken.
	UpdateAccessToken(ctx context.Context, token *model.TokenRecord, previousAccessToken string) error
}

type postgresTokenRepository struct {
	db *sqlx.DB
}

func NewPostgresTokenRepository(db *sqlx.DB) TokenRepository {
	return &postgresTokenRepository{db: db}
}

func (r *postgresTokenRepository) Create(ctx context.Context, token *model.TokenRecord) error {
	query := `
		INSERT INTO tokens (user_id, access_token, refresh_token, access_token_expires_at, refresh_token_expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	return r.db.QueryRowxContext(ctx, query,
		token.UserID, token.AccessToken, token.RefreshToken, token.AccessTokenExpiresAt, token.RefreshTokenExpiresAt,
	).Scan(&token.ID, &token.CreatedAt)
}

func (r *postgresTokenRepository) FindByPair(ctx context.Context, accessToken, refreshToken string) (*model.TokenRecord, error) {
	var token model.TokenRecord
	query := `
		SELECT id, user_id, access_token, refresh_token, access_token_expires_at, refresh_token_expires_at, created_at
		FROM tokens
		WHERE access_token = $1 AND refresh_token = $2
	`
	err := r.db.GetContext(ctx, &token, query, accessToken, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *postgresTokenRepository) UpdateAccessToken(ctx context.Context, token *model.TokenRecord, previousAccessToken string) error {
	query := `
		UPDATE tokens
		SET access_token = $1, access_token_expires_at = $2
		WHERE id = $3 AND access_token = $4
	`
	res, err := r.db.ExecContext(ctx, query, token.AccessToken, token.AccessTokenExpiresAt, token.ID, previousAccessToken)
	if err != nil {
		return fmt.Errorf("TokenRepository.UpdateAccessToken: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("TokenRepository.UpdateAccessToken: %w", err)
	}
	if n == 0 {
		return ErrStaleToken
	}
	return nil
}
