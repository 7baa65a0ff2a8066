package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"review-service/internal/jwt"
	"review-service/internal/model"
	"review-service/internal/repository"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ErrRefreshTokenExpired = errors.New("refresh token has expired")

var tokenRotationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "token_rotations_total",
		Help: "Access token reissue attempts by result",
	},
	[]string{"result"},
)

type TokenService interface {
	IsExpired(accessToken string) bool
	Reissue(ctx context.Context, callerID uuid.UUID, accessToken, refreshToken string) (*model.TokenRecord, error)
}

type tokenService struct {
	tokenRepo repository.TokenRepository
	userRepo  repository.UserRepository
	tokens    *jwt.Manager
}

func NewTokenService(tokenRepo repository.TokenRepository, userRepo repository.UserRepository, tokens *jwt.Manager) TokenService {
	return &tokenService{
		tokenRepo: tokenRepo,
		userRepo:  userRepo,
		tokens:    tokens,
	}
}

func (s *tokenService) IsExpired(accessToken string) bool {
	return s.tokens.IsExpired(accessToken, time.Now())
}

// Reissue replaces the access token of the record holding exactly
// (accessToken, refreshToken). The refresh token and its expiry are kept.
// callerID must own the record.
func (s *tokenService) Reissue(ctx context.Context, callerID uuid.UUID, accessToken, refreshToken string) (*model.TokenRecord, error) {
	record, err := s.reissue(ctx, callerID, accessToken, refreshToken)
	if err != nil {
		tokenRotationsTotal.WithLabelValues(rotationResult(err)).Inc()
		return nil, err
	}
	tokenRotationsTotal.WithLabelValues("rotated").Inc()
	slog.InfoContext(ctx, "access token reissued", "user_id", record.UserID)
	return record, nil
}

func (s *tokenService) reissue(ctx context.Context, callerID uuid.UUID, accessToken, refreshToken string) (*model.TokenRecord, error) {
	if accessToken == "" || refreshToken == "" {
		return nil, ErrTokenNotFound
	}

	record, err := s.tokenRepo.FindByPair(ctx, accessToken, refreshToken)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrTokenNotFound
	}

	if record.UserID != callerID {
		return nil, ErrTokenOwnerMismatch
	}

	now := time.Now()
	if !now.Before(record.RefreshTokenExpiresAt) {
		return nil, ErrRefreshTokenExpired
	}

	user, err := s.userRepo.FindByID(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	newAccessToken, expiresAt, err := s.tokens.GenerateAccessToken(user, now)
	if err != nil {
		return nil, err
	}

	rotated := *record
	rotated.AccessToken = newAccessToken
	rotated.AccessTokenExpiresAt = expiresAt

	if err := s.tokenRepo.UpdateAccessToken(ctx, &rotated, record.AccessToken); err != nil {
		if errors.Is(err, repository.ErrStaleToken) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	return &rotated, nil
}

func rotationResult(err error) string {
	switch {
	case errors.Is(err, ErrTokenNotFound):
		return "rejected"
	case errors.Is(err, ErrTokenOwnerMismatch):
		return "owner_mismatch"
	case errors.Is(err, ErrRefreshTokenExpired):
		return "expired"
	default:
		return "error"
	}
}
