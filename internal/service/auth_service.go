package service

import (
	"context"
	"time"

	"review-service/internal/jwt"
	"review-service/internal/model"
	"review-service/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, email, password, nickname string, university *string) (*model.User, error)
	Login(ctx context.Context, email, password string) (*model.TokenRecord, error)
}

type authService struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	tokens    *jwt.Manager
}

func NewAuthService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, tokens *jwt.Manager) AuthService {
	return &authService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokens:    tokens,
	}
}

func (s *authService) Register(ctx context.Context, email, password, nickname string, university *string) (*model.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Nickname:     nickname,
		University:   university,
	}

	newID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = newID

	return user, nil
}

// Login checks the credentials and stores a fresh token pair.
func (s *authService) Login(ctx context.Context, email, password string) (*model.TokenRecord, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	accessToken, accessExpiresAt, err := s.tokens.GenerateAccessToken(user, now)
	if err != nil {
		return nil, err
	}
	refreshToken, refreshExpiresAt, err := s.tokens.GenerateRefreshToken(user.ID, now)
	if err != nil {
		return nil, err
	}

	record := &model.TokenRecord{
		UserID:                user.ID,
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  accessExpiresAt,
		RefreshTokenExpiresAt: refreshExpiresAt,
	}
	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}
