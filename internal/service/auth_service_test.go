package service_test

import (
	"context"
	"testing"
	"time"

	"review-service/internal/jwt"
	"review-service/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService_RegisterHashesPassword(t *testing.T) {
	users := newFakeUserRepo()
	svc := service.NewAuthService(users, &fakeTokenRepo{}, jwt.NewManager(testSecret, time.Hour, time.Hour))

	univ := "KAIST"
	user, err := svc.Register(context.Background(), "new@example.com", "s3cret!", "newbie", &univ)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret!", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret!")))

	stored, err := users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "newbie", stored.Nickname)
}

func TestAuthService_Login(t *testing.T) {
	tokens := &fakeTokenRepo{}
	manager := jwt.NewManager(testSecret, time.Hour, 14*24*time.Hour)
	svc := service.NewAuthService(newFakeUserRepo(), tokens, manager)
	ctx := context.Background()

	user, err := svc.Register(ctx, "login@example.com", "password123", "login", nil)
	require.NoError(t, err)

	record, err := svc.Login(ctx, "login@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, record.UserID)
	require.Len(t, tokens.records, 1)

	claims, err := manager.ValidateToken(record.AccessToken)
	require.NoError(t, err)
	sub, err := jwt.Subject(claims, jwt.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sub)
	assert.True(t, record.RefreshTokenExpiresAt.After(record.AccessTokenExpiresAt))

	_, err = svc.Login(ctx, "login@example.com", "wrong")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "password123")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
}
