package jwt

import (
	"errors"
	"fmt"
	"time"

	"review-service/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var ErrWrongTokenType = errors.New("unexpected token type")

// Manager signs and parses HS256 tokens with one shared secret.
type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GenerateAccessToken returns a token bound to user that expires accessTTL
// after now, together with that expiry. Every call yields a distinct token.
func (m *Manager) GenerateAccessToken(user *model.User, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(m.accessTTL)
	claims := jwt.MapClaims{
		"sub":      user.ID.String(),
		"email":    user.Email,
		"nickname": user.Nickname,
		"typ":      TypeAccess,
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      expiresAt.Unix(),
	}
	token, err := m.sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (m *Manager) GenerateRefreshToken(userID uuid.UUID, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(m.refreshTTL)
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"typ": TypeRefresh,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}
	token, err := m.sign(claims)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (m *Manager) sign(claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ValidateToken verifies signature and expiry.
func (m *Manager) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	return m.parse(tokenString)
}

// ParseIgnoringExpiry verifies the signature only. The reissue flow uses it
// to identify callers whose access token already expired.
func (m *Manager) ParseIgnoringExpiry(tokenString string) (jwt.MapClaims, error) {
	return m.parse(tokenString, jwt.WithoutClaimsValidation())
}

func (m *Manager) parse(tokenString string, opts ...jwt.ParserOption) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, opts...)

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrInvalidKey
}

// IsExpired reports whether tokenString is expired at now. Malformed tokens,
// bad signatures and tokens without exp count as expired.
func (m *Manager) IsExpired(tokenString string, now time.Time) bool {
	claims, err := m.ParseIgnoringExpiry(tokenString)
	if err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return !now.Before(exp.Time)
}

// Subject extracts the user id from claims of the wanted token type.
func Subject(claims jwt.MapClaims, wantType string) (uuid.UUID, error) {
	if typ, _ := claims["typ"].(string); typ != wantType {
		return uuid.Nil, ErrWrongTokenType
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("user id not found in claims")
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid user id format in claims: %w", err)
	}

	return userID, nil
}
