package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/models"
)

// Lifetime is the fixed validity window of an issued token.
const Lifetime = 4 * time.Hour

var (
	// ErrInvalidToken covers malformed tokens, wrong signatures and
	// unexpected signing methods.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken means the signature checked out but the token is past
	// its expiry. Tokens are not revocable before expiry.
	ErrExpiredToken = errors.New("token expired")
)

// Service issues and verifies signed, time-bounded identity tokens. It holds
// the process-wide signing secret and is safe for concurrent use.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token Service signing with the given secret.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token embedding the user's identity claims.
func (s *Service) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a raw token string and returns its claims.
// Validity is purely computed: signature check plus expiry check.
func (s *Service) Verify(raw string) (*models.JwtCustomClaims, error) {
	claims := &models.JwtCustomClaims{}
	t, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !t.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
