package token

import (
	"testing"
	"time"

	"github.com/nandymandy1/auth-crud-vue-flutter/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *models.User {
	return &models.User{
		ID:        42,
		FirstName: "Ana",
		LastName:  "Lee",
		Username:  "ana",
		Email:     "ana@x.com",
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc := NewService("test-secret", Lifetime)

	raw, err := svc.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := svc.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ana@x.com", claims.Email)
	assert.Equal(t, "ana", claims.Username)
	assert.WithinDuration(t, time.Now().Add(Lifetime), claims.ExpiresAt.Time, time.Minute)
}

func TestVerifyExpired(t *testing.T) {
	svc := NewService("test-secret", -time.Hour)

	raw, err := svc.Issue(testUser())
	require.NoError(t, err)

	_, err = svc.Verify(raw)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	raw, err := NewService("secret-a", Lifetime).Issue(testUser())
	require.NoError(t, err)

	_, err = NewService("secret-b", Lifetime).Verify(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	svc := NewService("test-secret", Lifetime)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.Verify(raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}
