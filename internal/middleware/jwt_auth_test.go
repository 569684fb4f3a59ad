package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/models"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[uint]*models.User
}

func (s *stubUserRepo) CreateUser(u *models.User) error { s.users[u.ID] = u; return nil }

func (s *stubUserRepo) GetUserByID(id uint) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) GetUserByUsername(string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) GetUserByEmail(string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) GetUsers() ([]models.User, error) { return nil, nil }

func (s *stubUserRepo) GetUsersByIDs([]uint) ([]models.User, error) { return nil, nil }

func setupAuthTest(t *testing.T) (*token.Service, *stubUserRepo, echo.HandlerFunc) {
	t.Helper()
	tokens := token.NewService("test-secret", token.Lifetime)
	repo := &stubUserRepo{users: map[uint]*models.User{}}

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	return tokens, repo, JWTAuthMiddleware(tokens, repo)(next)
}

func invoke(handler echo.HandlerFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, c, handler(c)
}

func TestMissingHeaderRejected(t *testing.T) {
	_, _, handler := setupAuthTest(t)

	_, _, err := invoke(handler, "")
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestMalformedHeaderRejected(t *testing.T) {
	_, _, handler := setupAuthTest(t)

	for _, header := range []string{"Bearer", "Token abc", "Bearer a b"} {
		_, _, err := invoke(handler, header)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	_, _, handler := setupAuthTest(t)

	_, _, err := invoke(handler, "Bearer not-a-jwt")
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestExpiredTokenRejected(t *testing.T) {
	_, repo, handler := setupAuthTest(t)

	user := &models.User{ID: 1, Username: "ana", Email: "ana@x.com"}
	repo.users[1] = user

	expired := token.NewService("test-secret", -time.Hour)
	raw, err := expired.Issue(user)
	require.NoError(t, err)

	_, _, mwErr := invoke(handler, "Bearer "+raw)
	var he *echo.HTTPError
	require.ErrorAs(t, mwErr, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestTokenForDeletedUserRejected(t *testing.T) {
	tokens, _, handler := setupAuthTest(t)

	// Issue a token for a user that is absent from the store.
	raw, err := tokens.Issue(&models.User{ID: 99, Username: "ghost", Email: "ghost@x.com"})
	require.NoError(t, err)

	_, _, mwErr := invoke(handler, "Bearer "+raw)
	var he *echo.HTTPError
	require.ErrorAs(t, mwErr, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestValidTokenResolvesUser(t *testing.T) {
	tokens, repo, handler := setupAuthTest(t)

	user := &models.User{ID: 1, Username: "ana", Email: "ana@x.com"}
	repo.users[1] = user

	raw, err := tokens.Issue(user)
	require.NoError(t, err)

	rec, c, mwErr := invoke(handler, "Bearer "+raw)
	require.NoError(t, mwErr)
	assert.Equal(t, http.StatusOK, rec.Code)

	resolved, ok := c.Get("user").(*models.User)
	require.True(t, ok)
	assert.Equal(t, uint(1), resolved.ID)
	assert.Equal(t, "ana", resolved.Username)
}
