package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/repositories"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/token"
	"gorm.io/gorm"
)

// JWTAuthMiddleware checks for a valid bearer token, resolves it to a user
// record and attaches the user to the request context. Any verification
// failure is reported uniformly as unauthenticated; a token whose user no
// longer exists is treated as invalid.
func JWTAuthMiddleware(tokens *token.Service, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				// Expired and malformed are not distinguished to the caller.
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			user, err := userRepo.GetUserByID(claims.UserID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "Failed to resolve user")
			}

			// Store the resolved user in context for downstream handlers
			c.Set("user", user)

			return next(c)
		}
	}
}
