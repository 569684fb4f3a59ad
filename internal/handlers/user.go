package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/models"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/repositories"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository repositories.UserRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository) *UserHandler {
	return &UserHandler{userRepository: userRepo}
}

// GetProfile returns the authenticated user's public profile. The auth
// middleware has already resolved the user from the token.
func (h *UserHandler) GetProfile(c echo.Context) error {
	user := c.Get("user").(*models.User)
	return c.JSON(http.StatusOK, user.Public())
}

// GetUsers returns the public projection of every user.
func (h *UserHandler) GetUsers(c echo.Context) error {
	users, err := h.userRepository.GetUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch users")
	}

	publicUsers := make([]models.PublicUser, 0, len(users))
	for i := range users {
		publicUsers = append(publicUsers, users[i].Public())
	}
	return c.JSON(http.StatusOK, publicUsers)
}
