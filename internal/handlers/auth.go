package handlers

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/models"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/repositories"
	"github.com/nandymandy1/auth-crud-vue-flutter/internal/token"
	"gorm.io/gorm"
)

// AuthHandler handles registration and login requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	tokens         *token.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, tokens *token.Service) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		tokens:         tokens,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}

// Register handles new user registration. Username and email uniqueness is
// checked before insert; the unique indexes on the users table back this up
// against concurrent registrations.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// Validation for the username
	_, err := h.userRepository.GetUserByUsername(req.Username)
	if err == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"msg":     "Username is already taken.",
			"success": false,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return registerFailed(c)
	}

	// Validation for the email
	_, err = h.userRepository.GetUserByEmail(req.Email)
	if err == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"msg":     "Email is already registered. Did you forget password.",
			"success": false,
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return registerFailed(c)
	}

	hashedPassword, err := repositories.HashPassword(req.Password)
	if err != nil {
		return registerFailed(c)
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashedPassword,
	}

	if err := h.userRepository.CreateUser(user); err != nil {
		return registerFailed(c)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"msg":     "Registration Successful",
		"success": true,
	})
}

// Login authenticates a user by username and password and issues a bearer
// token valid for four hours.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"msg":     "Username not found.",
				"success": false,
			})
		}
		return c.JSON(http.StatusRequestTimeout, echo.Map{
			"msg":     "Unable to login. Please try again.",
			"success": false,
		})
	}

	if !repositories.VerifyPassword(req.Password, user.Password) {
		return c.JSON(http.StatusNotAcceptable, echo.Map{
			"msg":     "Invalid password.",
			"success": false,
		})
	}

	t, err := h.tokens.Issue(user)
	if err != nil {
		return c.JSON(http.StatusRequestTimeout, echo.Map{
			"msg":     "Unable to login. Please try again.",
			"success": false,
		})
	}

	return c.JSON(http.StatusAccepted, echo.Map{
		"success":         true,
		"user_id":         user.ID,
		"tokenExpiration": 4,
		"token":           "Bearer " + t,
		"msg":             "Hurry! You are logged in.",
	})
}

func registerFailed(c echo.Context) error {
	return c.JSON(http.StatusRequestTimeout, echo.Map{
		"msg":     "Unable to register the user please try again.",
		"success": false,
	})
}
