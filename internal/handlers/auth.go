package handlers

import (
	"errors"
	"net/http"

	"github.com/Manav-Nocode/campus-app/internal/auth"
	"github.com/Manav-Nocode/campus-app/internal/domain"
	"github.com/Manav-Nocode/campus-app/internal/middleware"
	"github.com/labstack/echo/v4"
)

// AuthHandler handles signup and login requests.
type AuthHandler struct {
	users  domain.UserRepository
	tokens *auth.TokenManager
	hasher *auth.PasswordHasher
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users domain.UserRepository, tokens *auth.TokenManager, hasher *auth.PasswordHasher) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
		hasher: hasher,
	}
}

// SignupPost creates a new user account and returns a bearer token.
func (h *AuthHandler) SignupPost(c echo.Context) error {
	ctx := c.Request().Context()

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "UID, name and password are required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "UID, name and password are required"})
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to hash password", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}

	user, err := h.users.Create(ctx, &domain.User{
		UID:          req.UID,
		Name:         req.Name,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return c.JSON(http.StatusConflict, ErrorResponse{Error: "User with this UID already exists"})
		}
		middleware.FromContext(ctx).Error("Failed to create user", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}

	token, err := h.tokens.Generate(user.ID.String(), user.UID)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to issue token", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		Message: "User created",
		Token:   token,
		User:    NewUserResponse(user),
	})
}

// LoginPost checks uid + password and returns a bearer token.
func (h *AuthHandler) LoginPost(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "UID and password are required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "UID and password are required"})
	}

	user, err := h.users.FindByUID(ctx, req.UID)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to look up user", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}
	// Unknown uid and wrong password produce the same response so the
	// endpoint can't be used to enumerate accounts.
	if user == nil || !h.hasher.Verify(req.Password, user.PasswordHash) {
		middleware.FromContext(ctx).Warn("Failed login attempt", "uid", req.UID)
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid credentials"})
	}

	token, err := h.tokens.Generate(user.ID.String(), user.UID)
	if err != nil {
		middleware.FromContext(ctx).Error("Failed to issue token", "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Server error"})
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Message: "Logged in",
		Token:   token,
		User:    NewUserResponse(user),
	})
}
