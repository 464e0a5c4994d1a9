package handler

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/inkpress/publishing-core/internal/api/middleware"
	"github.com/inkpress/publishing-core/internal/core/domain"
	"github.com/inkpress/publishing-core/internal/core/ports"
	"github.com/inkpress/publishing-core/internal/core/store"
)

// AuthHandler serves registration, login, logout, and the current-user
// probe. Tokens only transport an already-verified identity; all
// authorization happens inside the store.
type AuthHandler struct {
	store     *store.Store
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthHandler(st *store.Store, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthHandler{store: st, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

type registerRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Secret string `json:"secret" validate:"required,min=8"`
	Bio    string `json:"bio"`
}

type loginRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Secret string `json:"secret" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Register creates an account with the default role and returns a token for
// it.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.store.RegisterUser(ports.RegisterInput{
		Name:   req.Name,
		Email:  req.Email,
		Secret: req.Secret,
		Bio:    req.Bio,
	})
	if err != nil {
		return err
	}

	return h.respondWithToken(c, http.StatusCreated, id)
}

// Login verifies credentials and returns a token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	id, err := h.store.Authenticate(req.Email, req.Secret)
	if err != nil {
		return err
	}

	return h.respondWithToken(c, http.StatusOK, id)
}

// Logout clears the process session slot.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.store.Logout()
	return c.NoContent(http.StatusNoContent)
}

// Me returns the user behind the presented token.
func (h *AuthHandler) Me(c echo.Context) error {
	u, err := h.store.GetUser(middleware.ActorID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, u)
}

func (h *AuthHandler) respondWithToken(c echo.Context, status int, userID string) error {
	u, err := h.store.GetUser(userID)
	if err != nil {
		return err
	}

	claims := jwt.MapClaims{
		"sub":  u.ID,
		"name": u.Name,
		"role": u.Role,
		"exp":  time.Now().Add(h.tokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.jwtSecret))
	if err != nil {
		return err
	}

	return c.JSON(status, authResponse{Token: token, User: u})
}
