package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/bowlapp/storefront/internal/api/metrics"
	"github.com/bowlapp/storefront/internal/api/middleware"
	"github.com/bowlapp/storefront/internal/core/ports"
)

type AuthHandler struct {
	store     ports.SessionStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthHandler(store ports.SessionStore, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	if tokenTTL <= 0 {
		tokenTTL = middleware.DefaultTokenTTL
	}
	return &AuthHandler{store: store, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Signup creates an account and logs the new user in.
//
// @Summary      Sign up
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Signup details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result := h.store.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
	if !result.Success {
		return result.Err
	}
	metrics.SignupsTotal.Inc()

	token, err := middleware.IssueToken(h.jwtSecret, result.Session.Email, result.Session.Name, h.tokenTTL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, authResponse{Token: token, Session: result.Session})
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result := h.store.Login(c.Request().Context(), req.Email, req.Password)
	if !result.Success {
		return result.Err
	}

	token, err := middleware.IssueToken(h.jwtSecret, result.Session.Email, result.Session.Name, h.tokenTTL)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, Session: result.Session})
}

// Logout ends the active session.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.store.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

// Me returns the active session.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, authResponse{Session: h.store.CurrentUser()})
}
