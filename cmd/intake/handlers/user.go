package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/dnk-music/intake/cmd/intake/middleware"
	"github.com/dnk-music/intake/cmd/intake/service"
	"github.com/dnk-music/intake/common/logger"
)

// UserHandler handles account and session endpoints
type UserHandler struct {
	users *service.UserService
	log   *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies a credential and issues a session token
// POST /api/v1/auth/login
func (h *UserHandler) Login(c echo.Context) error {
	var req credentialsRequest
	if err := decode(c, &req); err != nil {
		return err
	}

	token, err := h.users.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return httpError(err)
	}

	return respond(c, http.StatusOK, map[string]string{"access_token": token})
}

// Logout revokes the caller's session token
// POST /api/v1/auth/logout
func (h *UserHandler) Logout(c echo.Context) error {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token, _ := strings.CutPrefix(header, "Bearer ")

	if err := h.users.Logout(c.Request().Context(), token); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword rotates the caller's credential
// POST /api/v1/auth/password
func (h *UserHandler) ChangePassword(c echo.Context) error {
	var req changePasswordRequest
	if err := decode(c, &req); err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	if err := h.users.ChangePassword(c.Request().Context(), user.Username, req.CurrentPassword, req.NewPassword); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Me returns the caller's account
// GET /api/v1/users/me
func (h *UserHandler) Me(c echo.Context) error {
	return respond(c, http.StatusOK, middleware.CurrentUser(c))
}

// Register creates a new account
// POST /api/v1/users
func (h *UserHandler) Register(c echo.Context) error {
	var req credentialsRequest
	if err := decode(c, &req); err != nil {
		return err
	}

	if err := h.users.Register(c.Request().Context(), req.Username, req.Password, false); err != nil {
		return httpError(err)
	}

	return respond(c, http.StatusCreated, map[string]string{"username": req.Username})
}

// List returns all accounts
// GET /api/v1/users
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return respond(c, http.StatusOK, map[string]any{"users": users})
}

type linkUploadRequest struct {
	Enabled bool `json:"enabled"`
}

// SetLinkUpload toggles link-based sourcing for an account
// PUT /api/v1/users/:username/link-upload
func (h *UserHandler) SetLinkUpload(c echo.Context) error {
	var req linkUploadRequest
	if err := decode(c, &req); err != nil {
		return err
	}

	if err := h.users.SetLinkUpload(c.Request().Context(), c.Param("username"), req.Enabled); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Delete removes an account
// DELETE /api/v1/users/:username
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.users.Delete(c.Request().Context(), c.Param("username")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
