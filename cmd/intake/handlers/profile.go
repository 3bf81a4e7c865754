package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dnk-music/intake/cmd/intake/middleware"
	"github.com/dnk-music/intake/cmd/intake/models"
	"github.com/dnk-music/intake/cmd/intake/service"
	"github.com/dnk-music/intake/common/logger"
)

// ProfileHandler handles legal profile endpoints
type ProfileHandler struct {
	profiles *service.ProfileService
	log      *logger.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles *service.ProfileService, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, log: log}
}

// Get returns the caller's profile
// GET /api/v1/profile
func (h *ProfileHandler) Get(c echo.Context) error {
	user := middleware.CurrentUser(c)

	profile, err := h.profiles.Get(c.Request().Context(), user.Username)
	if err != nil {
		return httpError(err)
	}

	return respond(c, http.StatusOK, profile)
}

// Put replaces the caller's profile and re-evaluates verification
// PUT /api/v1/profile
func (h *ProfileHandler) Put(c echo.Context) error {
	var profile models.Profile
	if err := decode(c, &profile); err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	if err := h.profiles.Put(c.Request().Context(), user.Username, &profile); err != nil {
		return httpError(err)
	}

	return respond(c, http.StatusOK, profile)
}
