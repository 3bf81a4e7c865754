package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dnk-music/intake/cmd/intake/models"
	"github.com/dnk-music/intake/cmd/intake/repository"
	"github.com/dnk-music/intake/cmd/intake/service"
	"github.com/dnk-music/intake/common/wire"
)

// respond renders a payload with camelCase wire keys
func respond(c echo.Context, status int, payload any) error {
	body, err := wire.ToWire(payload)
	if err != nil {
		return err
	}
	return c.JSON(status, body)
}

// decode reads the request body and re-keys it to the persisted snake_case shape
func decode(c echo.Context, dst any) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable request body")
	}
	if err := wire.FromWire(body, dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// httpError maps the domain error taxonomy onto HTTP statuses
func httpError(err error) error {
	var validation *models.ValidationError
	var capacity *models.CapacityError
	var role *models.RoleResolutionError

	switch {
	case errors.As(err, &validation):
		return echo.NewHTTPError(http.StatusBadRequest, validation.Error())
	case errors.Is(err, models.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	case errors.As(err, &capacity):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, capacity.Error())
	case errors.As(err, &role):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, role.Error())
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, repository.ErrUserExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return err
	}
}
