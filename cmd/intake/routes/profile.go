package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/dnk-music/intake/cmd/intake/container"
	"github.com/dnk-music/intake/cmd/intake/handlers"
	"github.com/dnk-music/intake/cmd/intake/middleware"
)

// RegisterProfileRoutes registers legal profile routes
func RegisterProfileRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewProfileHandler(c.ProfileService, c.Components.Logger)

	profile := e.Group("/api/v1/profile", middleware.RequireAuth(c.UserService))
	{
		profile.GET("", h.Get) // GET /api/v1/profile
		profile.PUT("", h.Put) // PUT /api/v1/profile
	}
}
