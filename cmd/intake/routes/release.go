package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/dnk-music/intake/cmd/intake/container"
	"github.com/dnk-music/intake/cmd/intake/handlers"
	"github.com/dnk-music/intake/cmd/intake/middleware"
)

// RegisterReleaseRoutes registers release-request routes
func RegisterReleaseRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewReleaseHandler(c.ReleaseService, c.DeliveryService, c.DocsService, c.Components.Logger)

	releases := e.Group("/api/v1/releases", middleware.RequireAuth(c.UserService))
	{
		releases.POST("", h.Submit)       // POST /api/v1/releases
		releases.GET("", h.List)          // GET /api/v1/releases
		releases.GET("/:id", h.Get)       // GET /api/v1/releases/:id
		releases.PATCH("/:id", h.Update)  // PATCH /api/v1/releases/:id
		releases.DELETE("/:id", h.Delete) // DELETE /api/v1/releases/:id
	}

	// Sheet-assembly actions are staff-only
	actions := releases.Group("", middleware.RequireAdmin())
	{
		actions.POST("/:id/delivery", h.AddToDelivery) // POST /api/v1/releases/:id/delivery
		actions.POST("/:id/docs", h.AddToDocs)         // POST /api/v1/releases/:id/docs
	}
}
