package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/dnk-music/intake/cmd/intake/container"
	"github.com/dnk-music/intake/cmd/intake/handlers"
	"github.com/dnk-music/intake/cmd/intake/middleware"
)

// RegisterFileRoutes registers media staging routes
func RegisterFileRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewFileHandler(c.FileService, c.Components.Logger)

	files := e.Group("/api/v1/files", middleware.RequireAuth(c.UserService))
	{
		files.POST("", h.Upload)        // POST /api/v1/files
		files.GET("/:id", h.Download)   // GET /api/v1/files/:id
		files.DELETE("/:id", h.Delete)  // DELETE /api/v1/files/:id
	}
}
