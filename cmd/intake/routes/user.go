package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/dnk-music/intake/cmd/intake/container"
	"github.com/dnk-music/intake/cmd/intake/handlers"
	"github.com/dnk-music/intake/cmd/intake/middleware"
)

// RegisterUserRoutes registers account and session routes
func RegisterUserRoutes(e *echo.Echo, c *container.Container) {
	h := handlers.NewUserHandler(c.UserService, c.Components.Logger)

	auth := e.Group("/api/v1/auth")
	{
		auth.POST("/login", h.Login) // POST /api/v1/auth/login
		auth.POST("/logout", h.Logout, middleware.RequireAuth(c.UserService))
		auth.POST("/password", h.ChangePassword, middleware.RequireAuth(c.UserService))
	}

	users := e.Group("/api/v1/users", middleware.RequireAuth(c.UserService))
	{
		users.GET("/me", h.Me) // GET /api/v1/users/me
	}

	// Account management is staff-only
	admin := users.Group("", middleware.RequireAdmin())
	{
		admin.POST("", h.Register)  // POST /api/v1/users
		admin.GET("", h.List)       // GET /api/v1/users
		admin.PUT("/:username/link-upload", h.SetLinkUpload)
		admin.DELETE("/:username", h.Delete)
	}
}
