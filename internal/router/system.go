package router

import (
	"github.com/deppfellow/project-tracker/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers endpoints that are not part of the API
// resources: the greeting, health status, docs UI and static files.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Root)

	r.GET("/status", h.Health.CheckHealth)

	// openapi.json and openapi.html live under ./static.
	r.Static("/static", handler.StaticDir)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
