// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their validator chains and handlers.
package router

import (
	"github.com/deppfellow/project-tracker/internal/handler"
	"github.com/deppfellow/project-tracker/internal/middleware"
	"github.com/deppfellow/project-tracker/internal/server"
	"github.com/deppfellow/project-tracker/internal/service"
	"github.com/labstack/echo/v4"
)

// NewRouter builds the application's *echo.Echo once. It is passed to
// server.SetupHTTPServer and holds no global state.
func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, services)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	global := []echo.MiddlewareFunc{
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
	}
	if limit := middlewares.RateLimit.Limit(); limit != nil {
		global = append(global, limit)
	}
	router.Use(global...)

	registerSystemRoutes(router, h)
	registerProjectRoutes(router.Group("/api/projects"), h, middlewares.Resource)

	return router
}
