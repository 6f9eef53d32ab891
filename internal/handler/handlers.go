package handler

import (
	"github.com/deppfellow/project-tracker/internal/middleware"
	"github.com/deppfellow/project-tracker/internal/server"
	"github.com/deppfellow/project-tracker/internal/service"
	"github.com/labstack/echo/v4"
)

// Greeting is the body of GET /.
const Greeting = "Hello World!"

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Projects *ProjectHandler
	Actions  *ActionHandler
	Health   *HealthHandler  // Health serves GET /status.
	OpenAPI  *OpenAPIHandler // OpenAPI serves the API documentation UI.
	Root     echo.HandlerFunc
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	base := NewHandler(s)

	return &Handlers{
		Projects: NewProjectHandler(s, services.Projects),
		Actions:  NewActionHandler(s, services.Actions),
		Health:   NewHealthHandler(s),
		OpenAPI:  NewOpenAPIHandler(s),
		Root: HandleText(base, func(echo.Context, *middleware.RequestContext) (string, error) {
			return Greeting, nil
		}),
	}
}
