package router

import (
	"net/http"

	"github.com/deppfellow/project-tracker/internal/handler"
	"github.com/deppfellow/project-tracker/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerProjectRoutes binds every project and action route to its
// validator chain. Echo runs route middleware in the order listed, and the
// first validator that returns an error ends the chain.
func registerProjectRoutes(g *echo.Group, h *handler.Handlers, m *middleware.ResourceMiddleware) {
	projects := h.Projects
	actions := h.Actions

	g.GET("", handler.Handle(projects.Handler, projects.List, http.StatusOK))
	g.POST("", handler.Handle(projects.Handler, projects.Create, http.StatusCreated),
		m.ValidProjectPayload)

	g.GET("/:id", handler.Handle(projects.Handler, projects.Get, http.StatusOK),
		m.ProjectExists)
	g.PUT("/:id", handler.Handle(projects.Handler, projects.Update, http.StatusOK),
		m.ProjectExists, m.ValidProjectPayload)
	g.DELETE("/:id", handler.Handle(projects.Handler, projects.Delete, http.StatusOK),
		m.ProjectExists)

	g.GET("/:id/actions", handler.Handle(projects.Handler, projects.ListActions, http.StatusOK))
	g.POST("/:id/actions", handler.Handle(actions.Handler, actions.Create, http.StatusCreated),
		m.ProjectExists, m.ValidActionPayload)

	g.PUT("/:id/actions/:actionId", handler.Handle(actions.Handler, actions.Update, http.StatusOK),
		m.ActionExists, m.ValidActionPayload)
	g.DELETE("/:id/actions/:actionId", handler.Handle(actions.Handler, actions.Delete, http.StatusOK),
		m.ActionExists)
}
