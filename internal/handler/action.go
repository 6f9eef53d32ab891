package handler

import (
	"github.com/deppfellow/project-tracker/internal/errs"
	"github.com/deppfellow/project-tracker/internal/middleware"
	"github.com/deppfellow/project-tracker/internal/model"
	"github.com/deppfellow/project-tracker/internal/server"
	"github.com/deppfellow/project-tracker/internal/service"
	"github.com/labstack/echo/v4"
)

// ActionHandler serves the nested action routes. Action bodies are returned
// bare, without an envelope.
type ActionHandler struct {
	Handler
	actions *service.ActionService
}

func NewActionHandler(s *server.Server, actions *service.ActionService) *ActionHandler {
	return &ActionHandler{
		Handler: NewHandler(s),
		actions: actions,
	}
}

// Create stores the action under the project from the path.
func (h *ActionHandler) Create(c echo.Context, rc *middleware.RequestContext) (*model.Action, error) {
	return h.actions.Create(c.Request().Context(), rc.Project.ID, *rc.ActionPayload)
}

func (h *ActionHandler) Update(c echo.Context, rc *middleware.RequestContext) (*model.Action, error) {
	return h.actions.Update(c.Request().Context(), rc.Action.ID, rc.ActionPayload.Patch())
}

func (h *ActionHandler) Delete(c echo.Context, rc *middleware.RequestContext) (*errs.Response, error) {
	return h.actions.Remove(c.Request().Context(), rc.Action.ID)
}
