package handler

import (
	"github.com/deppfellow/project-tracker/internal/errs"
	"github.com/deppfellow/project-tracker/internal/middleware"
	"github.com/deppfellow/project-tracker/internal/model"
	"github.com/deppfellow/project-tracker/internal/server"
	"github.com/deppfellow/project-tracker/internal/service"
	"github.com/labstack/echo/v4"
)

// ProjectEnvelope wraps a project in create and update responses.
//
//	{ "project": { "id": 1, "name": "A", "description": "B" } }
type ProjectEnvelope struct {
	Project *model.Project `json:"project"`
}

type ProjectHandler struct {
	Handler
	projects *service.ProjectService
}

func NewProjectHandler(s *server.Server, projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		Handler:  NewHandler(s),
		projects: projects,
	}
}

func (h *ProjectHandler) List(c echo.Context, _ *middleware.RequestContext) ([]model.Project, error) {
	return h.projects.List(c.Request().Context())
}

// Get returns the project ProjectExists resolved.
func (h *ProjectHandler) Get(c echo.Context, rc *middleware.RequestContext) (*model.Project, error) {
	return rc.Project, nil
}

// ListActions reads the raw :id; an id with no project yields [].
func (h *ProjectHandler) ListActions(c echo.Context, _ *middleware.RequestContext) ([]model.Action, error) {
	id, ok := middleware.ParseID(c.Param(middleware.ProjectIDParam))
	if !ok {
		return []model.Action{}, nil
	}
	return h.projects.ListActions(c.Request().Context(), id)
}

func (h *ProjectHandler) Create(c echo.Context, rc *middleware.RequestContext) (*ProjectEnvelope, error) {
	project, err := h.projects.Create(c.Request().Context(), *rc.ProjectPayload)
	if err != nil {
		return nil, err
	}
	return &ProjectEnvelope{Project: project}, nil
}

func (h *ProjectHandler) Update(c echo.Context, rc *middleware.RequestContext) (*ProjectEnvelope, error) {
	project, err := h.projects.Update(c.Request().Context(), rc.Project.ID, rc.ProjectPayload.Patch())
	if err != nil {
		return nil, err
	}
	return &ProjectEnvelope{Project: project}, nil
}

func (h *ProjectHandler) Delete(c echo.Context, rc *middleware.RequestContext) (*errs.Response, error) {
	return h.projects.Remove(c.Request().Context(), *rc.Project)
}
