package middleware

import (
	"strconv"

	"github.com/deppfellow/project-tracker/internal/errs"
	"github.com/deppfellow/project-tracker/internal/model"
	"github.com/deppfellow/project-tracker/internal/service"
	"github.com/deppfellow/project-tracker/internal/validation"
	"github.com/labstack/echo/v4"
)

const (
	// RequestContextKey stores the *RequestContext in Echo context.
	RequestContextKey = "request_context"

	// ProjectIDParam and ActionIDParam are the route parameter names.
	ProjectIDParam = "id"
	ActionIDParam  = "actionId"

	MsgInvalidProjectID = "invalid project id"
	MsgInvalidActionID  = "invalid action id"
)

var (
	projectMessages = validation.Messages{
		Missing:  "missing project data",
		Required: "missing required name and description fields",
	}
	actionMessages = validation.Messages{
		Missing:  "missing action data",
		Required: "missing description and notes",
		TooLong:  "description must be less than 128 characters",
	}
)

// RequestContext carries what the validator chain resolved for the handler.
// Fields are nil unless the matching validator ran.
type RequestContext struct {
	Project        *model.Project
	Action         *model.Action
	ProjectPayload *model.ProjectPayload
	ActionPayload  *model.ActionPayload
}

// GetRequestContext returns the request's RequestContext, creating it on
// first use.
func GetRequestContext(c echo.Context) *RequestContext {
	if rc, ok := c.Get(RequestContextKey).(*RequestContext); ok {
		return rc
	}
	rc := &RequestContext{}
	c.Set(RequestContextKey, rc)
	return rc
}

// ResourceMiddleware holds the validators of the project and action routes.
// Each one either rejects the request with a 400 and stops the chain, or
// records its result on the RequestContext and calls next.
type ResourceMiddleware struct {
	projects *service.ProjectService
	actions  *service.ActionService
}

func NewResourceMiddleware(services *service.Services) *ResourceMiddleware {
	return &ResourceMiddleware{
		projects: services.Projects,
		actions:  services.Actions,
	}
}

// ProjectExists resolves the :id path parameter to a project.
func (m *ResourceMiddleware) ProjectExists(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := ParseID(c.Param(ProjectIDParam))
		if !ok {
			return errs.NewBadRequestError(MsgInvalidProjectID, true, nil, nil)
		}

		project, err := m.projects.Find(c.Request().Context(), id)
		if err != nil {
			return err
		}
		if project == nil {
			return errs.NewBadRequestError(MsgInvalidProjectID, true, nil, nil)
		}

		GetRequestContext(c).Project = project
		return next(c)
	}
}

// ActionExists resolves the :actionId path parameter to an action. The
// project segment of the path is not checked against the action.
func (m *ResourceMiddleware) ActionExists(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := ParseID(c.Param(ActionIDParam))
		if !ok {
			return errs.NewBadRequestError(MsgInvalidActionID, true, nil, nil)
		}

		action, err := m.actions.Find(c.Request().Context(), id)
		if err != nil {
			return err
		}
		if action == nil {
			return errs.NewBadRequestError(MsgInvalidActionID, true, nil, nil)
		}

		GetRequestContext(c).Action = action
		return next(c)
	}
}

// ValidProjectPayload decodes and checks a project body.
func (m *ResourceMiddleware) ValidProjectPayload(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		payload := &model.ProjectPayload{}
		if err := validation.DecodeAndValidate(c, payload, projectMessages); err != nil {
			return err
		}

		GetRequestContext(c).ProjectPayload = payload
		return next(c)
	}
}

// ValidActionPayload decodes and checks an action body.
func (m *ResourceMiddleware) ValidActionPayload(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		payload := &model.ActionPayload{}
		if err := validation.DecodeAndValidate(c, payload, actionMessages); err != nil {
			return err
		}

		GetRequestContext(c).ActionPayload = payload
		return next(c)
	}
}

// ParseID accepts the decimal form of a storage identifier. Anything else
// can never match a record.
func ParseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
