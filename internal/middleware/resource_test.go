package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/project-tracker/internal/errs"
	"github.com/deppfellow/project-tracker/internal/model"
	"github.com/deppfellow/project-tracker/internal/repository"
	"github.com/deppfellow/project-tracker/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResourceMiddleware(t *testing.T) (*ResourceMiddleware, *repository.Repositories) {
	t.Helper()
	repos := repository.NewMemoryRepositories()
	services := &service.Services{
		Projects: service.NewProjectService(repos.Projects, repos.Actions, nil),
		Actions:  service.NewActionService(repos.Actions),
	}
	return NewResourceMiddleware(services), repos
}

func newContext(method, body string, params map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	c := echo.New().NewContext(req, rec)
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for name, value := range params {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

// passThrough records whether the chain reached the handler.
func passThrough(reached *bool) echo.HandlerFunc {
	return func(echo.Context) error {
		*reached = true
		return nil
	}
}

func assertRejected(t *testing.T, err error, status int, message string) {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
}

func TestNewContextSetsParams(t *testing.T) {
	c, _ := newContext(http.MethodGet, "", map[string]string{ProjectIDParam: "3", ActionIDParam: "4"})
	assert.Equal(t, "3", c.Param(ProjectIDParam))
	assert.Equal(t, "4", c.Param(ActionIDParam))
}

func TestProjectExists(t *testing.T) {
	m, repos := newResourceMiddleware(t)
	project, err := repos.Projects.Insert(context.Background(), model.ProjectPayload{Name: "A", Description: "B"})
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		var reached bool
		c, _ := newContext(http.MethodGet, "", map[string]string{ProjectIDParam: "1"})

		require.NoError(t, m.ProjectExists(passThrough(&reached))(c))
		assert.True(t, reached)
		assert.Equal(t, project, GetRequestContext(c).Project)
	})

	for _, raw := range []string{"999", "abc", "0", "-1", ""} {
		t.Run("rejects "+raw, func(t *testing.T) {
			var reached bool
			c, _ := newContext(http.MethodGet, "", map[string]string{ProjectIDParam: raw})

			err := m.ProjectExists(passThrough(&reached))(c)
			assertRejected(t, err, http.StatusBadRequest, MsgInvalidProjectID)
			assert.False(t, reached)
		})
	}
}

func TestActionExists(t *testing.T) {
	ctx := context.Background()
	m, repos := newResourceMiddleware(t)
	project, err := repos.Projects.Insert(ctx, model.ProjectPayload{Name: "A", Description: "B"})
	require.NoError(t, err)
	action, err := repos.Actions.Insert(ctx, model.Action{ProjectID: project.ID, Description: "d", Notes: "n"})
	require.NoError(t, err)

	var reached bool
	// The project segment is not checked against the action's owner.
	c, _ := newContext(http.MethodDelete, "", map[string]string{ProjectIDParam: "42", ActionIDParam: "1"})
	require.NoError(t, m.ActionExists(passThrough(&reached))(c))
	assert.True(t, reached)
	assert.Equal(t, action, GetRequestContext(c).Action)

	reached = false
	c, _ = newContext(http.MethodDelete, "", map[string]string{ActionIDParam: "2"})
	err = m.ActionExists(passThrough(&reached))(c)
	assertRejected(t, err, http.StatusBadRequest, MsgInvalidActionID)
	assert.False(t, reached)
}

func TestValidProjectPayload(t *testing.T) {
	m, _ := newResourceMiddleware(t)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "empty body", body: "", message: "missing project data"},
		{name: "null body", body: "null", message: "missing project data"},
		{name: "missing description", body: `{"name":"A"}`, message: "missing required name and description fields"},
		{name: "empty name", body: `{"name":"","description":"B"}`, message: "missing required name and description fields"},
		{name: "malformed", body: `{"name":`, message: "malformed request body"},
		{name: "wrong type", body: `{"name":1,"description":"B"}`, message: "malformed request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reached bool
			c, _ := newContext(http.MethodPost, tt.body, nil)

			err := m.ValidProjectPayload(passThrough(&reached))(c)
			assertRejected(t, err, http.StatusBadRequest, tt.message)
			assert.False(t, reached)
		})
	}

	t.Run("valid", func(t *testing.T) {
		var reached bool
		c, _ := newContext(http.MethodPost, `{"name":"A","description":"B","extra":true}`, nil)

		require.NoError(t, m.ValidProjectPayload(passThrough(&reached))(c))
		assert.True(t, reached)
		assert.Equal(t, &model.ProjectPayload{Name: "A", Description: "B"}, GetRequestContext(c).ProjectPayload)
	})
}

func TestValidActionPayload(t *testing.T) {
	m, _ := newResourceMiddleware(t)

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{name: "empty body", body: "", message: "missing action data"},
		{name: "missing notes", body: `{"description":"d"}`, message: "missing description and notes"},
		{name: "too long", body: `{"description":"` + strings.Repeat("a", 129) + `","notes":"n"}`, message: "description must be less than 128 characters"},
		// Required runs before max, so an empty notes field wins over length.
		{name: "too long and missing notes", body: `{"description":"` + strings.Repeat("a", 129) + `"}`, message: "missing description and notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reached bool
			c, _ := newContext(http.MethodPost, tt.body, nil)

			err := m.ValidActionPayload(passThrough(&reached))(c)
			assertRejected(t, err, http.StatusBadRequest, tt.message)
			assert.False(t, reached)
		})
	}

	t.Run("exactly 128 runes", func(t *testing.T) {
		var reached bool
		body := `{"description":"` + strings.Repeat("é", 128) + `","notes":"n","project_id":7}`
		c, _ := newContext(http.MethodPost, body, nil)

		require.NoError(t, m.ValidActionPayload(passThrough(&reached))(c))
		assert.True(t, reached)
		assert.Equal(t, "n", GetRequestContext(c).ActionPayload.Notes)
	})
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("17")
	assert.True(t, ok)
	assert.EqualValues(t, 17, id)

	for _, raw := range []string{"", "0", "-3", "1.5", "1e3", "abc", "99999999999999999999"} {
		_, ok := ParseID(raw)
		assert.False(t, ok, raw)
	}
}
