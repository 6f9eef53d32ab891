package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/project-tracker/internal/config"
	"github.com/deppfellow/project-tracker/internal/errs"
	"github.com/deppfellow/project-tracker/internal/server"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGlobal() *GlobalMiddlewares {
	logger := zerolog.Nop()
	return NewGlobalMiddlewares(&server.Server{Config: config.DefaultConfig(), Logger: &logger})
}

func handleError(t *testing.T, method string, err error) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, "/", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	newGlobal().GlobalErrorHandler(err, c)

	if rec.Body.Len() == 0 {
		return rec.Code, nil
	}
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "http error",
			err:     errs.NewBadRequestError("invalid project id", true, nil, nil),
			status:  http.StatusBadRequest,
			message: "invalid project id",
		},
		{
			name:    "wrapped http error",
			err:     errors.Wrap(errs.NewNotFoundError("The project could not be found", false, nil), "update"),
			status:  http.StatusNotFound,
			message: "The project could not be found",
		},
		{
			name:    "internal error hides cause",
			err:     errs.NewInternalServerError().WithMessage("Error removing the project").WithCause(errors.New("pq: deadlock")),
			status:  http.StatusInternalServerError,
			message: "Error removing the project",
		},
		{
			name:    "unknown route",
			err:     echo.ErrNotFound,
			status:  http.StatusNotFound,
			message: MsgRouteNotFound,
		},
		{
			name:    "echo method not allowed",
			err:     echo.ErrMethodNotAllowed,
			status:  http.StatusMethodNotAllowed,
			message: "Method Not Allowed",
		},
		{
			name:    "no rows",
			err:     pgx.ErrNoRows,
			status:  http.StatusNotFound,
			message: "Resource not found",
		},
		{
			name:    "plain error",
			err:     errors.New("boom"),
			status:  http.StatusInternalServerError,
			message: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := handleError(t, http.MethodGet, tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, map[string]any{"message": tt.message}, body)
		})
	}
}

func TestGlobalErrorHandlerHead(t *testing.T) {
	status, body := handleError(t, http.MethodHead, echo.ErrNotFound)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Nil(t, body)
}

func TestRequestID(t *testing.T) {
	e := echo.New()
	handler := RequestID()(func(c echo.Context) error {
		return c.String(http.StatusOK, GetRequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", rec.Body.String())

	rec = httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)))
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)
}

func TestContextEnhancerStoresLogger(t *testing.T) {
	logger := zerolog.Nop()
	ce := NewContextEnhancer(&server.Server{Config: config.DefaultConfig(), Logger: &logger})

	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	var fromCtx *zerolog.Logger
	err := ce.EnhanceContext()(func(c echo.Context) error {
		fromCtx = zerolog.Ctx(c.Request().Context())
		return nil
	})(c)

	require.NoError(t, err)
	assert.NotNil(t, c.Get(LoggerKey))
	assert.NotNil(t, fromCtx)
}

func TestGlobalErrorHandlerLogsDatabaseCause(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/api/projects/1/actions", nil), rec)
	c.Set(LoggerKey, &logger)

	pgErr := &pgconn.PgError{
		Code:           "23503",
		Severity:       "ERROR",
		Message:        "violates foreign key constraint",
		TableName:      "actions",
		ConstraintName: "actions_project_id_fkey",
	}
	err := errs.NewInternalServerError().
		WithMessage("Error saving action to the database").
		WithCause(fmt.Errorf("insert action: %w", pgErr))

	newGlobal().GlobalErrorHandler(err, c)

	// The status mapping stays 500 with the operation message.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Error saving action to the database"}`, rec.Body.String())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "foreign_key_violation", entry["db_code"])
	assert.Equal(t, "23503", entry["sqlstate"])
	assert.Equal(t, "actions", entry["table"])
	assert.Equal(t, "actions_project_id_fkey", entry["constraint"])
}
