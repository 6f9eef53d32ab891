package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/project-tracker/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestHandleErrorForeignKey(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23503",
		Severity:       "ERROR",
		Message:        `insert or update on table "actions" violates foreign key constraint`,
		TableName:      "actions",
		ColumnName:     "project_id",
		ConstraintName: "actions_project_id_fkey",
	}

	httpErr := asHTTPError(t, HandleError(fmt.Errorf("insert: %w", pgErr)))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "ACTION_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced project does not exist", httpErr.Message)
	assert.True(t, errors.Is(httpErr, pgErr))
}

func TestHandleErrorNotNull(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23502", TableName: "projects", ColumnName: "name"}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "PROJECT_REQUIRED", httpErr.Code)
	assert.Equal(t, "The Name is required", httpErr.Message)
	assert.Equal(t, []errs.FieldError{{Field: "name", Error: "is required"}}, httpErr.Errors)
}

func TestHandleErrorStringTooLong(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "22001", TableName: "actions", ColumnName: "description"}

	httpErr := asHTTPError(t, HandleError(pgErr))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "ACTION_INVALID", httpErr.Code)
}

func TestHandleErrorConnectionFailureIsInternal(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(&pgconn.PgError{Code: "08006"}))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestHandleErrorNoRows(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(fmt.Errorf("get: %w", pgx.ErrNoRows)))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	original := errs.NewBadRequestError("invalid project id", true, nil, nil)
	assert.Same(t, original, asHTTPError(t, HandleError(original)))
}

func TestHandleErrorUnknown(t *testing.T) {
	cause := errors.New("boom")
	httpErr := asHTTPError(t, HandleError(cause))

	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
	assert.Same(t, cause, httpErr.Cause())
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, InvalidText, MapCode("22P02"))
	assert.Equal(t, ConnectionFailure, MapCode("08001"))
	assert.Equal(t, Other, MapCode("42P01"))
}

func TestErrCode(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "22001", Severity: "ERROR"}

	assert.Equal(t, StringTooLong, ErrCode(fmt.Errorf("insert: %w", pgErr)))
	assert.Equal(t, StringTooLong, ErrCode(ConvertPgError(pgErr)))
	assert.Equal(t, Other, ErrCode(errors.New("boom")))
}

func TestDescribe(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23503",
		Severity:       "ERROR",
		TableName:      "actions",
		ConstraintName: "actions_project_id_fkey",
	}

	described := Describe(errs.NewInternalServerError().WithCause(fmt.Errorf("insert action: %w", pgErr)))
	require.NotNil(t, described)
	assert.Equal(t, ForeignKeyViolation, described.Code)
	assert.Equal(t, "23503", described.DatabaseCode)
	assert.Equal(t, "actions", described.TableName)
	assert.Equal(t, "actions_project_id_fkey", described.ConstraintName)

	assert.Nil(t, Describe(errors.New("boom")))
}
