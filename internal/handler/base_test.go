package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/project-tracker/internal/config"
	"github.com/deppfellow/project-tracker/internal/middleware"
	"github.com/deppfellow/project-tracker/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedHandler(buf *bytes.Buffer) Handler {
	logger := zerolog.New(buf).Level(zerolog.DebugLevel)
	return NewHandler(&server.Server{Config: config.DefaultConfig(), Logger: &logger})
}

func TestHandleFallsBackToServerLogger(t *testing.T) {
	var buf bytes.Buffer
	h := newBufferedHandler(&buf)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	fn := Handle(h, func(echo.Context, *middleware.RequestContext) (map[string]int, error) {
		return map[string]int{"n": 1}, nil
	}, http.StatusOK)

	require.NoError(t, fn(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"n":1}`, rec.Body.String())
	assert.Contains(t, buf.String(), "request completed successfully")
}

func TestHandlePrefersRequestLogger(t *testing.T) {
	var serverBuf, requestBuf bytes.Buffer
	h := newBufferedHandler(&serverBuf)

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	requestLogger := zerolog.New(&requestBuf).Level(zerolog.DebugLevel)
	c.Set(middleware.LoggerKey, &requestLogger)

	require.NoError(t, HandleText(h, func(echo.Context, *middleware.RequestContext) (string, error) {
		return Greeting, nil
	})(c))

	assert.Equal(t, Greeting, rec.Body.String())
	assert.Empty(t, serverBuf.String())
	assert.Contains(t, requestBuf.String(), "handler_text")
}
