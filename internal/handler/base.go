package handler

import (
	"net/http"
	"reflect"
	"time"

	"github.com/deppfellow/project-tracker/internal/middleware"
	"github.com/deppfellow/project-tracker/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// Handler is the base handler type that holds shared application dependencies.
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// logger returns the request-scoped logger, or the server logger when
// ContextEnhancer did not run.
func (h Handler) logger(c echo.Context) *zerolog.Logger {
	if _, ok := c.Get(middleware.LoggerKey).(*zerolog.Logger); !ok && h.server != nil && h.server.Logger != nil {
		return h.server.Logger
	}
	return middleware.GetLogger(c)
}

// --- Generic typed handler plumbing -----------------------------------------

// HandlerFunc is a typed endpoint. It receives what the route's validator
// chain stored on the RequestContext and returns a response or an error.
type HandlerFunc[Res any] func(c echo.Context, rc *middleware.RequestContext) (Res, error)

// ResponseHandler defines how a successful handler result is written to the
// HTTP response and which tracing attributes it adds.
type ResponseHandler interface {
	Handle(c echo.Context, result interface{}) error

	// GetOperation names the handler type in structured logs.
	GetOperation() string

	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

func (h JSONResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if txn == nil {
		return
	}
	// http.status_code is already set by EnhanceTracing.
	if v := reflect.ValueOf(result); v.Kind() == reflect.Slice {
		txn.AddAttribute("response.items", v.Len())
	}
}

// TextResponseHandler writes a plain string body.
type TextResponseHandler struct {
	status int
}

func (h TextResponseHandler) Handle(c echo.Context, result interface{}) error {
	text, _ := result.(string)
	return c.String(h.status, text)
}

func (h TextResponseHandler) GetOperation() string {
	return "handler_text"
}

func (h TextResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {}

// handleRequest is the shared execution pipeline for all typed handlers.
//
// It centralizes:
//   - structured logging with request context
//   - New Relic attributes and timings
//   - response writing
//
// Validation happens before it, in the route's validator chain; a rejected
// request never reaches this function.
func handleRequest(
	h Handler,
	c echo.Context,
	handler func(c echo.Context, rc *middleware.RequestContext) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	logger := h.logger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	result, err := handler(c, middleware.GetRequestContext(c))
	handlerDuration := time.Since(start)

	if err != nil {
		// The error is logged once, by the global error handler.
		logger.Debug().
			Dur("handler_duration", handlerDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		}
		return err
	}

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed handler with logging and tracing and writes its
// result as JSON with status.
//
//	g.POST("", handler.Handle(h, projects.Create, http.StatusCreated), m.ValidProjectPayload)
func Handle[Res any](h Handler, handler HandlerFunc[Res], status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(h, c, func(c echo.Context, rc *middleware.RequestContext) (interface{}, error) {
			return handler(c, rc)
		}, JSONResponseHandler{status: status})
	}
}

// HandleText is Handle for endpoints that answer with a plain string.
func HandleText(h Handler, handler HandlerFunc[string]) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(h, c, func(c echo.Context, rc *middleware.RequestContext) (interface{}, error) {
			return handler(c, rc)
		}, TextResponseHandler{status: http.StatusOK})
	}
}
