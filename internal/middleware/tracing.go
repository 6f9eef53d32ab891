package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/deppfellow/project-tracker/internal/errs"
	"github.com/deppfellow/project-tracker/internal/server"
	"github.com/pkg/errors"
)

// TracingMiddleware owns New Relic related Echo middleware. Both
// middlewares degrade to pass-through when nrApp is nil.
type TracingMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

// NewTracingMiddleware constructs TracingMiddleware.
func NewTracingMiddleware(s *server.Server, nrApp *newrelic.Application) *TracingMiddleware {
	return &TracingMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// NewRelicMiddleware starts one New Relic transaction per request and stores
// it in the request context, which makes newrelic.FromContext work later.
func (tm *TracingMiddleware) NewRelicMiddleware() echo.MiddlewareFunc {
	if tm.nrApp == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}
	return nrecho.Middleware(tm.nrApp)
}

// EnhanceTracing adds request attributes to the current transaction and
// notices server-side errors. Client errors (4xx) are not noticed.
func (tm *TracingMiddleware) EnhanceTracing() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			txn := newrelic.FromContext(c.Request().Context())
			if txn == nil {
				return next(c)
			}

			txn.AddAttribute("http.real_ip", c.RealIP())
			txn.AddAttribute("http.user_agent", c.Request().UserAgent())
			if requestID := GetRequestID(c); requestID != "" {
				txn.AddAttribute("request.id", requestID)
			}
			if id := c.Param("id"); id != "" {
				txn.AddAttribute("project.id", id)
			}
			if actionID := c.Param("actionId"); actionID != "" {
				txn.AddAttribute("action.id", actionID)
			}

			err := next(c)

			if err != nil && isServerError(err) {
				noticed := err
				var httpErr *errs.HTTPError
				if errors.As(err, &httpErr) && httpErr.Cause() != nil {
					noticed = httpErr.Cause()
				}
				txn.NoticeError(nrpkgerrors.Wrap(noticed))
			}

			txn.AddAttribute("http.status_code", c.Response().Status)

			return err
		}
	}
}

func isServerError(err error) bool {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status >= 500
	}
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr.Code >= 500
	}
	return true
}
