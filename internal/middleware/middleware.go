// Package middleware stores global and route-specific middleware.
//
// Global middleware handles cross-cutting concerns such as request ids,
// request logging, CORS, rate limiting, tracing and panic recovery. The
// route-specific ResourceMiddleware holds the validators that guard the
// project and action routes.
package middleware
