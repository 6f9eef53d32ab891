// Package handler is the first layer. The first entry point
// for business logic after the router.
//
// Handlers read what the route's validator chain resolved, call the
// appropriate service, and write the response through the typed Handle
// pipeline.
package handler
