// Package errs define custom error types and utilities.
//
// Its purpose is to give handlers, validators and the global error handler
// one error shape (HTTPError) that carries the HTTP status, a stable
// machine code and the message the client receives.
package errs
