// Package validation contains the logic for validating
// request data.
//
// It decodes JSON bodies, uses the `validator` library to enforce rules
// defined in struct tags, and maps failures to the fixed client messages
// each payload type declares.
package validation
