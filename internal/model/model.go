// Package model holds the domain entities exposed by the API and the
// request payloads that create or change them.
//
// Entities carry both `json` tags (API shape) and `db` tags (column names
// used by pgx row scanning in the repository layer).
package model

import "github.com/go-playground/validator/v10"

// validate is shared by every payload type. validator.Validate caches struct
// metadata and is safe for concurrent use.
var validate = validator.New()
