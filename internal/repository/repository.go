// Package repository handles all interactions with the data store.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
// Two implementations share the same interfaces: a pgx/PostgreSQL one
// and an in-memory one used in development and tests.
package repository

import (
	"context"

	"github.com/deppfellow/project-tracker/internal/model"
	"github.com/pkg/errors"
)

// ErrNotFound is returned, possibly wrapped, when the requested record does
// not exist. Check for it with errors.Is.
var ErrNotFound = errors.New("record not found")

// ProjectRepository is the storage gateway for projects.
type ProjectRepository interface {
	// List returns every project ordered by id. The slice is never nil.
	List(ctx context.Context) ([]model.Project, error)
	// Get returns ErrNotFound when no project has the id.
	Get(ctx context.Context, id int64) (*model.Project, error)
	Insert(ctx context.Context, payload model.ProjectPayload) (*model.Project, error)
	// Update changes only the non-nil fields of patch and returns the
	// merged record, or ErrNotFound.
	Update(ctx context.Context, id int64, patch model.ProjectPatch) (*model.Project, error)
	// Remove deletes the project and its actions, and returns the number of
	// projects removed.
	Remove(ctx context.Context, id int64) (int64, error)
}

// ActionRepository is the storage gateway for actions.
type ActionRepository interface {
	Get(ctx context.Context, id int64) (*model.Action, error)
	// ListByProject returns the actions of a project ordered by id. An
	// unknown project yields an empty slice.
	ListByProject(ctx context.Context, projectID int64) ([]model.Action, error)
	Insert(ctx context.Context, action model.Action) (*model.Action, error)
	Update(ctx context.Context, id int64, patch model.ActionPatch) (*model.Action, error)
	Remove(ctx context.Context, id int64) (int64, error)
}
