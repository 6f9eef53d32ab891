package repository

import (
	"github.com/deppfellow/project-tracker/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Projects ProjectRepository
	Actions  ActionRepository
}

// NewRepositories constructs the repository container.
//
// The PostgreSQL gateway is used when the server holds a database pool
// (database.driver=postgres); otherwise the in-memory gateway is used.
func NewRepositories(s *server.Server) *Repositories {
	if s.DB == nil {
		s.Logger.Warn().Msg("no database configured, using in-memory repositories")
		return NewMemoryRepositories()
	}

	return &Repositories{
		Projects: NewProjectRepository(s.DB.Pool),
		Actions:  NewActionRepository(s.DB.Pool),
	}
}
