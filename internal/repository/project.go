package repository

import (
	"context"

	"github.com/deppfellow/project-tracker/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type projectRepository struct {
	pool *pgxpool.Pool
}

// NewProjectRepository creates a ProjectRepository backed by PostgreSQL.
func NewProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &projectRepository{pool: pool}
}

var _ ProjectRepository = (*projectRepository)(nil)

func (r *projectRepository) List(ctx context.Context) ([]model.Project, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description FROM projects ORDER BY id`)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list projects")
	}

	projects, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Project])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan projects")
	}
	if projects == nil {
		projects = []model.Project{}
	}

	return projects, nil
}

func (r *projectRepository) Get(ctx context.Context, id int64) (*model.Project, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, description FROM projects WHERE id = $1`, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get project %d", id)
	}

	project, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Project])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.Wrapf(ErrNotFound, "project %d", id)
		}
		return nil, errors.Wrapf(err, "failed to scan project %d", id)
	}

	return project, nil
}

func (r *projectRepository) Insert(ctx context.Context, payload model.ProjectPayload) (*model.Project, error) {
	query := `
		INSERT INTO projects (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description`

	var p model.Project
	err := r.pool.QueryRow(ctx, query, payload.Name, payload.Description).
		Scan(&p.ID, &p.Name, &p.Description)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert project")
	}

	return &p, nil
}

func (r *projectRepository) Update(ctx context.Context, id int64, patch model.ProjectPatch) (*model.Project, error) {
	query := `
		UPDATE projects
		SET name = COALESCE($2, name), description = COALESCE($3, description)
		WHERE id = $1
		RETURNING id, name, description`

	var p model.Project
	err := r.pool.QueryRow(ctx, query, id, patch.Name, patch.Description).
		Scan(&p.ID, &p.Name, &p.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.Wrapf(ErrNotFound, "project %d", id)
		}
		return nil, errors.Wrapf(err, "failed to update project %d", id)
	}

	return &p, nil
}

// Remove relies on ON DELETE CASCADE to drop the project's actions.
func (r *projectRepository) Remove(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to remove project %d", id)
	}

	return tag.RowsAffected(), nil
}
