package repository

import (
	"context"

	"github.com/deppfellow/project-tracker/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type actionRepository struct {
	pool *pgxpool.Pool
}

// NewActionRepository creates an ActionRepository backed by PostgreSQL.
func NewActionRepository(pool *pgxpool.Pool) ActionRepository {
	return &actionRepository{pool: pool}
}

var _ ActionRepository = (*actionRepository)(nil)

const actionColumns = `id, project_id, description, notes`

func (r *actionRepository) Get(ctx context.Context, id int64) (*model.Action, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+actionColumns+` FROM actions WHERE id = $1`, id)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get action %d", id)
	}

	action, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Action])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.Wrapf(ErrNotFound, "action %d", id)
		}
		return nil, errors.Wrapf(err, "failed to scan action %d", id)
	}

	return action, nil
}

func (r *actionRepository) ListByProject(ctx context.Context, projectID int64) ([]model.Action, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+actionColumns+` FROM actions WHERE project_id = $1 ORDER BY id`, projectID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list actions of project %d", projectID)
	}

	actions, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Action])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan actions of project %d", projectID)
	}
	if actions == nil {
		actions = []model.Action{}
	}

	return actions, nil
}

func (r *actionRepository) Insert(ctx context.Context, action model.Action) (*model.Action, error) {
	query := `
		INSERT INTO actions (project_id, description, notes)
		VALUES ($1, $2, $3)
		RETURNING ` + actionColumns

	rows, err := r.pool.Query(ctx, query, action.ProjectID, action.Description, action.Notes)
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert action")
	}

	created, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Action])
	if err != nil {
		return nil, errors.Wrap(err, "failed to insert action")
	}

	return created, nil
}

func (r *actionRepository) Update(ctx context.Context, id int64, patch model.ActionPatch) (*model.Action, error) {
	query := `
		UPDATE actions
		SET description = COALESCE($2, description), notes = COALESCE($3, notes)
		WHERE id = $1
		RETURNING ` + actionColumns

	rows, err := r.pool.Query(ctx, query, id, patch.Description, patch.Notes)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update action %d", id)
	}

	updated, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[model.Action])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.Wrapf(ErrNotFound, "action %d", id)
		}
		return nil, errors.Wrapf(err, "failed to update action %d", id)
	}

	return updated, nil
}

func (r *actionRepository) Remove(ctx context.Context, id int64) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM actions WHERE id = $1`, id)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to remove action %d", id)
	}

	return tag.RowsAffected(), nil
}
