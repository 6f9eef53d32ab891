package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/deppfellow/project-tracker/internal/model"
	"github.com/deppfellow/project-tracker/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenActions struct{ repository.ActionRepository }

func (brokenActions) Get(context.Context, int64) (*model.Action, error) { return nil, errStorage }
func (brokenActions) ListByProject(context.Context, int64) ([]model.Action, error) {
	return nil, errStorage
}
func (brokenActions) Insert(context.Context, model.Action) (*model.Action, error) {
	return nil, errStorage
}
func (brokenActions) Update(context.Context, int64, model.ActionPatch) (*model.Action, error) {
	return nil, errStorage
}
func (brokenActions) Remove(context.Context, int64) (int64, error) { return 0, errStorage }

func TestActionServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewMemoryRepositories()
	projects := NewProjectService(repos.Projects, repos.Actions, nil)
	actions := NewActionService(repos.Actions)

	project, err := projects.Create(ctx, model.ProjectPayload{Name: "A", Description: "B"})
	require.NoError(t, err)

	action, err := actions.Create(ctx, project.ID, model.ActionPayload{Description: "d", Notes: "n"})
	require.NoError(t, err)
	assert.Equal(t, project.ID, action.ProjectID)

	list, err := projects.ListActions(ctx, project.ID)
	require.NoError(t, err)
	assert.Equal(t, []model.Action{*action}, list)

	notes := "n2"
	updated, err := actions.Update(ctx, action.ID, model.ActionPatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "d", updated.Description)
	assert.Equal(t, "n2", updated.Notes)

	res, err := actions.Remove(ctx, action.ID)
	require.NoError(t, err)
	assert.Equal(t, "The action has been removed", res.Message)

	_, err = actions.Remove(ctx, action.ID)
	requireHTTPError(t, err, http.StatusNotFound, "The action could not be found")

	_, err = actions.Update(ctx, action.ID, model.ActionPatch{Notes: &notes})
	requireHTTPError(t, err, http.StatusNotFound, "The action could not be found")
}

func TestActionServiceStorageFailures(t *testing.T) {
	ctx := context.Background()
	actions := NewActionService(brokenActions{})
	projects := NewProjectService(repository.NewMemoryRepositories().Projects, brokenActions{}, nil)

	_, err := actions.Find(ctx, 1)
	requireHTTPError(t, err, http.StatusInternalServerError, "Error retrieving the action")

	_, err = projects.ListActions(ctx, 1)
	requireHTTPError(t, err, http.StatusInternalServerError, "Error retrieving the actions")

	_, err = actions.Create(ctx, 1, model.ActionPayload{Description: "d", Notes: "n"})
	requireHTTPError(t, err, http.StatusInternalServerError, "Error saving action to the database")

	_, err = actions.Update(ctx, 1, model.ActionPatch{})
	requireHTTPError(t, err, http.StatusInternalServerError, "Error updating the action")

	_, err = actions.Remove(ctx, 1)
	requireHTTPError(t, err, http.StatusInternalServerError, "Error removing the action")
}
