package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/project-tracker/internal/errs"
	"github.com/deppfellow/project-tracker/internal/lib/job"
	"github.com/deppfellow/project-tracker/internal/model"
	"github.com/deppfellow/project-tracker/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notification struct {
	event   job.ActivityEvent
	project model.Project
}

type recordingNotifier struct {
	calls []notification
	err   error
}

func (n *recordingNotifier) NotifyProjectActivity(_ context.Context, event job.ActivityEvent, project model.Project) error {
	n.calls = append(n.calls, notification{event: event, project: project})
	return n.err
}

// brokenProjects fails every call with a storage error.
type brokenProjects struct{ repository.ProjectRepository }

var errStorage = errors.New("storage unavailable")

func (brokenProjects) List(context.Context) ([]model.Project, error) { return nil, errStorage }
func (brokenProjects) Get(context.Context, int64) (*model.Project, error) {
	return nil, errStorage
}
func (brokenProjects) Insert(context.Context, model.ProjectPayload) (*model.Project, error) {
	return nil, errStorage
}
func (brokenProjects) Update(context.Context, int64, model.ProjectPatch) (*model.Project, error) {
	return nil, errStorage
}
func (brokenProjects) Remove(context.Context, int64) (int64, error) { return 0, errStorage }

func requireHTTPError(t *testing.T, err error, status int, message string) {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %v", err)
	assert.Equal(t, status, httpErr.Status)
	assert.Equal(t, message, httpErr.Message)
}

func TestProjectServiceCreateNotifies(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	notifier := &recordingNotifier{}
	svc := NewProjectService(repos.Projects, repos.Actions, notifier)

	project, err := svc.Create(context.Background(), model.ProjectPayload{Name: "A", Description: "B"})
	require.NoError(t, err)

	require.Len(t, notifier.calls, 1)
	assert.Equal(t, notification{event: job.ActivityCreated, project: *project}, notifier.calls[0])
}

func TestProjectServiceNotifierFailureDoesNotFailRequest(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	svc := NewProjectService(repos.Projects, repos.Actions, &recordingNotifier{err: errors.New("redis down")})

	project, err := svc.Create(context.Background(), model.ProjectPayload{Name: "A", Description: "B"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, project.ID)
}

func TestProjectServiceRemove(t *testing.T) {
	ctx := context.Background()
	repos := repository.NewMemoryRepositories()
	notifier := &recordingNotifier{}
	svc := NewProjectService(repos.Projects, repos.Actions, notifier)

	project, err := svc.Create(ctx, model.ProjectPayload{Name: "A", Description: "B"})
	require.NoError(t, err)

	res, err := svc.Remove(ctx, *project)
	require.NoError(t, err)
	assert.Equal(t, "The project has been removed", res.Message)
	assert.Equal(t, job.ActivityRemoved, notifier.calls[len(notifier.calls)-1].event)

	_, err = svc.Remove(ctx, *project)
	requireHTTPError(t, err, http.StatusNotFound, "The project could not be found")
}

func TestProjectServiceUpdateMissing(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	svc := NewProjectService(repos.Projects, repos.Actions, nil)

	name := "x"
	_, err := svc.Update(context.Background(), 5, model.ProjectPatch{Name: &name})
	requireHTTPError(t, err, http.StatusNotFound, "The project could not be found")
}

func TestProjectServiceFindMissingIsNotAnError(t *testing.T) {
	repos := repository.NewMemoryRepositories()
	svc := NewProjectService(repos.Projects, repos.Actions, nil)

	project, err := svc.Find(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, project)
}

func TestProjectServiceStorageFailures(t *testing.T) {
	ctx := context.Background()
	svc := NewProjectService(brokenProjects{}, repository.NewMemoryRepositories().Actions, nil)

	_, err := svc.List(ctx)
	requireHTTPError(t, err, http.StatusInternalServerError, "Error retrieving the projects")

	_, err = svc.Find(ctx, 1)
	requireHTTPError(t, err, http.StatusInternalServerError, "Error retrieving the project")

	_, err = svc.Create(ctx, model.ProjectPayload{Name: "A", Description: "B"})
	requireHTTPError(t, err, http.StatusInternalServerError, "Error saving project to the database")

	_, err = svc.Update(ctx, 1, model.ProjectPatch{})
	requireHTTPError(t, err, http.StatusInternalServerError, "Error updating the project")

	_, err = svc.Remove(ctx, model.Project{ID: 1})
	requireHTTPError(t, err, http.StatusInternalServerError, "Error removing the project")

	// The storage error is kept as the cause for logging.
	assert.True(t, errors.Is(err, errStorage))
}
