package service

import (
	"context"

	"github.com/deppfellow/project-tracker/internal/errs"
	"github.com/deppfellow/project-tracker/internal/lib/job"
	"github.com/deppfellow/project-tracker/internal/model"
	"github.com/deppfellow/project-tracker/internal/repository"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	msgProjectNotFound = "The project could not be found"
	msgProjectRemoved  = "The project has been removed"
)

// ProjectService performs one storage call per operation and maps the
// outcome to the API's errors.
type ProjectService struct {
	projects repository.ProjectRepository
	actions  repository.ActionRepository
	notifier ActivityNotifier
}

func NewProjectService(projects repository.ProjectRepository, actions repository.ActionRepository, notifier ActivityNotifier) *ProjectService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &ProjectService{projects: projects, actions: actions, notifier: notifier}
}

func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, errs.NewInternalServerError().WithMessage("Error retrieving the projects").WithCause(err)
	}
	return projects, nil
}

// Find reports (nil, nil) when the project does not exist.
func (s *ProjectService) Find(ctx context.Context, id int64) (*model.Project, error) {
	project, err := s.projects.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, errs.NewInternalServerError().WithMessage("Error retrieving the project").WithCause(err)
	}
	return project, nil
}

// ListActions does not check that the project exists; an unknown id yields
// an empty list.
func (s *ProjectService) ListActions(ctx context.Context, projectID int64) ([]model.Action, error) {
	actions, err := s.actions.ListByProject(ctx, projectID)
	if err != nil {
		return nil, errs.NewInternalServerError().WithMessage("Error retrieving the actions").WithCause(err)
	}
	return actions, nil
}

func (s *ProjectService) Create(ctx context.Context, payload model.ProjectPayload) (*model.Project, error) {
	project, err := s.projects.Insert(ctx, payload)
	if err != nil {
		return nil, errs.NewInternalServerError().WithMessage("Error saving project to the database").WithCause(err)
	}

	s.notify(ctx, job.ActivityCreated, *project)
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, id int64, patch model.ProjectPatch) (*model.Project, error) {
	project, err := s.projects.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError(msgProjectNotFound, false, nil)
		}
		return nil, errs.NewInternalServerError().WithMessage("Error updating the project").WithCause(err)
	}
	return project, nil
}

// Remove deletes project together with its actions and returns the
// confirmation message.
func (s *ProjectService) Remove(ctx context.Context, project model.Project) (*errs.Response, error) {
	count, err := s.projects.Remove(ctx, project.ID)
	if err != nil {
		return nil, errs.NewInternalServerError().WithMessage("Error removing the project").WithCause(err)
	}
	if count == 0 {
		return nil, errs.NewNotFoundError(msgProjectNotFound, false, nil)
	}

	s.notify(ctx, job.ActivityRemoved, project)
	return &errs.Response{Message: msgProjectRemoved}, nil
}

// notify never fails the request; enqueue errors are only logged.
func (s *ProjectService) notify(ctx context.Context, event job.ActivityEvent, project model.Project) {
	if err := s.notifier.NotifyProjectActivity(ctx, event, project); err != nil {
		zerolog.Ctx(ctx).Error().
			Err(err).
			Str("event", string(event)).
			Int64("project_id", project.ID).
			Msg("failed to enqueue project activity notification")
	}
}
