package service

import (
	"context"

	"github.com/deppfellow/project-tracker/internal/lib/job"
	"github.com/deppfellow/project-tracker/internal/model"
	"github.com/deppfellow/project-tracker/internal/repository"
	"github.com/deppfellow/project-tracker/internal/server"
)

// ActivityNotifier announces project lifecycle events. *job.JobService
// implements it by enqueueing an asynq task.
type ActivityNotifier interface {
	NotifyProjectActivity(ctx context.Context, event job.ActivityEvent, project model.Project) error
}

type noopNotifier struct{}

func (noopNotifier) NotifyProjectActivity(context.Context, job.ActivityEvent, model.Project) error {
	return nil
}

type Services struct {
	Projects *ProjectService
	Actions  *ActionService
	Job      *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier ActivityNotifier = noopNotifier{}
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Projects: NewProjectService(repos.Projects, repos.Actions, notifier),
		Actions:  NewActionService(repos.Actions),
		Job:      s.Job,
	}, nil
}
