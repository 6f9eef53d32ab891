package job

import (
	"encoding/json"
	"time"

	"github.com/deppfellow/project-tracker/internal/model"
	"github.com/hibiken/asynq"
)

const (
	// TaskProjectActivity is the job type name stored in Redis.
	// Asynq uses task type strings to route to handlers.
	TaskProjectActivity = "activity:project"
)

// ActivityEvent names what happened to a project.
type ActivityEvent string

const (
	ActivityCreated ActivityEvent = "created"
	ActivityRemoved ActivityEvent = "removed"
)

// ProjectActivityPayload is the JSON payload of a project activity task.
type ProjectActivityPayload struct {
	Event     ActivityEvent `json:"event"`
	ProjectID int64         `json:"project_id"`
	Name      string        `json:"name"`
}

// NewProjectActivityTask constructs an Asynq task announcing event on
// project.
//
// Task options:
//   - MaxRetry(3): retry up to 3 times on failure
//   - Queue("low"): notifications never compete with critical work
//   - Timeout(30s): kill the task if the handler runs longer than 30 seconds
func NewProjectActivityTask(event ActivityEvent, project model.Project) (*asynq.Task, error) {
	payload, err := json.Marshal(ProjectActivityPayload{
		Event:     event,
		ProjectID: project.ID,
		Name:      project.Name,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskProjectActivity,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}
