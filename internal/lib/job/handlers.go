package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/project-tracker/internal/config"
	"github.com/deppfellow/project-tracker/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Mailer sends the notification emails job handlers produce.
// *email.Client implements it.
type Mailer interface {
	SendProjectActivityEmail(to, event string, projectID int64, projectName string) error
}

// InitHandlers initializes dependencies required by job handlers: an email
// client built from config and the notification recipient.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.mailer = email.NewClient(cfg, logger)
	j.notifyEmail = cfg.Integration.NotifyEmail
}

// handleProjectActivityTask processes a project activity task.
//
// Steps:
//   - Parse JSON payload from the Asynq task
//   - Send the activity email to the configured recipient
//   - Log success/failure
func (j *JobService) handleProjectActivityTask(ctx context.Context, t *asynq.Task) error {
	var p ProjectActivityPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A payload that cannot be decoded will never succeed.
		return fmt.Errorf("failed to unmarshal project activity payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskProjectActivity).
		Str("event", string(p.Event)).
		Int64("project_id", p.ProjectID).
		Logger()

	log.Info().Msg("Processing project activity task")

	if err := j.mailer.SendProjectActivityEmail(j.notifyEmail, string(p.Event), p.ProjectID, p.Name); err != nil {
		log.Error().Err(err).Msg("Failed to send project activity email")
		return err // returning err makes Asynq mark it failed and schedule retry
	}

	log.Info().Msg("Successfully sent project activity email")

	return nil
}
