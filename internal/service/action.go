package service

import (
	"context"

	"github.com/deppfellow/project-tracker/internal/errs"
	"github.com/deppfellow/project-tracker/internal/model"
	"github.com/deppfellow/project-tracker/internal/repository"
	"github.com/pkg/errors"
)

const (
	msgActionNotFound = "The action could not be found"
	msgActionRemoved  = "The action has been removed"
)

type ActionService struct {
	actions repository.ActionRepository
}

func NewActionService(actions repository.ActionRepository) *ActionService {
	return &ActionService{actions: actions}
}

// Find reports (nil, nil) when the action does not exist.
func (s *ActionService) Find(ctx context.Context, id int64) (*model.Action, error) {
	action, err := s.actions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, errs.NewInternalServerError().WithMessage("Error retrieving the action").WithCause(err)
	}
	return action, nil
}

// Create stores the action under projectID. Any project_id the client sent
// has already been dropped by the payload type.
func (s *ActionService) Create(ctx context.Context, projectID int64, payload model.ActionPayload) (*model.Action, error) {
	action, err := s.actions.Insert(ctx, payload.NewAction(projectID))
	if err != nil {
		return nil, errs.NewInternalServerError().WithMessage("Error saving action to the database").WithCause(err)
	}
	return action, nil
}

func (s *ActionService) Update(ctx context.Context, id int64, patch model.ActionPatch) (*model.Action, error) {
	action, err := s.actions.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError(msgActionNotFound, false, nil)
		}
		return nil, errs.NewInternalServerError().WithMessage("Error updating the action").WithCause(err)
	}
	return action, nil
}

func (s *ActionService) Remove(ctx context.Context, id int64) (*errs.Response, error) {
	count, err := s.actions.Remove(ctx, id)
	if err != nil {
		return nil, errs.NewInternalServerError().WithMessage("Error removing the action").WithCause(err)
	}
	if count == 0 {
		return nil, errs.NewNotFoundError(msgActionNotFound, false, nil)
	}
	return &errs.Response{Message: msgActionRemoved}, nil
}
