package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/deppfellow/project-tracker/internal/model"
	"github.com/pkg/errors"
)

// memoryStore keeps both tables behind one lock so a project removal and
// its action cascade happen atomically.
type memoryStore struct {
	mu sync.RWMutex

	projects map[int64]model.Project
	actions  map[int64]model.Action

	lastProjectID int64
	lastActionID  int64
}

// NewMemoryRepositories returns repositories that share one in-memory store.
// Identifiers start at 1 and are never reused.
func NewMemoryRepositories() *Repositories {
	store := &memoryStore{
		projects: make(map[int64]model.Project),
		actions:  make(map[int64]model.Action),
	}

	return &Repositories{
		Projects: &memoryProjects{store: store},
		Actions:  &memoryActions{store: store},
	}
}

type memoryProjects struct {
	store *memoryStore
}

var _ ProjectRepository = (*memoryProjects)(nil)

func (r *memoryProjects) List(ctx context.Context) ([]model.Project, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	projects := make([]model.Project, 0, len(s.projects))
	for _, p := range s.projects {
		projects = append(projects, p)
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })

	return projects, nil
}

func (r *memoryProjects) Get(ctx context.Context, id int64) (*model.Project, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "project %d", id)
	}

	return &p, nil
}

func (r *memoryProjects) Insert(ctx context.Context, payload model.ProjectPayload) (*model.Project, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastProjectID++
	p := model.Project{
		ID:          s.lastProjectID,
		Name:        payload.Name,
		Description: payload.Description,
	}
	s.projects[p.ID] = p

	return &p, nil
}

func (r *memoryProjects) Update(ctx context.Context, id int64, patch model.ProjectPatch) (*model.Project, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "project %d", id)
	}
	patch.Apply(&p)
	s.projects[id] = p

	return &p, nil
}

func (r *memoryProjects) Remove(ctx context.Context, id int64) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return 0, nil
	}
	delete(s.projects, id)

	for actionID, a := range s.actions {
		if a.ProjectID == id {
			delete(s.actions, actionID)
		}
	}

	return 1, nil
}

type memoryActions struct {
	store *memoryStore
}

var _ ActionRepository = (*memoryActions)(nil)

func (r *memoryActions) Get(ctx context.Context, id int64) (*model.Action, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.actions[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "action %d", id)
	}

	return &a, nil
}

func (r *memoryActions) ListByProject(ctx context.Context, projectID int64) ([]model.Action, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	actions := []model.Action{}
	for _, a := range s.actions {
		if a.ProjectID == projectID {
			actions = append(actions, a)
		}
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i].ID < actions[j].ID })

	return actions, nil
}

// Insert mirrors the foreign key on actions.project_id.
func (r *memoryActions) Insert(ctx context.Context, action model.Action) (*model.Action, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[action.ProjectID]; !ok {
		return nil, errors.Wrapf(ErrNotFound, "failed to insert action: project %d", action.ProjectID)
	}

	s.lastActionID++
	action.ID = s.lastActionID
	s.actions[action.ID] = action

	return &action, nil
}

func (r *memoryActions) Update(ctx context.Context, id int64, patch model.ActionPatch) (*model.Action, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.actions[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "action %d", id)
	}
	patch.Apply(&a)
	s.actions[id] = a

	return &a, nil
}

func (r *memoryActions) Remove(ctx context.Context, id int64) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.actions[id]; !ok {
		return 0, nil
	}
	delete(s.actions, id)

	return 1, nil
}
