package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/bornholm/backlog/internal/core/model"
	"github.com/bornholm/backlog/internal/core/port"
	"github.com/pkg/errors"
)

// TaskStore keeps tasks in memory. It backs tests and the storage-less
// configuration; everything else goes through the gorm adapter.
type TaskStore struct {
	mutex sync.RWMutex
	tasks map[model.TaskID]*task
}

func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: map[model.TaskID]*task{},
	}
}

// CountTasks implements port.TaskStore.
func (s *TaskStore) CountTasks(ctx context.Context, status *model.Status) (int64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var total int64
	for _, t := range s.tasks {
		if status != nil && t.status != *status {
			continue
		}

		total++
	}

	return total, nil
}

// QueryTasks implements port.TaskStore.
func (s *TaskStore) QueryTasks(ctx context.Context, opts port.QueryTasksOptions) ([]model.Task, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	tasks := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if opts.Status != nil && t.status != *opts.Status {
			continue
		}

		tasks = append(tasks, t.clone())
	}

	slices.SortFunc(tasks, func(t1, t2 model.Task) int {
		if cmp := t2.CreatedAt().Compare(t1.CreatedAt()); cmp != 0 {
			return cmp
		}

		// Identifiers are time-sortable, use them as tiebreak
		if t1.ID() < t2.ID() {
			return 1
		} else if t1.ID() > t2.ID() {
			return -1
		}

		return 0
	})

	return tasks, nil
}

// GetTaskByID returns a single task by its identifier.
func (s *TaskStore) GetTaskByID(ctx context.Context, id model.TaskID) (model.Task, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	t, exists := s.tasks[id]
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	return t.clone(), nil
}

// CreateTask implements port.TaskStore.
func (s *TaskStore) CreateTask(ctx context.Context, title string) (model.Task, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	t := &task{
		id:        model.NewTaskID(),
		title:     title,
		status:    model.StatusIncomplete,
		createdAt: time.Now().UTC(),
	}

	s.tasks[t.id] = t

	return t.clone(), nil
}

// UpdateTaskStatus implements port.TaskStore.
func (s *TaskStore) UpdateTaskStatus(ctx context.Context, id model.TaskID, status model.Status) (model.Task, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	t, exists := s.tasks[id]
	if !exists {
		return nil, errors.WithStack(port.ErrNotFound)
	}

	now := time.Now().UTC()

	t.status = status
	t.updatedAt = &now

	return t.clone(), nil
}

// DeleteTask implements port.TaskStore.
func (s *TaskStore) DeleteTask(ctx context.Context, id model.TaskID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.tasks[id]; !exists {
		return errors.WithStack(port.ErrNotFound)
	}

	delete(s.tasks, id)

	return nil
}

var _ port.TaskStore = &TaskStore{}
