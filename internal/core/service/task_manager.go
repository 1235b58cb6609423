package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/bornholm/backlog/internal/core/model"
	"github.com/bornholm/backlog/internal/core/port"
	"github.com/bornholm/backlog/internal/metrics"
	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
)

// TaskManager is the sole mutation and read gateway to the task store.
// Shape validation is the transport boundary's job; the manager only
// enforces title normalization, the existence policy and the uniform
// error taxonomy.
type TaskManager struct {
	store port.TaskStore
}

func NewTaskManager(store port.TaskStore) *TaskManager {
	return &TaskManager{
		store: store,
	}
}

func (m *TaskManager) GetAllTasks(ctx context.Context) ([]model.Task, error) {
	tasks, err := m.store.QueryTasks(ctx, port.QueryTasksOptions{})
	if err != nil {
		return nil, errors.WithStack(NewError(ErrorKindFetchFailed, "could not fetch tasks", err))
	}

	return tasks, nil
}

func (m *TaskManager) GetTasksByStatus(ctx context.Context, status model.Status) ([]model.Task, error) {
	tasks, err := m.store.QueryTasks(ctx, port.QueryTasksOptions{
		Status: &status,
	})
	if err != nil {
		return nil, errors.WithStack(NewError(ErrorKindFetchFailed, "could not fetch tasks", err))
	}

	return tasks, nil
}

// CreateTask inserts a new task with the trimmed title and default
// status. The created row is not returned: callers that need the new
// identifier are expected to re-fetch.
func (m *TaskManager) CreateTask(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)

	if _, err := m.store.CreateTask(ctx, title); err != nil {
		return errors.WithStack(NewError(ErrorKindCreateFailed, "could not create task", err))
	}

	m.refreshTaskMetrics(ctx)

	return nil
}

func (m *TaskManager) UpdateTaskStatus(ctx context.Context, id model.TaskID, status model.Status) (model.Task, error) {
	task, err := m.store.UpdateTaskStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, errors.WithStack(NewError(ErrorKindNotFound, "task not found", err))
		}

		return nil, errors.WithStack(NewError(ErrorKindUpdateFailed, "could not update task status", err))
	}

	m.refreshTaskMetrics(ctx)

	return task, nil
}

func (m *TaskManager) DeleteTask(ctx context.Context, id model.TaskID) error {
	if err := m.store.DeleteTask(ctx, id); err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return errors.WithStack(NewError(ErrorKindNotFound, "task not found", err))
		}

		return errors.WithStack(NewError(ErrorKindDeleteFailed, "could not delete task", err))
	}

	m.refreshTaskMetrics(ctx)

	return nil
}

func (m *TaskManager) refreshTaskMetrics(ctx context.Context) {
	for _, status := range []model.Status{model.StatusIncomplete, model.StatusComplete} {
		total, err := m.store.CountTasks(ctx, &status)
		if err != nil {
			slog.WarnContext(ctx, "could not refresh task metrics", slogx.Error(errors.WithStack(err)))
			return
		}

		metrics.Tasks.WithLabelValues(string(status)).Set(float64(total))
	}
}
