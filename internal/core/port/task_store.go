package port

import (
	"context"

	"github.com/bornholm/backlog/internal/core/model"
)

type TaskStore interface {
	CountTasks(ctx context.Context, status *model.Status) (int64, error)
	QueryTasks(ctx context.Context, opts QueryTasksOptions) ([]model.Task, error)
	CreateTask(ctx context.Context, title string) (model.Task, error)
	// UpdateTaskStatus mutates the task status as a single conditional
	// write: implementations must return ErrNotFound when no row matched
	// instead of checking existence with a separate read.
	UpdateTaskStatus(ctx context.Context, id model.TaskID, status model.Status) (model.Task, error)
	DeleteTask(ctx context.Context, id model.TaskID) error
}

type QueryTasksOptions struct {
	Status *model.Status
}
