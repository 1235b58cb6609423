package client

import (
	"context"
	"slices"
	"sync"

	"github.com/bornholm/backlog/internal/core/model"
	"github.com/bornholm/backlog/internal/http/handler/api"
	"github.com/pkg/errors"
)

var ErrDeleteAborted = errors.New("delete aborted")

// TaskView is a local, optimistically updated view of the server's task
// list. Toggling flips the displayed status synchronously, then settles
// with the server round-trip: on failure the previous status is
// restored. No ordering guarantee is made beyond "last write observed
// wins" for a single task's status.
type TaskView struct {
	mutex  sync.RWMutex
	client *Client
	tasks  []api.Task
}

func NewTaskView(client *Client) *TaskView {
	return &TaskView{
		client: client,
		tasks:  make([]api.Task, 0),
	}
}

// Refresh replaces the local view with the server's task list.
func (v *TaskView) Refresh(ctx context.Context) error {
	tasks, err := v.client.ListTasks(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	v.mutex.Lock()
	v.tasks = tasks
	v.mutex.Unlock()

	return nil
}

// Tasks returns a snapshot of the current view.
func (v *TaskView) Tasks() []api.Task {
	v.mutex.RLock()
	defer v.mutex.RUnlock()

	return slices.Clone(v.tasks)
}

// Toggle optimistically flips the completion status of the given task,
// then confirms the change with the server, rolling the view back if
// the round-trip fails.
func (v *TaskView) Toggle(ctx context.Context, id string) error {
	previous, next, err := v.flip(id)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := v.client.UpdateTaskStatus(ctx, id, next); err != nil {
		v.setStatus(id, previous)
		return errors.WithStack(err)
	}

	return nil
}

// Delete removes the task after the confirmation callback accepted the
// operation. A nil confirm deletes unconditionally.
func (v *TaskView) Delete(ctx context.Context, id string, confirm func() bool) error {
	if confirm != nil && !confirm() {
		return errors.WithStack(ErrDeleteAborted)
	}

	if err := v.client.DeleteTask(ctx, id); err != nil {
		return errors.WithStack(err)
	}

	v.mutex.Lock()
	v.tasks = slices.DeleteFunc(v.tasks, func(t api.Task) bool {
		return t.ID == id
	})
	v.mutex.Unlock()

	return nil
}

func (v *TaskView) flip(id string) (model.Status, model.Status, error) {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	for i := range v.tasks {
		if v.tasks[i].ID != id {
			continue
		}

		previous := v.tasks[i].Status

		next := model.StatusComplete
		if previous == model.StatusComplete {
			next = model.StatusIncomplete
		}

		v.tasks[i].Status = next

		return previous, next, nil
	}

	return "", "", errors.Errorf("task %q not in view", id)
}

func (v *TaskView) setStatus(id string, status model.Status) {
	v.mutex.Lock()
	defer v.mutex.Unlock()

	for i := range v.tasks {
		if v.tasks[i].ID == id {
			v.tasks[i].Status = status
			return
		}
	}
}
