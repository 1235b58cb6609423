package memory

import (
	"time"

	"github.com/bornholm/backlog/internal/core/model"
)

type task struct {
	id        model.TaskID
	title     string
	status    model.Status
	createdAt time.Time
	updatedAt *time.Time
}

// ID implements model.Task.
func (t *task) ID() model.TaskID {
	return t.id
}

// Title implements model.Task.
func (t *task) Title() string {
	return t.title
}

// Status implements model.Task.
func (t *task) Status() model.Status {
	return t.status
}

// CreatedAt implements model.Task.
func (t *task) CreatedAt() time.Time {
	return t.createdAt
}

// UpdatedAt implements model.Task.
func (t *task) UpdatedAt() *time.Time {
	return t.updatedAt
}

func (t *task) clone() *task {
	clone := &task{
		id:        t.id,
		title:     t.title,
		status:    t.status,
		createdAt: t.createdAt,
	}

	if t.updatedAt != nil {
		updatedAt := *t.updatedAt
		clone.updatedAt = &updatedAt
	}

	return clone
}

var _ model.Task = &task{}
