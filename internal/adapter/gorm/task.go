package gorm

import (
	"time"

	"github.com/bornholm/backlog/internal/core/model"
)

type Task struct {
	ID        string    `gorm:"primarykey"`
	Title     string    `gorm:"not null;index:idx_tasks_title"`
	Status    string    `gorm:"not null;default:incomplete;index:idx_tasks_status;index:idx_tasks_status_created,priority:1"`
	CreatedAt time.Time `gorm:"index:idx_tasks_created_at;index:idx_tasks_status_created,priority:2"`
	// Null until the first mutation; set explicitly by the store instead
	// of relying on gorm's update tracking.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
}

type wrappedTask struct {
	t *Task
}

// ID implements model.Task.
func (w *wrappedTask) ID() model.TaskID {
	return model.TaskID(w.t.ID)
}

// Title implements model.Task.
func (w *wrappedTask) Title() string {
	return w.t.Title
}

// Status implements model.Task.
func (w *wrappedTask) Status() model.Status {
	return model.Status(w.t.Status)
}

// CreatedAt implements model.Task.
func (w *wrappedTask) CreatedAt() time.Time {
	return w.t.CreatedAt
}

// UpdatedAt implements model.Task.
func (w *wrappedTask) UpdatedAt() *time.Time {
	return w.t.UpdatedAt
}

var _ model.Task = &wrappedTask{}
