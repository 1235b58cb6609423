package model

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/xid"
)

type TaskID string

func NewTaskID() TaskID {
	return TaskID(xid.New().String())
}

// ParseTaskID validates the structural shape of a raw identifier. It does
// not check that a task with this identifier actually exists.
func ParseTaskID(raw string) (TaskID, error) {
	id, err := xid.FromString(raw)
	if err != nil {
		return "", errors.WithStack(err)
	}

	return TaskID(id.String()), nil
}

type Status string

const (
	StatusIncomplete Status = "incomplete"
	StatusComplete   Status = "complete"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusIncomplete, StatusComplete:
		return true
	default:
		return false
	}
}

type Task interface {
	ID() TaskID
	Title() string
	Status() Status
	CreatedAt() time.Time
	// UpdatedAt is nil until the task is mutated for the first time.
	UpdatedAt() *time.Time
}
