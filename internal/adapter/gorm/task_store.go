package gorm

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/bornholm/backlog/internal/core/model"
	"github.com/bornholm/backlog/internal/core/port"
	"github.com/ncruces/go-sqlite3"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type TaskStore struct {
	getDatabase func(ctx context.Context) (*gorm.DB, error)
}

func NewTaskStore(db *gorm.DB) *TaskStore {
	return &TaskStore{
		getDatabase: func(ctx context.Context) (*gorm.DB, error) {
			return db.WithContext(ctx), nil
		},
	}
}

func (s *TaskStore) Migrate(ctx context.Context) error {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	if err := db.AutoMigrate(&Task{}); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

// CountTasks implements port.TaskStore.
func (s *TaskStore) CountTasks(ctx context.Context, status *model.Status) (int64, error) {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return 0, errors.WithStack(err)
	}

	query := db.Model(&Task{})
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, errors.WithStack(err)
	}

	return total, nil
}

// QueryTasks implements port.TaskStore.
func (s *TaskStore) QueryTasks(ctx context.Context, opts port.QueryTasksOptions) ([]model.Task, error) {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	query := db.Model(&Task{}).Order("created_at desc, id desc")
	if opts.Status != nil {
		query = query.Where("status = ?", string(*opts.Status))
	}

	var rows []*Task
	if err := query.Find(&rows).Error; err != nil {
		return nil, errors.WithStack(err)
	}

	tasks := make([]model.Task, 0, len(rows))
	for _, r := range rows {
		tasks = append(tasks, &wrappedTask{r})
	}

	return tasks, nil
}

// GetTaskByID returns a single task by its identifier.
func (s *TaskStore) GetTaskByID(ctx context.Context, id model.TaskID) (model.Task, error) {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var task Task
	if err := db.First(&task, "id = ?", string(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.WithStack(port.ErrNotFound)
		}

		return nil, errors.WithStack(err)
	}

	return &wrappedTask{&task}, nil
}

// CreateTask implements port.TaskStore.
func (s *TaskStore) CreateTask(ctx context.Context, title string) (model.Task, error) {
	task := &Task{
		ID:     string(model.NewTaskID()),
		Title:  title,
		Status: string(model.StatusIncomplete),
	}

	err := s.withRetry(ctx, func(ctx context.Context, tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.BUSY, sqlite3.LOCKED)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedTask{task}, nil
}

// UpdateTaskStatus implements port.TaskStore. The status change is a
// single conditional write: a vanished task surfaces as ErrNotFound from
// the affected-row count, there is no separate existence read to race
// against a concurrent delete.
func (s *TaskStore) UpdateTaskStatus(ctx context.Context, id model.TaskID, status model.Status) (model.Task, error) {
	var task Task

	err := s.withRetry(ctx, func(ctx context.Context, tx *gorm.DB) error {
		now := time.Now().UTC()

		res := tx.Model(&Task{}).Where("id = ?", string(id)).Updates(map[string]any{
			"status":     string(status),
			"updated_at": now,
		})
		if res.Error != nil {
			return errors.WithStack(res.Error)
		}

		if res.RowsAffected == 0 {
			return errors.WithStack(port.ErrNotFound)
		}

		if err := tx.First(&task, "id = ?", string(id)).Error; err != nil {
			return errors.WithStack(err)
		}

		return nil
	}, sqlite3.BUSY, sqlite3.LOCKED)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &wrappedTask{&task}, nil
}

// DeleteTask implements port.TaskStore.
func (s *TaskStore) DeleteTask(ctx context.Context, id model.TaskID) error {
	err := s.withRetry(ctx, func(ctx context.Context, tx *gorm.DB) error {
		res := tx.Delete(&Task{}, "id = ?", string(id))
		if res.Error != nil {
			return errors.WithStack(res.Error)
		}

		if res.RowsAffected == 0 {
			return errors.WithStack(port.ErrNotFound)
		}

		return nil
	}, sqlite3.BUSY, sqlite3.LOCKED)
	if err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (s *TaskStore) withRetry(ctx context.Context, fn func(ctx context.Context, tx *gorm.DB) error, codes ...sqlite3.ErrorCode) error {
	db, err := s.getDatabase(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	backoff := 500 * time.Millisecond
	maxRetries := 10
	retries := 0

	for {
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := fn(ctx, tx); err != nil {
				return errors.WithStack(err)
			}

			return nil
		})
		if err != nil {
			if retries >= maxRetries {
				return errors.WithStack(err)
			}

			var sqliteErr *sqlite3.Error
			if errors.As(err, &sqliteErr) {
				if !slices.Contains(codes, sqliteErr.Code()) {
					return errors.WithStack(err)
				}

				slog.DebugContext(ctx, "transaction failed, will retry", slog.Int("retries", retries), slog.Duration("backoff", backoff), slog.Any("error", errors.WithStack(err)))

				retries++
				time.Sleep(backoff)
				backoff *= 2
				continue
			}

			return errors.WithStack(err)
		}

		return nil
	}
}

var _ port.TaskStore = &TaskStore{}
