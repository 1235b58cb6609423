package setup

import (
	"context"

	gormAdapter "github.com/bornholm/backlog/internal/adapter/gorm"
	"github.com/bornholm/backlog/internal/adapter/memory"
	"github.com/bornholm/backlog/internal/config"
	"github.com/bornholm/backlog/internal/core/port"
	"github.com/pkg/errors"
)

var getTaskStoreFromConfig = createFromConfigOnce(func(ctx context.Context, conf *config.Config) (port.TaskStore, error) {
	if conf.Storage.Database.DSN == "" {
		return memory.NewTaskStore(), nil
	}

	db, err := getGormDatabaseFromConfig(ctx, conf)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	store := gormAdapter.NewTaskStore(db)

	if err := store.Migrate(ctx); err != nil {
		return nil, errors.Wrap(err, "could not migrate task store")
	}

	return store, nil
})
