package database

import (
	"context"
	"fmt"
	"log"

	"github.com/Bhargavvz/todoapp/config"
)

// NewTodoRepository opens the store selected by cfg.StoreDriver, prepares its
// indexes and returns the repository with a function releasing the connection.
func NewTodoRepository(ctx context.Context, cfg config.Config) (TodoRepository, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, err := SetupMongo(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		repo := NewMongoTodoRepository(TodoCollectionFor(client))
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		closer := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Printf("Failed to disconnect from mongo: %v", err)
			}
		}
		return repo, closer, nil

	case config.StorePostgres, config.StoreSQLite:
		db, err := Setup(cfg)
		if err != nil {
			return nil, nil, err
		}
		return NewGormTodoRepository(db), db.Close, nil
	}

	return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}
