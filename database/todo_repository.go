package database

import (
	"context"
	"time"

	"github.com/Bhargavvz/todoapp/models"
)

// TodoRepository is the storage contract for todos. Implementations rely on the
// store's per-document atomicity only; concurrent saves are last-writer-wins.
type TodoRepository interface {
	FindAll(ctx context.Context) ([]models.Todo, error)
	// FindByID reports found=false with a nil error when no todo has the id.
	FindByID(ctx context.Context, id string) (models.Todo, bool, error)
	// Save inserts when todo.ID is empty, assigning a fresh id, and overwrites otherwise.
	Save(ctx context.Context, todo models.Todo) (models.Todo, error)
	// DeleteByID is a no-op for unknown ids.
	DeleteByID(ctx context.Context, id string) error
	Delete(ctx context.Context, todo models.Todo) error
	FindByCategory(ctx context.Context, category string) ([]models.Todo, error)
	FindByPriority(ctx context.Context, priority models.Priority) ([]models.Todo, error)
	// FindByDueDateBefore matches dueDate < before strictly; todos without a due date never match.
	FindByDueDateBefore(ctx context.Context, before time.Time) ([]models.Todo, error)
	// FindByTags matches todos whose tag list contains tag.
	FindByTags(ctx context.Context, tag string) ([]models.Todo, error)
	Ping(ctx context.Context) error
}
