package database

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Bhargavvz/todoapp/models"
	"github.com/google/uuid"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormTodoRepository struct {
	db *Database
}

func NewGormTodoRepository(db *Database) *GormTodoRepository {
	return &GormTodoRepository{db: db}
}

func (r *GormTodoRepository) FindAll(ctx context.Context) ([]models.Todo, error) {
	var todos []models.Todo
	if err := r.db.DB.WithContext(ctx).Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

func (r *GormTodoRepository) FindByID(ctx context.Context, id string) (models.Todo, bool, error) {
	var todo models.Todo
	if err := r.db.DB.WithContext(ctx).First(&todo, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Todo{}, false, nil
		}
		return models.Todo{}, false, err
	}
	return todo, true, nil
}

func (r *GormTodoRepository) Save(ctx context.Context, todo models.Todo) (models.Todo, error) {
	if todo.ID == "" {
		todo.ID = uuid.New().String()
		if err := r.db.DB.WithContext(ctx).Create(&todo).Error; err != nil {
			return models.Todo{}, err
		}
		return todo, nil
	}

	if err := r.db.DB.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&todo).Error; err != nil {
		return models.Todo{}, err
	}
	return todo, nil
}

func (r *GormTodoRepository) DeleteByID(ctx context.Context, id string) error {
	return r.db.DB.WithContext(ctx).Delete(&models.Todo{}, "id = ?", id).Error
}

func (r *GormTodoRepository) Delete(ctx context.Context, todo models.Todo) error {
	return r.DeleteByID(ctx, todo.ID)
}

func (r *GormTodoRepository) FindByCategory(ctx context.Context, category string) ([]models.Todo, error) {
	return r.findWhere(ctx, "category = ?", category)
}

func (r *GormTodoRepository) FindByPriority(ctx context.Context, priority models.Priority) ([]models.Todo, error) {
	return r.findWhere(ctx, "priority = ?", priority)
}

func (r *GormTodoRepository) FindByDueDateBefore(ctx context.Context, before time.Time) ([]models.Todo, error) {
	return r.findWhere(ctx, "due_date IS NOT NULL AND due_date < ?", before.UTC())
}

func (r *GormTodoRepository) FindByTags(ctx context.Context, tag string) ([]models.Todo, error) {
	quoted, err := json.Marshal(tag)
	if err != nil {
		return nil, err
	}

	// LIKE narrows the scan; the exact match happens on the decoded list.
	candidates, err := r.findWhere(ctx, "tags LIKE ?", "%"+string(quoted)+"%")
	if err != nil {
		return nil, err
	}

	todos := make([]models.Todo, 0, len(candidates))
	for _, todo := range candidates {
		if todo.Tags.Contains(tag) {
			todos = append(todos, todo)
		}
	}
	return todos, nil
}

func (r *GormTodoRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *GormTodoRepository) findWhere(ctx context.Context, query string, args ...interface{}) ([]models.Todo, error) {
	var todos []models.Todo
	if err := r.db.DB.WithContext(ctx).Where(query, args...).Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}
