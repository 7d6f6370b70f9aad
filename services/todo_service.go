package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Bhargavvz/todoapp/broker"
	"github.com/Bhargavvz/todoapp/database"
	"github.com/Bhargavvz/todoapp/models"
	"github.com/Bhargavvz/todoapp/utils/datetime"
)

type TodoServiceInterface interface {
	GetAllTodos(ctx context.Context) ([]models.Todo, error)
	CreateTodo(ctx context.Context, draft models.Todo) (models.Todo, error)
	GetTodoById(ctx context.Context, id string) (models.Todo, bool, error)
	UpdateTodo(ctx context.Context, id string, draft models.Todo) (models.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
	FindByCategory(ctx context.Context, category string) ([]models.Todo, error)
	FindByPriority(ctx context.Context, priority models.Priority) ([]models.Todo, error)
	FindByDueDateBefore(ctx context.Context, date time.Time) ([]models.Todo, error)
	FindByTags(ctx context.Context, tag string) ([]models.Todo, error)
}

type TodoService struct {
	repo      database.TodoRepository
	publisher broker.Publisher
	now       func() time.Time
}

type TodoServiceOption func(*TodoService)

// WithClock replaces the wall clock used for createdAt and updatedAt.
func WithClock(now func() time.Time) TodoServiceOption {
	return func(s *TodoService) { s.now = now }
}

// WithPublisher sets where change events go. Defaults to dropping them.
func WithPublisher(publisher broker.Publisher) TodoServiceOption {
	return func(s *TodoService) {
		if publisher != nil {
			s.publisher = publisher
		}
	}
}

// NewTodoService creates a new instance of TodoService
func NewTodoService(repo database.TodoRepository, opts ...TodoServiceOption) *TodoService {
	s := &TodoService{
		repo:      repo,
		publisher: broker.NoopPublisher{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TodoService) GetAllTodos(ctx context.Context) ([]models.Todo, error) {
	return s.repo.FindAll(ctx)
}

// CreateTodo stores draft as a new todo. Any id in draft is ignored; createdAt and
// updatedAt are both set to the same instant.
func (s *TodoService) CreateTodo(ctx context.Context, draft models.Todo) (models.Todo, error) {
	priority, err := validatePriority(draft.Priority)
	if err != nil {
		return models.Todo{}, err
	}

	now := s.timestamp()
	todo := draft
	todo.ID = ""
	todo.Priority = priority
	todo.DueDate = datetime.NormalizePtr(draft.DueDate)
	todo.CreatedAt = now
	todo.UpdatedAt = now

	saved, err := s.repo.Save(ctx, todo)
	if err != nil {
		return models.Todo{}, err
	}

	s.publish(ctx, broker.TodoCreated, saved)
	return saved, nil
}

// GetTodoById reports absence through found rather than an error.
func (s *TodoService) GetTodoById(ctx context.Context, id string) (models.Todo, bool, error) {
	return s.repo.FindByID(ctx, id)
}

// UpdateTodo replaces every mutable field of the stored todo with draft's values,
// keeps createdAt and moves updatedAt strictly forward.
func (s *TodoService) UpdateTodo(ctx context.Context, id string, draft models.Todo) (models.Todo, error) {
	priority, err := validatePriority(draft.Priority)
	if err != nil {
		return models.Todo{}, err
	}

	existing, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Todo{}, err
	}
	if !found {
		return models.Todo{}, ErrTodoNotFound
	}

	models.CopyMutableFields(&existing, draft)
	existing.Priority = priority
	existing.DueDate = datetime.NormalizePtr(draft.DueDate)

	now := s.timestamp()
	if !now.After(existing.UpdatedAt) {
		now = existing.UpdatedAt.Add(datetime.Precision)
	}
	existing.UpdatedAt = now

	saved, err := s.repo.Save(ctx, existing)
	if err != nil {
		return models.Todo{}, err
	}

	s.publish(ctx, broker.TodoUpdated, saved)
	return saved, nil
}

func (s *TodoService) DeleteTodo(ctx context.Context, id string) error {
	existing, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return ErrTodoNotFound
	}

	if err := s.repo.Delete(ctx, existing); err != nil {
		return err
	}

	s.publish(ctx, broker.TodoDeleted, existing)
	return nil
}

func (s *TodoService) FindByCategory(ctx context.Context, category string) ([]models.Todo, error) {
	return s.repo.FindByCategory(ctx, category)
}

func (s *TodoService) FindByPriority(ctx context.Context, priority models.Priority) ([]models.Todo, error) {
	return s.repo.FindByPriority(ctx, priority)
}

func (s *TodoService) FindByDueDateBefore(ctx context.Context, date time.Time) ([]models.Todo, error) {
	return s.repo.FindByDueDateBefore(ctx, date.UTC())
}

func (s *TodoService) FindByTags(ctx context.Context, tag string) ([]models.Todo, error) {
	return s.repo.FindByTags(ctx, tag)
}

func (s *TodoService) timestamp() time.Time {
	return datetime.Normalize(s.now())
}

// publish never fails the caller: the change is already committed.
func (s *TodoService) publish(ctx context.Context, eventType broker.EventType, todo models.Todo) {
	event, err := models.NewTodoEvent(string(eventType), todo.ID, todo)
	if err != nil {
		log.Printf("Failed to build %s event for todo %s: %v", eventType, todo.ID, err)
		return
	}
	if err := s.publisher.Publish(ctx, *event); err != nil {
		log.Printf("Failed to publish %s event for todo %s: %v", eventType, todo.ID, err)
	}
}

func validatePriority(priority models.Priority) (models.Priority, error) {
	if priority.IsZero() {
		return priority, nil
	}
	parsed, err := models.ParsePriority(string(priority))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return parsed, nil
}
