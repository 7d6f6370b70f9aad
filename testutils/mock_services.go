package testutils

import (
	"context"
	"time"

	"github.com/Bhargavvz/todoapp/models"

	"github.com/stretchr/testify/mock"
)

// MockTodoRepository mocks database.TodoRepository for testing
type MockTodoRepository struct {
	mock.Mock
}

func (m *MockTodoRepository) FindAll(ctx context.Context) ([]models.Todo, error) {
	args := m.Called(ctx)
	return todos(args.Get(0)), args.Error(1)
}

func (m *MockTodoRepository) FindByID(ctx context.Context, id string) (models.Todo, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Todo), args.Bool(1), args.Error(2)
}

func (m *MockTodoRepository) Save(ctx context.Context, todo models.Todo) (models.Todo, error) {
	args := m.Called(ctx, todo)
	return args.Get(0).(models.Todo), args.Error(1)
}

func (m *MockTodoRepository) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTodoRepository) Delete(ctx context.Context, todo models.Todo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *MockTodoRepository) FindByCategory(ctx context.Context, category string) ([]models.Todo, error) {
	args := m.Called(ctx, category)
	return todos(args.Get(0)), args.Error(1)
}

func (m *MockTodoRepository) FindByPriority(ctx context.Context, priority models.Priority) ([]models.Todo, error) {
	args := m.Called(ctx, priority)
	return todos(args.Get(0)), args.Error(1)
}

func (m *MockTodoRepository) FindByDueDateBefore(ctx context.Context, before time.Time) ([]models.Todo, error) {
	args := m.Called(ctx, before)
	return todos(args.Get(0)), args.Error(1)
}

func (m *MockTodoRepository) FindByTags(ctx context.Context, tag string) ([]models.Todo, error) {
	args := m.Called(ctx, tag)
	return todos(args.Get(0)), args.Error(1)
}

func (m *MockTodoRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTodoService mocks services.TodoServiceInterface for route tests
type MockTodoService struct {
	mock.Mock
}

func (m *MockTodoService) GetAllTodos(ctx context.Context) ([]models.Todo, error) {
	args := m.Called(ctx)
	return todos(args.Get(0)), args.Error(1)
}

func (m *MockTodoService) CreateTodo(ctx context.Context, draft models.Todo) (models.Todo, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(models.Todo), args.Error(1)
}

func (m *MockTodoService) GetTodoById(ctx context.Context, id string) (models.Todo, bool, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Todo), args.Bool(1), args.Error(2)
}

func (m *MockTodoService) UpdateTodo(ctx context.Context, id string, draft models.Todo) (models.Todo, error) {
	args := m.Called(ctx, id, draft)
	return args.Get(0).(models.Todo), args.Error(1)
}

func (m *MockTodoService) DeleteTodo(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTodoService) FindByCategory(ctx context.Context, category string) ([]models.Todo, error) {
	args := m.Called(ctx, category)
	return todos(args.Get(0)), args.Error(1)
}

func (m *MockTodoService) FindByPriority(ctx context.Context, priority models.Priority) ([]models.Todo, error) {
	args := m.Called(ctx, priority)
	return todos(args.Get(0)), args.Error(1)
}

func (m *MockTodoService) FindByDueDateBefore(ctx context.Context, date time.Time) ([]models.Todo, error) {
	args := m.Called(ctx, date)
	return todos(args.Get(0)), args.Error(1)
}

func (m *MockTodoService) FindByTags(ctx context.Context, tag string) ([]models.Todo, error) {
	args := m.Called(ctx, tag)
	return todos(args.Get(0)), args.Error(1)
}

// MockPublisher records published events
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event models.TodoEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func todos(v interface{}) []models.Todo {
	if v == nil {
		return nil
	}
	return v.([]models.Todo)
}
