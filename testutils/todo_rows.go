package testutils

import (
	"database/sql/driver"
	"time"

	"github.com/Bhargavvz/todoapp/models"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

var todoColumns = []string{
	"id", "title", "description", "completed", "created_at", "updated_at",
	"due_date", "priority", "tags", "category", "reminder", "notes",
}

// MockTodoRows creates mock SQL rows for todo queries
func MockTodoRows(todos []models.Todo) *sqlmock.Rows {
	rows := sqlmock.NewRows(todoColumns)

	for _, todo := range todos {
		if todo.ID == "" {
			todo.ID = uuid.New().String()
		}
		if todo.CreatedAt.IsZero() {
			todo.CreatedAt = time.Now().UTC()
		}
		if todo.UpdatedAt.IsZero() {
			todo.UpdatedAt = todo.CreatedAt
		}
		tags, _ := todo.Tags.Value()

		var dueDate driver.Value
		if todo.DueDate != nil {
			dueDate = *todo.DueDate
		}
		var priority driver.Value
		if !todo.Priority.IsZero() {
			priority = string(todo.Priority)
		}

		rows.AddRow(
			todo.ID,
			todo.Title,
			todo.Description,
			todo.Completed,
			todo.CreatedAt,
			todo.UpdatedAt,
			dueDate,
			priority,
			tags,
			todo.Category,
			todo.Reminder,
			todo.Notes,
		)
	}

	return rows
}

func NewResult(lastInsertID, rowsAffected int64) driver.Result {
	return sqlmock.NewResult(lastInsertID, rowsAffected)
}
