package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Bhargavvz/todoapp/database"
	"github.com/Bhargavvz/todoapp/models"
	"github.com/Bhargavvz/todoapp/testutils"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByID_SQL(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectQuery(`SELECT \* FROM "todos" WHERE id = \$1 ORDER BY "todos"."id" LIMIT \$2`).
		WithArgs("abc", 1).
		WillReturnRows(testutils.MockTodoRows([]models.Todo{{ID: "abc", Title: "Buy milk", Priority: models.PriorityMedium}}))

	repo := database.NewGormTodoRepository(db)
	todo, found, err := repo.FindByID(context.Background(), "abc")

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "Buy milk", todo.Title)
	assert.Equal(t, models.PriorityMedium, todo.Priority)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_SQLNoRows(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectQuery(`SELECT \* FROM "todos" WHERE id = \$1`).
		WithArgs("missing", 1).
		WillReturnRows(testutils.MockTodoRows(nil))

	repo := database.NewGormTodoRepository(db)
	_, found, err := repo.FindByID(context.Background(), "missing")

	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_SQLError(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectQuery(`SELECT \* FROM "todos" WHERE id = \$1`).
		WillReturnError(errors.New("connection reset"))

	repo := database.NewGormTodoRepository(db)
	_, found, err := repo.FindByID(context.Background(), "abc")

	assert.ErrorContains(t, err, "connection reset")
	assert.False(t, found)
}

func TestFindByDueDateBefore_SQL(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	cutoff := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	due := cutoff.Add(-time.Hour)
	mock.ExpectQuery(`SELECT \* FROM "todos" WHERE due_date IS NOT NULL AND due_date < \$1`).
		WithArgs(cutoff).
		WillReturnRows(testutils.MockTodoRows([]models.Todo{{ID: "a", DueDate: &due}}))

	repo := database.NewGormTodoRepository(db)
	todos, err := repo.FindByDueDateBefore(context.Background(), cutoff)

	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.True(t, due.Equal(*todos[0].DueDate))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByTags_SQLFiltersExactTag(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectQuery(`SELECT \* FROM "todos" WHERE tags LIKE \$1`).
		WithArgs(`%"home"%`).
		WillReturnRows(testutils.MockTodoRows([]models.Todo{
			{ID: "a", Tags: models.Tags{"home", "garden"}},
			{ID: "b", Tags: models.Tags{"not \"home\" really"}},
		}))

	repo := database.NewGormTodoRepository(db)
	todos, err := repo.FindByTags(context.Background(), "home")

	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "a", todos[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByID_SQL(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "todos" WHERE id = \$1`).
		WithArgs("abc").
		WillReturnResult(testutils.NewResult(0, 1))
	mock.ExpectCommit()

	repo := database.NewGormTodoRepository(db)
	assert.NoError(t, repo.DeleteByID(context.Background(), "abc"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByCategory_SQL(t *testing.T) {
	db, mock, close := testutils.SetupMockDB()
	defer close()

	mock.ExpectQuery(`SELECT \* FROM "todos" WHERE category = \$1`).
		WithArgs("shopping").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "category"}).
			AddRow("a", "milk", "shopping"))

	repo := database.NewGormTodoRepository(db)
	todos, err := repo.FindByCategory(context.Background(), "shopping")

	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "milk", todos[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}
