package database

import (
	"context"
	"testing"
	"time"

	"github.com/Bhargavvz/todoapp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const testNamespace = "tododb.todos"

func todoBSON(id primitive.ObjectID, title string, extra ...bson.E) bson.D {
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	doc := bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "description", Value: ""},
		{Key: "completed", Value: false},
		{Key: "createdAt", Value: created},
		{Key: "updatedAt", Value: created},
		{Key: "tags", Value: bson.A{}},
		{Key: "category", Value: ""},
		{Key: "reminder", Value: false},
		{Key: "notes", Value: ""},
	}
	return append(doc, extra...)
}

func TestMongoTodoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find by id decodes document", func(mt *mtest.T) {
		repo := NewMongoTodoRepository(mt.Coll)
		id := primitive.NewObjectID()
		due := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			todoBSON(id, "Buy milk",
				bson.E{Key: "dueDate", Value: due},
				bson.E{Key: "priority", Value: "HIGH"},
			),
		))

		todo, found, err := repo.FindByID(context.Background(), id.Hex())
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, id.Hex(), todo.ID)
		assert.Equal(t, "Buy milk", todo.Title)
		assert.Equal(t, models.PriorityHigh, todo.Priority)
		require.NotNil(t, todo.DueDate)
		assert.True(t, due.Equal(*todo.DueDate))
		assert.Equal(t, time.UTC, todo.CreatedAt.Location())
	})

	mt.Run("find by id without match", func(mt *mtest.T) {
		repo := NewMongoTodoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch))

		_, found, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.NoError(t, err)
		assert.False(t, found)
	})

	mt.Run("find by id with foreign id format", func(mt *mtest.T) {
		repo := NewMongoTodoRepository(mt.Coll)

		_, found, err := repo.FindByID(context.Background(), "not-an-object-id")
		assert.NoError(t, err)
		assert.False(t, found)
	})

	mt.Run("find by id surfaces store failure", func(mt *mtest.T) {
		repo := NewMongoTodoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "boom",
		}))

		_, found, err := repo.FindByID(context.Background(), primitive.NewObjectID().Hex())
		assert.Error(t, err)
		assert.False(t, found)
	})

	mt.Run("save inserts draft with fresh id", func(mt *mtest.T) {
		repo := NewMongoTodoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		saved, err := repo.Save(context.Background(), models.Todo{Title: "Buy milk"})
		require.NoError(t, err)
		assert.True(t, primitive.IsValidObjectID(saved.ID))
		assert.Equal(t, "Buy milk", saved.Title)
	})

	mt.Run("save replaces existing", func(mt *mtest.T) {
		repo := NewMongoTodoRepository(mt.Coll)
		id := primitive.NewObjectID().Hex()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		saved, err := repo.Save(context.Background(), models.Todo{ID: id, Title: "Final"})
		require.NoError(t, err)
		assert.Equal(t, id, saved.ID)
	})

	mt.Run("save rejects foreign id format", func(mt *mtest.T) {
		repo := NewMongoTodoRepository(mt.Coll)

		_, err := repo.Save(context.Background(), models.Todo{ID: "abc"})
		assert.ErrorIs(t, err, ErrInvalidObjectID)
	})

	mt.Run("save surfaces store failure", func(mt *mtest.T) {
		repo := NewMongoTodoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := repo.Save(context.Background(), models.Todo{Title: "dup"})
		assert.Error(t, err)
	})

	mt.Run("delete by id", func(mt *mtest.T) {
		repo := NewMongoTodoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(t, repo.DeleteByID(context.Background(), primitive.NewObjectID().Hex()))
		assert.NoError(t, repo.DeleteByID(context.Background(), "not-an-object-id"))
	})

	mt.Run("filtered queries decode every match", func(mt *mtest.T) {
		repo := NewMongoTodoRepository(mt.Coll)
		ctx := context.Background()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			todoBSON(primitive.NewObjectID(), "milk", bson.E{Key: "category", Value: "shopping"}),
			todoBSON(primitive.NewObjectID(), "eggs", bson.E{Key: "category", Value: "shopping"}),
		))
		todos, err := repo.FindByCategory(ctx, "shopping")
		require.NoError(t, err)
		assert.Equal(t, []string{"milk", "eggs"}, titles(todos))

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			todoBSON(primitive.NewObjectID(), "report", bson.E{Key: "priority", Value: "LOW"}),
		))
		todos, err = repo.FindByPriority(ctx, models.PriorityLow)
		require.NoError(t, err)
		assert.Equal(t, []string{"report"}, titles(todos))

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch))
		todos, err = repo.FindByDueDateBefore(ctx, time.Now())
		require.NoError(t, err)
		assert.Empty(t, todos)
		assert.NotNil(t, todos)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch,
			todoBSON(primitive.NewObjectID(), "tagged", bson.E{Key: "tags", Value: bson.A{"home"}}),
		))
		todos, err = repo.FindByTags(ctx, "home")
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.Equal(t, models.Tags{"home"}, todos[0].Tags)
	})

	mt.Run("filtered queries send exact filters", func(mt *mtest.T) {
		repo := NewMongoTodoRepository(mt.Coll)
		ctx := context.Background()

		mt.ClearEvents()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch))
		_, err := repo.FindByCategory(ctx, "shopping")
		require.NoError(mt, err)
		filter := startedFilter(mt)
		assert.Equal(mt, "shopping", filter.Lookup("category").StringValue())
		assertFilterKeys(mt, filter, "category")

		mt.ClearEvents()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch))
		_, err = repo.FindByPriority(ctx, models.PriorityLow)
		require.NoError(mt, err)
		filter = startedFilter(mt)
		assert.Equal(mt, "LOW", filter.Lookup("priority").StringValue())
		assertFilterKeys(mt, filter, "priority")

		before := time.Date(2024, 1, 3, 12, 30, 0, 0, time.UTC)
		mt.ClearEvents()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch))
		_, err = repo.FindByDueDateBefore(ctx, before)
		require.NoError(mt, err)
		filter = startedFilter(mt)
		assertFilterKeys(mt, filter, "dueDate")
		bound := filter.Lookup("dueDate").Document()
		assertFilterKeys(mt, bound, "$lt")
		assert.True(mt, before.Equal(bound.Lookup("$lt").Time()))

		mt.ClearEvents()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testNamespace, mtest.FirstBatch))
		_, err = repo.FindByTags(ctx, "home")
		require.NoError(mt, err)
		filter = startedFilter(mt)
		assert.Equal(mt, "home", filter.Lookup("tags").StringValue())
		assertFilterKeys(mt, filter, "tags")
	})

	mt.Run("save on existing id upserts by id", func(mt *mtest.T) {
		repo := NewMongoTodoRepository(mt.Coll)
		id := primitive.NewObjectID()
		mt.ClearEvents()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		_, err := repo.Save(context.Background(), models.Todo{ID: id.Hex(), Title: "Final"})
		require.NoError(mt, err)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		require.Equal(mt, "update", evt.CommandName)
		update := evt.Command.Lookup("updates", "0").Document()
		assert.Equal(mt, id, update.Lookup("q", "_id").ObjectID())
		assertFilterKeys(mt, update.Lookup("q").Document(), "_id")
		assert.True(mt, update.Lookup("upsert").Boolean())
		assert.Equal(mt, "Final", update.Lookup("u", "title").StringValue())
	})

	mt.Run("find all surfaces store failure", func(mt *mtest.T) {
		repo := NewMongoTodoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))

		_, err := repo.FindAll(context.Background())
		assert.Error(t, err)
	})

	mt.Run("ensure indexes", func(mt *mtest.T) {
		repo := NewMongoTodoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(t, repo.EnsureIndexes(context.Background()))
	})

	mt.Run("ping", func(mt *mtest.T) {
		repo := NewMongoTodoRepository(mt.Coll)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(t, repo.Ping(context.Background()))
	})
}

// startedFilter returns the filter of the next recorded find command.
func startedFilter(mt *mtest.T) bson.Raw {
	evt := mt.GetStartedEvent()
	require.NotNil(mt, evt)
	require.Equal(mt, "find", evt.CommandName)
	return evt.Command.Lookup("filter").Document()
}

func assertFilterKeys(mt *mtest.T, doc bson.Raw, keys ...string) {
	elems, err := doc.Elements()
	require.NoError(mt, err)
	got := make([]string, 0, len(elems))
	for _, elem := range elems {
		got = append(got, elem.Key())
	}
	assert.Equal(mt, keys, got)
}
