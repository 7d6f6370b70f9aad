package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Bhargavvz/todoapp/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrInvalidObjectID = errors.New("invalid object id")

// todoDocument is the stored shape of a todo.
type todoDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Completed   bool               `bson:"completed"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
	DueDate     *time.Time         `bson:"dueDate,omitempty"`
	Priority    string             `bson:"priority,omitempty"`
	Tags        []string           `bson:"tags"`
	Category    string             `bson:"category"`
	Reminder    bool               `bson:"reminder"`
	Notes       string             `bson:"notes"`
}

func toDocument(todo models.Todo, id primitive.ObjectID) todoDocument {
	return todoDocument{
		ID:          id,
		Title:       todo.Title,
		Description: todo.Description,
		Completed:   todo.Completed,
		CreatedAt:   todo.CreatedAt,
		UpdatedAt:   todo.UpdatedAt,
		DueDate:     todo.DueDate,
		Priority:    string(todo.Priority),
		Tags:        todo.Tags,
		Category:    todo.Category,
		Reminder:    todo.Reminder,
		Notes:       todo.Notes,
	}
}

func (d todoDocument) toModel() models.Todo {
	todo := models.Todo{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.Completed,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
		Priority:    models.Priority(d.Priority),
		Tags:        d.Tags,
		Category:    d.Category,
		Reminder:    d.Reminder,
		Notes:       d.Notes,
	}
	if d.DueDate != nil {
		due := d.DueDate.UTC()
		todo.DueDate = &due
	}
	return todo
}

type MongoTodoRepository struct {
	coll *mongo.Collection
}

func NewMongoTodoRepository(coll *mongo.Collection) *MongoTodoRepository {
	return &MongoTodoRepository{coll: coll}
}

// EnsureIndexes creates the indexes backing the filtered queries.
func (r *MongoTodoRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "priority", Value: 1}}},
		{Keys: bson.D{{Key: "dueDate", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	}
	names, err := r.coll.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	log.Printf("Ensured %d indexes on %s", len(names), r.coll.Name())
	return nil
}

func (r *MongoTodoRepository) FindAll(ctx context.Context) ([]models.Todo, error) {
	return r.find(ctx, bson.D{})
}

func (r *MongoTodoRepository) FindByID(ctx context.Context, id string) (models.Todo, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Ids this store never issued cannot match a document.
		return models.Todo{}, false, nil
	}

	var doc todoDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Todo{}, false, nil
		}
		return models.Todo{}, false, err
	}
	return doc.toModel(), true, nil
}

func (r *MongoTodoRepository) Save(ctx context.Context, todo models.Todo) (models.Todo, error) {
	if todo.ID == "" {
		doc := toDocument(todo, primitive.NewObjectID())
		if _, err := r.coll.InsertOne(ctx, doc); err != nil {
			return models.Todo{}, err
		}
		todo.ID = doc.ID.Hex()
		return todo, nil
	}

	oid, err := primitive.ObjectIDFromHex(todo.ID)
	if err != nil {
		return models.Todo{}, fmt.Errorf("%w: %q", ErrInvalidObjectID, todo.ID)
	}
	doc := toDocument(todo, oid)
	if _, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc, options.Replace().SetUpsert(true)); err != nil {
		return models.Todo{}, err
	}
	return todo, nil
}

func (r *MongoTodoRepository) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}
	_, err = r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *MongoTodoRepository) Delete(ctx context.Context, todo models.Todo) error {
	return r.DeleteByID(ctx, todo.ID)
}

func (r *MongoTodoRepository) FindByCategory(ctx context.Context, category string) ([]models.Todo, error) {
	return r.find(ctx, bson.M{"category": category})
}

func (r *MongoTodoRepository) FindByPriority(ctx context.Context, priority models.Priority) ([]models.Todo, error) {
	return r.find(ctx, bson.M{"priority": string(priority)})
}

func (r *MongoTodoRepository) FindByDueDateBefore(ctx context.Context, before time.Time) ([]models.Todo, error) {
	return r.find(ctx, bson.M{"dueDate": bson.M{"$lt": before.UTC()}})
}

func (r *MongoTodoRepository) FindByTags(ctx context.Context, tag string) ([]models.Todo, error) {
	return r.find(ctx, bson.M{"tags": tag})
}

func (r *MongoTodoRepository) Ping(ctx context.Context) error {
	return r.coll.Database().Client().Ping(ctx, nil)
}

func (r *MongoTodoRepository) find(ctx context.Context, filter interface{}) ([]models.Todo, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []todoDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	todos := make([]models.Todo, 0, len(docs))
	for _, doc := range docs {
		todos = append(todos, doc.toModel())
	}
	return todos, nil
}
