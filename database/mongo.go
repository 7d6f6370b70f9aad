package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Bhargavvz/todoapp/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const TodoCollection = "todos"

// SetupMongo connects to the document store and verifies the connection.
func SetupMongo(ctx context.Context, cfg config.Config) (*mongo.Client, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.MongoURI).
		SetAppName("todoapp")

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	log.Printf("Connected to mongo database %s", config.MongoDatabaseName)
	return client, nil
}

// TodoCollectionFor returns the todos collection of the fixed application database.
func TodoCollectionFor(client *mongo.Client) *mongo.Collection {
	return client.Database(config.MongoDatabaseName).Collection(TodoCollection)
}
