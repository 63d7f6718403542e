package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Database bundles the Mongo client and the collections the service uses.
type Database struct {
	Client          *mongo.Client
	TripsCollection *mongo.Collection
}

// Connect opens the Mongo connection and checks it with a ping. Nested
// documents decode as maps so stored raw_data reads back like JSON.
func Connect(ctx context.Context, uri, name string) (*Database, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}

	return &Database{
		Client:          client,
		TripsCollection: client.Database(name).Collection("trips"),
	}, nil
}

// Close disconnects the client.
func (d *Database) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}
