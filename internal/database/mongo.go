package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names shared by the MongoDB repositories
const (
	UsersCollection = "users"
	JobsCollection  = "jobs"
)

// Mongo wraps a MongoDB client bound to one database
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	config MongoConfig
}

// NewMongo creates a new, unconnected MongoDB instance
func NewMongo(cfg MongoConfig) *Mongo {
	return &Mongo{config: cfg}
}

// Connect opens the client, verifies it with a ping and creates the indexes
func (m *Mongo) Connect(ctx context.Context) error {
	client, err := mongo.Connect(options.Client().ApplyURI(m.config.URI))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return fmt.Errorf("%w: ping failed: %v", ErrConnection, err)
	}

	m.client = client
	m.db = client.Database(m.config.Database)

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close()
		return err
	}
	return nil
}

func (m *Mongo) ensureIndexes(ctx context.Context) error {
	_, err := m.db.Collection(UsersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("%w: create users index: %v", ErrQuery, err)
	}

	_, err = m.db.Collection(JobsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetName("job_user"),
	})
	if err != nil {
		return fmt.Errorf("%w: create jobs index: %v", ErrQuery, err)
	}
	return nil
}

// Close disconnects the client
func (m *Mongo) Close() error {
	if m.client != nil {
		return m.client.Disconnect(context.Background())
	}
	return nil
}

// Ping checks the database connection
func (m *Mongo) Ping(ctx context.Context) error {
	if m.client == nil {
		return ErrConnection
	}
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Collection returns a handle to the named collection
func (m *Mongo) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// Drop removes the whole database
func (m *Mongo) Drop(ctx context.Context) error {
	if m.db == nil {
		return ErrConnection
	}
	return m.db.Drop(ctx)
}
