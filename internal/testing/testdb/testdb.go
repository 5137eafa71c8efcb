package testdb

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/Amorphous121/jobboard/internal/database"
)

var (
	// counterMu protects the namespace counter
	counterMu sync.Mutex
	counter   int64
)

// uniqueName generates a unique namespace or database name for test isolation
func uniqueName() string {
	counterMu.Lock()
	defer counterMu.Unlock()
	counter++
	return fmt.Sprintf("test_%d_%d", time.Now().UnixNano(), counter)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// ============================================================================
// SurrealDB
// ============================================================================

// Surreal is an isolated SurrealDB namespace with the schema applied
type Surreal struct {
	DB        *database.SurrealDB
	Namespace string
}

// NewSurreal connects to the SurrealDB named by TEST_SURREAL_HOST and
// TEST_SURREAL_PORT in a fresh namespace. The test is skipped when
// TEST_SURREAL_HOST is unset. The namespace is removed on cleanup.
func NewSurreal(t *testing.T) *Surreal {
	t.Helper()

	host := os.Getenv("TEST_SURREAL_HOST")
	if host == "" {
		t.Skip("TEST_SURREAL_HOST not set; skipping SurrealDB integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	namespace := uniqueName()
	db := database.NewSurrealDB(database.Config{
		Host:      host,
		Port:      getEnv("TEST_SURREAL_PORT", "8000"),
		User:      getEnv("TEST_SURREAL_USER", "root"),
		Password:  getEnv("TEST_SURREAL_PASSWORD", "root"),
		Namespace: namespace,
		Database:  "test",
	})
	if err := db.Connect(ctx); err != nil {
		t.Fatalf("testdb: failed to connect to SurrealDB: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		// Ignore errors on cleanup
		_ = db.Execute(ctx, fmt.Sprintf("REMOVE NAMESPACE %s", namespace), nil)
		_ = db.Close()
	})

	return &Surreal{DB: db, Namespace: namespace}
}

// ============================================================================
// MongoDB
// ============================================================================

// Mongo is an isolated MongoDB database with the indexes created
type Mongo struct {
	DB       *database.Mongo
	Database string
}

// NewMongo connects to the MongoDB at TEST_MONGO_URI using a fresh database.
// The test is skipped when TEST_MONGO_URI is unset. The database is dropped
// on cleanup.
func NewMongo(t *testing.T) *Mongo {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set; skipping MongoDB integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	name := uniqueName()
	db := database.NewMongo(database.MongoConfig{URI: uri, Database: name})
	if err := db.Connect(ctx); err != nil {
		t.Fatalf("testdb: failed to connect to MongoDB: %v", err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = db.Close()
	})

	return &Mongo{DB: db, Database: name}
}
