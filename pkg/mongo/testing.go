package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// MongoTestDatabase returns a throwaway database for integration tests and
// drops it on cleanup. The test is skipped under -short or when MONGODB_URL
// is not set.
func MongoTestDatabase(t testing.TB) *mongo.Database {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping mongo integration test in short mode")
	}
	url := os.Getenv("MONGODB_URL")
	if url == "" {
		t.Skip("MONGODB_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := New(ctx, Config{
		ConnectionURL:  url,
		ConnectTimeout: 5 * time.Second,
		MaxPoolSize:    10,
		RetryAttempts:  1,
	})
	if err != nil {
		t.Fatalf("connect to mongo: %v", err)
	}

	db := client.Database("entitlements_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = db.Drop(ctx)
		_ = client.Disconnect(ctx)
	})
	return db
}
