// server/internal/database/seeder.go
package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"parcelio-api-server/internal/lib/sl"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SeedUsers loads a JSON array of user documents from path into an empty users collection.
// It returns the number of inserted documents; a populated collection is left untouched.
func SeedUsers(ctx context.Context, db *mongo.Database, path string, log *slog.Logger) (int, error) {
	log = log.With(sl.Module("seeder"))
	userCollection := db.Collection(UsersCollection)

	count, err := userCollection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		log.Info("users already present, seeding skipped", slog.Int64("count", count))
		return 0, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var users []map[string]interface{}
	if err := json.Unmarshal(raw, &users); err != nil {
		return 0, fmt.Errorf("decode seed file: %w", err)
	}
	if len(users) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, 0, len(users))
	for _, u := range users {
		docs = append(docs, bson.M(u))
	}

	if _, err := userCollection.InsertMany(ctx, docs); err != nil {
		return 0, fmt.Errorf("insert seed users: %w", err)
	}

	log.Info("users seeded", slog.Int("count", len(docs)), slog.String("file", path))
	return len(docs), nil
}
