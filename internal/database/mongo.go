// server/internal/database/mongo.go
package database

import (
	"context"
	"fmt"
	"log/slog"

	"parcelio-api-server/config"
	"parcelio-api-server/internal/lib/sl"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	UsersCollection    = "users"
	ParcelsCollection  = "parcels"
	PaymentsCollection = "payments"
)

// Connect opens the long-lived client with Stable API v1 and pings the deployment.
func Connect(ctx context.Context, cfg config.MongoConfig, log *slog.Logger) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	opts := options.Client().
		ApplyURI(cfg.ConnectionURI()).
		SetServerAPIOptions(serverAPI)
	if cfg.Timeout > 0 {
		opts.SetTimeout(cfg.Timeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}

	if err := Ping(ctx, client); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	log.With(sl.Module("database")).Info("pinged deployment, connected to MongoDB",
		slog.String("database", cfg.DBName))
	return client, nil
}

// Ping runs the admin ping command.
func Ping(ctx context.Context, client *mongo.Client) error {
	if err := client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return fmt.Errorf("mongodb ping: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes backing the list endpoints. It is idempotent.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	parcels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_by", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	if _, err := db.Collection(ParcelsCollection).Indexes().CreateMany(ctx, parcels); err != nil {
		return fmt.Errorf("create parcel indexes: %w", err)
	}

	payments := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "paid_at", Value: -1}}},
		{Keys: bson.D{{Key: "transactionId", Value: 1}}},
	}
	if _, err := db.Collection(PaymentsCollection).Indexes().CreateMany(ctx, payments); err != nil {
		return fmt.Errorf("create payment indexes: %w", err)
	}
	return nil
}
