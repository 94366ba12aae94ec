// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"orgvault/internal/app/system/timeouts"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection used by every store.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeouts.Ping())
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB", zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		MongoClient:   client,
		MongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the unique indexes the registry depends on.
//
// The organization name and derived partition name are each unique across
// the registry, and admin emails are unique across all organizations. The
// provisioning sequences rely on these indexes to close their race windows,
// so startup fails hard if any of them cannot be built.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	orgIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_name_ci"),
		},
		{
			Keys:    bson.D{{Key: "partition_name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_partition_name"),
		},
	}
	if _, err := deps.MongoDatabase.Collection("organizations").Indexes().CreateMany(ctx, orgIndexes); err != nil {
		return fmt.Errorf("organizations indexes: %w", err)
	}

	adminIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email_ci"),
		},
		{
			Keys:    bson.D{{Key: "org_id", Value: 1}},
			Options: options.Index().SetName("idx_org_id"),
		},
	}
	if _, err := deps.MongoDatabase.Collection("admins").Indexes().CreateMany(ctx, adminIndexes); err != nil {
		return fmt.Errorf("admins indexes: %w", err)
	}

	logger.Info("schema indexes ensured")
	return nil
}
