package main

import (
	mongoMigration "campsite/internal/migrations/mongo"
	postgresMigration "campsite/internal/migrations/postgres"
	"campsite/pkg/config"
	"context"
	"time"
)

const JobName = "campsite-migration"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetStore()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting migration job", "store_backend", cfg.StoreBackend)

	var err error
	switch cfg.StoreBackend {
	case config.StoreMongo:
		err = mongoMigration.RunMigration(ctx, cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName), cfg.Log)
	case config.StorePostgres:
		err = postgresMigration.RunMigration(cfg.Client.Postgres.DB, cfg.Log)
	default:
		cfg.Log.Info("Nothing to migrate for store backend", "store_backend", cfg.StoreBackend)
	}
	if err != nil {
		cfg.Log.Error("Migration failed", "error", err)
		cancel()
		cfg.GracefulShutdown()
		cfg.Log.Fatal("Migration job aborted")
	}

	cfg.Log.Info("Migration completed successfully")
}
