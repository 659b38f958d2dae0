package mongo

import (
	"campsite/internal/migrations/mongo/validators"
	"campsite/internal/reservations/repository"
	"campsite/pkg/logger"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type collectionDef struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

var (
	ReservationsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "from_date", Value: 1},
			{Key: "to_date", Value: 1},
		}},
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}

	collections = []collectionDef{
		{
			Name:      repository.CollectionName,
			Indexes:   ReservationsIndexes,
			Validator: validators.ReservationValidator,
		},
		{
			Name:      repository.LockCollectionName,
			Validator: validators.ReservationLockValidator,
		},
		{
			Name: repository.CounterCollectionName,
		},
	}
)

func RunMigration(ctx context.Context, db *mongo.Database, log *logger.Logger) error {
	log.Info("Running Mongo migrations", "database", db.Name())

	for _, def := range collections {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	if err := seedLock(ctx, db); err != nil {
		return fmt.Errorf("failed to seed reservation lock: %w", err)
	}

	log.Info("All Mongo migrations applied")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection()
		if validator != nil {
			opts.SetValidator(validator)
		}
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	if validator == nil {
		return nil
	}
	log.Info("Collection exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	if len(models) == 0 {
		return nil
	}
	if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}

// seedLock creates the writer lock document so the first transaction does
// not race on its upsert.
func seedLock(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(repository.LockCollectionName).UpdateOne(ctx,
		bson.M{"_id": repository.LockID},
		bson.M{"$setOnInsert": bson.M{
			"version":    int64(0),
			"updated_at": time.Now().UTC(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}
