package database

import (
	"context"
	"fmt"
	"slices"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Alijeyrad/carepulse_backend/config"
)

// InitializeDatabases creates the application collections if they don't exist.
// MongoDB creates collections lazily on first insert; creating them up front
// makes index builds and validators deterministic.
func InitializeDatabases(ctx context.Context, cfg *config.Config) error {
	dbCfg := FromCentralConfig(cfg.Mongo)

	client, db, err := NewDatabase(ctx, dbCfg)
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background())

	return createCollections(ctx, db, dbCfg.Collections())
}

func createCollections(ctx context.Context, db *mongo.Database, names []string) error {
	existing, err := db.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	for _, name := range names {
		if slices.Contains(existing, name) {
			continue
		}
		if err := db.CreateCollection(ctx, name); err != nil {
			return fmt.Errorf("failed to create collection %q: %w", name, err)
		}
	}

	return nil
}
