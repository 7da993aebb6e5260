package model

import (
	"context"
	"fmt"
	"time"

	"github.com/nftstake/weight-indexer/internal/config"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	PoolCollection  = "pools"
	StakeCollection = "stakes"
)

type index struct {
	Keys   bson.D
	Unique bool
	// Partial restricts a unique index to matching documents.
	Partial bson.M
}

var collections = map[string][]index{
	PoolCollection: {
		{Keys: bson.D{{Key: "state", Value: 1}, {Key: "staking_ends_at", Value: 1}}},
		{Keys: bson.D{{Key: "settled", Value: 1}, {Key: "staking_ends_at", Value: 1}}},
	},
	StakeCollection: {
		{
			Keys:    bson.D{{Key: "pool_id", Value: 1}, {Key: "asset_id", Value: 1}},
			Unique:  true,
			Partial: bson.M{"active": true},
		},
		{Keys: bson.D{{Key: "pool_id", Value: 1}, {Key: "active", Value: 1}, {Key: "last_weight_update_time", Value: 1}}},
		{Keys: bson.D{{Key: "owner", Value: 1}}},
	},
}

// Setup creates the collections and their indexes.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}

	// Create a context with timeout
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Access a database and create collections.
	database := client.Database(cfg.DbName)

	// Create collections.
	for collection := range collections {
		createCollection(ctx, database, collection)
	}

	for name, idxs := range collections {
		for _, idx := range idxs {
			if err := createIndex(ctx, database, name, idx); err != nil {
				return err
			}
		}
	}

	log.Info().Msg("Collections and Indexes created successfully.")
	return nil
}

func createCollection(ctx context.Context, database *mongo.Database, collectionName string) {
	// Check if the collection already exists.
	if _, err := database.Collection(collectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "_id", Value: 1}},
	}); err != nil {
		log.Debug().Msg(fmt.Sprintf("Collection maybe already exists: %s, skip the rest. info: %s", collectionName, err))
		return
	}

	// Create the collection.
	if err := database.CreateCollection(ctx, collectionName); err != nil {
		log.Debug().Msg(fmt.Sprintf("Failed to create collection: %s, error: %s", collectionName, err))
		return
	}

	log.Debug().Msg(fmt.Sprintf("Collection created successfully: %s", collectionName))
}

func createIndex(ctx context.Context, database *mongo.Database, collectionName string, idx index) error {
	if len(idx.Keys) == 0 {
		return nil
	}

	opts := options.Index().SetUnique(idx.Unique)
	if idx.Partial != nil {
		opts.SetPartialFilterExpression(idx.Partial)
	}

	index := mongo.IndexModel{
		Keys:    idx.Keys,
		Options: opts,
	}

	if _, err := database.Collection(collectionName).Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create index on %s: %w", collectionName, err)
	}

	log.Debug().Msg(fmt.Sprintf("Index created successfully on collection: %s", collectionName))
	return nil
}
