package db

import (
	"context"
	"errors"

	"github.com/nftstake/weight-indexer/internal/db/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *Database) SaveNewStake(ctx context.Context, stake *model.StakeDocument) error {
	_, err := db.collection(model.StakeCollection).InsertOne(ctx, stake)
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     stake.AssetID,
						Message: "asset is already staked in this pool",
					}
				}
			}
		}
		return err
	}
	return nil
}

func (db *Database) GetActiveStake(ctx context.Context, poolID, assetID string) (*model.StakeDocument, error) {
	filter := bson.M{
		"pool_id":  poolID,
		"asset_id": assetID,
		"active":   true,
	}

	var stake model.StakeDocument
	err := db.collection(model.StakeCollection).FindOne(ctx, filter).Decode(&stake)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     assetID,
				Message: "active stake not found",
			}
		}
		return nil, err
	}
	return &stake, nil
}

func (db *Database) UpdateStake(ctx context.Context, stake *model.StakeDocument, expectedVersion uint64) error {
	filter := bson.M{
		"_id":     stake.ID,
		"version": expectedVersion,
	}

	res, err := db.collection(model.StakeCollection).ReplaceOne(ctx, filter, stake)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &ConcurrentUpdateError{
			Key:     stake.ID,
			Message: "stake changed since it was read",
		}
	}
	return nil
}

// FindStakesToSettle returns active stakes whose weight was last updated
// before horizon.
func (db *Database) FindStakesToSettle(
	ctx context.Context, poolID string, horizon int64, limit uint64,
) ([]*model.StakeDocument, error) {
	filter := bson.M{
		"pool_id":                 poolID,
		"active":                  true,
		"last_weight_update_time": bson.M{"$lt": horizon},
	}
	opts := options.Find().SetLimit(int64(limit))

	return db.findStakes(ctx, filter, opts)
}

func (db *Database) GetActiveStakes(ctx context.Context, poolID string) ([]*model.StakeDocument, error) {
	return db.findStakes(ctx, bson.M{"pool_id": poolID, "active": true})
}

func (db *Database) GetStakesByPool(ctx context.Context, poolID string) ([]*model.StakeDocument, error) {
	return db.findStakes(ctx, bson.M{"pool_id": poolID})
}

func (db *Database) findStakes(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]*model.StakeDocument, error) {
	cursor, err := db.collection(model.StakeCollection).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stakes []*model.StakeDocument
	if err = cursor.All(ctx, &stakes); err != nil {
		return nil, err
	}
	return stakes, nil
}
