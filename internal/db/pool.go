package db

import (
	"context"
	"errors"

	"github.com/nftstake/weight-indexer/internal/db/model"
	"github.com/nftstake/weight-indexer/internal/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (db *Database) SaveNewPool(ctx context.Context, pool *model.PoolDocument) error {
	_, err := db.collection(model.PoolCollection).InsertOne(ctx, pool)
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     pool.PoolID,
						Message: "pool already exists",
					}
				}
			}
		}
		return err
	}
	return nil
}

func (db *Database) GetPool(ctx context.Context, poolID string) (*model.PoolDocument, error) {
	var pool model.PoolDocument
	err := db.collection(model.PoolCollection).
		FindOne(ctx, bson.M{"_id": poolID}).
		Decode(&pool)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     poolID,
				Message: "pool not found",
			}
		}
		return nil, err
	}
	return &pool, nil
}

func (db *Database) AppendRateEntry(
	ctx context.Context, poolID string, expectedLen int, entry model.RateEntryDocument,
) error {
	filter := bson.M{
		"_id":      poolID,
		"state":    types.PoolStateActive.String(),
		"schedule": bson.M{"$size": expectedLen},
	}
	update := bson.M{
		"$push": bson.M{"schedule": entry},
	}

	res, err := db.collection(model.PoolCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &ConcurrentUpdateError{
			Key:     poolID,
			Message: "pool schedule changed or pool closed while appending rate entry",
		}
	}
	return nil
}

func (db *Database) ClosePool(ctx context.Context, poolID string, closedAt int64) error {
	filter := bson.M{
		"_id":   poolID,
		"state": types.PoolStateActive.String(),
	}
	update := bson.M{
		"$set": bson.M{
			"state":     types.PoolStateClosed.String(),
			"closed_at": closedAt,
		},
	}

	res, err := db.collection(model.PoolCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &ConcurrentUpdateError{
			Key:     poolID,
			Message: "pool not found or already closed",
		}
	}
	return nil
}

func (db *Database) FindUnsettledEndedPools(ctx context.Context, now int64, limit uint64) ([]*model.PoolDocument, error) {
	filter := bson.M{
		"settled":         false,
		"staking_ends_at": bson.M{"$lte": now},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "staking_ends_at", Value: 1}}).
		SetLimit(int64(limit))

	cursor, err := db.collection(model.PoolCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var pools []*model.PoolDocument
	if err = cursor.All(ctx, &pools); err != nil {
		return nil, err
	}
	return pools, nil
}

func (db *Database) MarkPoolSettled(ctx context.Context, poolID string) error {
	res, err := db.collection(model.PoolCollection).UpdateOne(
		ctx,
		bson.M{"_id": poolID},
		bson.M{"$set": bson.M{"settled": true}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{
			Key:     poolID,
			Message: "pool not found when marking settled",
		}
	}
	return nil
}
