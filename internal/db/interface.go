package db

import (
	"context"

	"github.com/nftstake/weight-indexer/internal/db/model"
)

//go:generate mockery --name=DbInterface --output=../../tests/mocks --outpkg=mocks --filename=mock_db_client.go
type DbInterface interface {
	Ping(ctx context.Context) error

	SaveNewPool(ctx context.Context, pool *model.PoolDocument) error
	GetPool(ctx context.Context, poolID string) (*model.PoolDocument, error)
	// AppendRateEntry pushes a schedule entry if the schedule still has
	// expectedLen entries.
	AppendRateEntry(ctx context.Context, poolID string, expectedLen int, entry model.RateEntryDocument) error
	ClosePool(ctx context.Context, poolID string, closedAt int64) error
	FindUnsettledEndedPools(ctx context.Context, now int64, limit uint64) ([]*model.PoolDocument, error)
	MarkPoolSettled(ctx context.Context, poolID string) error

	SaveNewStake(ctx context.Context, stake *model.StakeDocument) error
	GetActiveStake(ctx context.Context, poolID, assetID string) (*model.StakeDocument, error)
	// UpdateStake replaces the stake if its version is still expectedVersion.
	UpdateStake(ctx context.Context, stake *model.StakeDocument, expectedVersion uint64) error
	FindStakesToSettle(ctx context.Context, poolID string, horizon int64, limit uint64) ([]*model.StakeDocument, error)
	GetActiveStakes(ctx context.Context, poolID string) ([]*model.StakeDocument, error)
	GetStakesByPool(ctx context.Context, poolID string) ([]*model.StakeDocument, error)
}
