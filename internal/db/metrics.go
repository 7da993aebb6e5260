package db

import (
	"context"
	"time"

	"github.com/nftstake/weight-indexer/internal/db/model"
	"github.com/nftstake/weight-indexer/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) SaveNewPool(ctx context.Context, pool *model.PoolDocument) error {
	return d.run("SaveNewPool", func() error {
		return d.db.SaveNewPool(ctx, pool)
	})
}

func (d *DbWithMetrics) GetPool(ctx context.Context, poolID string) (result *model.PoolDocument, err error) {
	//nolint:errcheck
	d.run("GetPool", func() error {
		result, err = d.db.GetPool(ctx, poolID)
		return err
	})
	return
}

func (d *DbWithMetrics) AppendRateEntry(ctx context.Context, poolID string, expectedLen int, entry model.RateEntryDocument) error {
	return d.run("AppendRateEntry", func() error {
		return d.db.AppendRateEntry(ctx, poolID, expectedLen, entry)
	})
}

func (d *DbWithMetrics) ClosePool(ctx context.Context, poolID string, closedAt int64) error {
	return d.run("ClosePool", func() error {
		return d.db.ClosePool(ctx, poolID, closedAt)
	})
}

func (d *DbWithMetrics) FindUnsettledEndedPools(ctx context.Context, now int64, limit uint64) (result []*model.PoolDocument, err error) {
	//nolint:errcheck
	d.run("FindUnsettledEndedPools", func() error {
		result, err = d.db.FindUnsettledEndedPools(ctx, now, limit)
		return err
	})
	return
}

func (d *DbWithMetrics) MarkPoolSettled(ctx context.Context, poolID string) error {
	return d.run("MarkPoolSettled", func() error {
		return d.db.MarkPoolSettled(ctx, poolID)
	})
}

func (d *DbWithMetrics) SaveNewStake(ctx context.Context, stake *model.StakeDocument) error {
	return d.run("SaveNewStake", func() error {
		return d.db.SaveNewStake(ctx, stake)
	})
}

func (d *DbWithMetrics) GetActiveStake(ctx context.Context, poolID, assetID string) (result *model.StakeDocument, err error) {
	//nolint:errcheck
	d.run("GetActiveStake", func() error {
		result, err = d.db.GetActiveStake(ctx, poolID, assetID)
		return err
	})
	return
}

func (d *DbWithMetrics) UpdateStake(ctx context.Context, stake *model.StakeDocument, expectedVersion uint64) error {
	return d.run("UpdateStake", func() error {
		return d.db.UpdateStake(ctx, stake, expectedVersion)
	})
}

func (d *DbWithMetrics) FindStakesToSettle(ctx context.Context, poolID string, horizon int64, limit uint64) (result []*model.StakeDocument, err error) {
	//nolint:errcheck
	d.run("FindStakesToSettle", func() error {
		result, err = d.db.FindStakesToSettle(ctx, poolID, horizon, limit)
		return err
	})
	return
}

func (d *DbWithMetrics) GetActiveStakes(ctx context.Context, poolID string) (result []*model.StakeDocument, err error) {
	//nolint:errcheck
	d.run("GetActiveStakes", func() error {
		result, err = d.db.GetActiveStakes(ctx, poolID)
		return err
	})
	return
}

func (d *DbWithMetrics) GetStakesByPool(ctx context.Context, poolID string) (result []*model.StakeDocument, err error) {
	//nolint:errcheck
	d.run("GetStakesByPool", func() error {
		result, err = d.db.GetStakesByPool(ctx, poolID)
		return err
	})
	return
}

// run is private method that executes passed lambda function and send metrics data with spent time, method name
// and an error if any. It returns the error from the lambda function for convenience
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
