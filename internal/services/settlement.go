package services

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/nftstake/weight-indexer/internal/accounting"
	"github.com/nftstake/weight-indexer/internal/db"
	"github.com/nftstake/weight-indexer/internal/db/model"
	"github.com/nftstake/weight-indexer/internal/observability/metrics"
)

// SettleEndedPools catches every stake of pools whose staking window has
// ended up to the staking end, then marks the pool settled.
func (s *Service) SettleEndedPools(ctx context.Context) error {
	now := s.clock.Now()
	pools, err := s.db.FindUnsettledEndedPools(ctx, now, s.cfg.Poller.SettlementBatchSize)
	if err != nil {
		return fmt.Errorf("failed to find ended pools: %w", err)
	}

	for _, doc := range pools {
		if err := s.settlePool(ctx, doc); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("pool_id", doc.PoolID).Msg("failed to settle pool")
			continue
		}
	}
	return nil
}

func (s *Service) settlePool(ctx context.Context, doc *model.PoolDocument) error {
	acc, err := doc.ToPool()
	if err != nil {
		return err
	}

	for {
		stakes, err := s.db.FindStakesToSettle(ctx, doc.PoolID, doc.StakingEndsAt, s.cfg.Poller.SettlementBatchSize)
		if err != nil {
			return fmt.Errorf("failed to find stakes to settle: %w", err)
		}
		if len(stakes) == 0 {
			break
		}

		settled, err := s.settleStakes(ctx, acc, stakes, doc.StakingEndsAt)
		if err != nil {
			return err
		}
		// every stake of the batch lost a race, leave the rest to the next tick
		if settled == 0 {
			return nil
		}
	}

	if err := s.db.MarkPoolSettled(ctx, doc.PoolID); err != nil {
		return fmt.Errorf("failed to mark pool settled: %w", err)
	}
	log.Ctx(ctx).Info().Str("pool_id", doc.PoolID).Msg("pool settled")
	return nil
}

// settleActiveStakes catches every active stake of the pool up to now.
func (s *Service) settleActiveStakes(ctx context.Context, doc *model.PoolDocument, now int64) error {
	acc, err := doc.ToPool()
	if err != nil {
		return err
	}
	stakes, err := s.db.GetActiveStakes(ctx, doc.PoolID)
	if err != nil {
		return err
	}
	_, err = s.settleStakes(ctx, acc, stakes, now)
	return err
}

// settleStakes settles the stakes with bounded parallelism. A stake changed
// concurrently is skipped since its writer already caught it up.
func (s *Service) settleStakes(
	ctx context.Context, acc *accounting.Pool, stakes []*model.StakeDocument, now int64,
) (int, error) {
	var settled atomic.Int64
	p := pool.New().
		WithContext(ctx).
		WithMaxGoroutines(s.cfg.Poller.SettlementConcurrency)

	for _, doc := range stakes {
		p.Go(func(ctx context.Context) error {
			record, err := doc.ToStakeRecord()
			if err != nil {
				return err
			}
			out, err := acc.Settle(record, now)
			if err != nil {
				return fmt.Errorf("failed to settle stake %s: %w", doc.ID, err)
			}
			if out.Delta.IsZero() && record.LastWeightUpdateTime == doc.LastWeightUpdateTime {
				metrics.IncZeroElapsedUpdate(opSettle)
				return nil
			}

			err = s.db.UpdateStake(ctx, model.FromStakeRecord(doc.ID, record, doc.Version+1), doc.Version)
			if db.IsConcurrentUpdateError(err) {
				metrics.IncConcurrentUpdateRetry(opSettle)
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to save settled stake %s: %w", doc.ID, err)
			}
			settled.Add(1)
			return nil
		})
	}

	err := p.Wait()
	metrics.AddSettledStakes(int(settled.Load()))
	return int(settled.Load()), err
}
