package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/nftstake/weight-indexer/internal/accounting"
	"github.com/nftstake/weight-indexer/internal/custody"
	"github.com/nftstake/weight-indexer/internal/db"
	"github.com/nftstake/weight-indexer/internal/db/model"
	"github.com/nftstake/weight-indexer/internal/types"
)

type StakeRequest struct {
	Owner   string `json:"owner"`
	AssetID string `json:"asset_id"`
}

// Stake records an asset deposited into the pool. The caller is trusted to
// have authorized the deposit.
func (s *Service) Stake(ctx context.Context, poolID string, req *StakeRequest) (*StakeView, *types.Error) {
	var view *StakeView
	apiErr := s.withRetry(ctx, opStake, func() error {
		if err := validateID("owner", req.Owner); err != nil {
			return err
		}
		if err := validateID("asset_id", req.AssetID); err != nil {
			return err
		}
		_, pool, err := s.loadPool(ctx, poolID)
		if err != nil {
			return err
		}

		record, err := pool.Stake(req.Owner, req.AssetID, s.clock.Now())
		if err != nil {
			return err
		}
		if err := s.db.SaveNewStake(ctx, model.FromStakeRecord(uuid.NewString(), record, 0)); err != nil {
			return err
		}
		view = newStakeView(record, 0)
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}

	s.notify(ctx, &custody.Signal{
		EventType:  types.EventAssetReceived,
		PoolID:     view.PoolID,
		AssetID:    view.AssetID,
		Owner:      view.Owner,
		OccurredAt: view.StakeTime,
	})
	log.Ctx(ctx).Info().
		Str("pool_id", view.PoolID).
		Str("asset_id", view.AssetID).
		Str("owner", view.Owner).
		Msg("asset staked")
	return view, nil
}

// GetStake returns the active stake of an asset, with the weight accrued
// since its last update.
func (s *Service) GetStake(ctx context.Context, poolID, assetID string) (*StakeView, *types.Error) {
	_, pool, err := s.loadPool(ctx, poolID)
	if err != nil {
		return nil, toError(err)
	}
	_, record, err := s.loadStake(ctx, poolID, assetID)
	if err != nil {
		return nil, toError(err)
	}
	delta, err := s.pendingDelta(pool, record, s.clock.Now())
	if err != nil {
		return nil, toError(err)
	}
	return newStakeView(record, delta.Weight), nil
}

// Unstake finalises the weight of the asset, releases it for payout and
// signals custody to return the asset to its owner.
func (s *Service) Unstake(ctx context.Context, poolID, assetID string) (*OperationResult, *types.Error) {
	result, apiErr := s.updateStake(ctx, opUnstake, poolID, assetID, func(p *accounting.Pool, r *accounting.StakeRecord, now int64) (accounting.Outcome, error) {
		return p.Unstake(r, now)
	})
	if apiErr != nil {
		return nil, apiErr
	}

	s.notify(ctx, &custody.Signal{
		EventType:     types.EventReleaseAsset,
		PoolID:        poolID,
		AssetID:       assetID,
		Owner:         result.Stake.Owner,
		PaidWeight:    result.PaidWeight,
		PayableReward: result.PayableReward,
		OccurredAt:    result.Stake.UnstakedAt,
	})
	log.Ctx(ctx).Info().
		Str("pool_id", poolID).
		Str("asset_id", assetID).
		Uint64("paid_weight", result.PaidWeight).
		Msg("asset unstaked")
	return result, nil
}

// WithdrawReward releases the weight accumulated so far for payout while
// the asset stays staked.
func (s *Service) WithdrawReward(ctx context.Context, poolID, assetID string) (*OperationResult, *types.Error) {
	result, apiErr := s.updateStake(ctx, opWithdrawReward, poolID, assetID, func(p *accounting.Pool, r *accounting.StakeRecord, now int64) (accounting.Outcome, error) {
		return p.WithdrawReward(r, now)
	})
	if apiErr != nil {
		return nil, apiErr
	}

	if result.PaidWeight > 0 {
		s.notify(ctx, &custody.Signal{
			EventType:     types.EventRewardWithdraw,
			PoolID:        poolID,
			AssetID:       assetID,
			Owner:         result.Stake.Owner,
			PaidWeight:    result.PaidWeight,
			PayableReward: result.PayableReward,
			OccurredAt:    result.Stake.LastWeightUpdateTime,
		})
	}
	log.Ctx(ctx).Info().
		Str("pool_id", poolID).
		Str("asset_id", assetID).
		Uint64("paid_weight", result.PaidWeight).
		Msg("reward withdrawn")
	return result, nil
}

type stakeTransition func(p *accounting.Pool, r *accounting.StakeRecord, now int64) (accounting.Outcome, error)

// updateStake loads the pool and stake, applies the transition on the
// in-memory record and writes it back guarded by the record version.
func (s *Service) updateStake(
	ctx context.Context, operation, poolID, assetID string, transition stakeTransition,
) (*OperationResult, *types.Error) {
	var result *OperationResult
	apiErr := s.withRetry(ctx, operation, func() error {
		_, pool, err := s.loadPool(ctx, poolID)
		if err != nil {
			return err
		}
		doc, record, err := s.loadStake(ctx, poolID, assetID)
		if err != nil {
			return err
		}

		out, err := transition(pool, record, s.clock.Now())
		if err != nil {
			return err
		}
		if err := s.db.UpdateStake(ctx, model.FromStakeRecord(doc.ID, record, doc.Version+1), doc.Version); err != nil {
			return err
		}
		recordZeroElapsed(operation, out)
		result = newOperationResult(pool, record, out)
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}
	return result, nil
}

// loadStake returns the active stake of the asset. An asset without one
// has nothing staked.
func (s *Service) loadStake(ctx context.Context, poolID, assetID string) (*model.StakeDocument, *accounting.StakeRecord, error) {
	if err := validateID("asset_id", assetID); err != nil {
		return nil, nil, err
	}
	doc, err := s.db.GetActiveStake(ctx, poolID, assetID)
	if err != nil {
		if db.IsNotFoundError(err) {
			return nil, nil, fmt.Errorf("%w: asset %s in pool %s", accounting.ErrNothingStaked, assetID, poolID)
		}
		return nil, nil, err
	}
	record, err := doc.ToStakeRecord()
	if err != nil {
		return nil, nil, types.NewInternalServiceError(err)
	}
	return doc, record, nil
}
