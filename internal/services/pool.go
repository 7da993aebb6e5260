package services

import (
	"context"
	"fmt"
	"net/http"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog/log"

	"github.com/nftstake/weight-indexer/internal/accounting"
	"github.com/nftstake/weight-indexer/internal/db/model"
	"github.com/nftstake/weight-indexer/internal/types"
)

type CreatePoolRequest struct {
	PoolID          string `json:"pool_id"`
	StakingStartsAt int64  `json:"staking_starts_at"`
	StakingEndsAt   int64  `json:"staking_ends_at"`
	GenesisRate     uint64 `json:"genesis_rate,string"`
	RewardPerWeight string `json:"reward_per_weight"`
	// ScheduledRates are planned rate changes appended after the genesis
	// entry, in order.
	ScheduledRates []RateEntryView `json:"scheduled_rates,omitempty"`
}

func (s *Service) CreatePool(ctx context.Context, req *CreatePoolRequest) (*PoolView, *types.Error) {
	var view *PoolView
	apiErr := s.withRetry(ctx, opCreatePool, func() error {
		if err := validateID("pool_id", req.PoolID); err != nil {
			return err
		}
		rewardPerWeight, err := sdkmath.LegacyNewDecFromStr(req.RewardPerWeight)
		if err != nil {
			return types.NewErrorWithMsg(
				http.StatusBadRequest, types.ValidationError,
				fmt.Sprintf("invalid reward_per_weight %q", req.RewardPerWeight),
			)
		}

		pool, err := accounting.NewPool(
			req.PoolID, req.StakingStartsAt, req.StakingEndsAt, req.GenesisRate, rewardPerWeight,
		)
		if err != nil {
			return err
		}
		for _, e := range req.ScheduledRates {
			if err := pool.Schedule.Append(e.EffectiveTime, e.Rate, pool.Policy.StakingEndsAt); err != nil {
				return fmt.Errorf("invalid scheduled rate at %d: %w", e.EffectiveTime, err)
			}
		}

		now := s.clock.Now()
		doc := model.FromPool(pool, now)
		if err := s.db.SaveNewPool(ctx, doc); err != nil {
			return err
		}
		view = newPoolView(doc, pool, now)
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}

	log.Ctx(ctx).Info().
		Str("pool_id", view.PoolID).
		Int64("staking_starts_at", view.StakingStartsAt).
		Int64("staking_ends_at", view.StakingEndsAt).
		Msg("pool created")
	return view, nil
}

func (s *Service) GetPool(ctx context.Context, poolID string) (*PoolView, *types.Error) {
	doc, pool, err := s.loadPool(ctx, poolID)
	if err != nil {
		return nil, toError(err)
	}
	return newPoolView(doc, pool, s.clock.Now()), nil
}

// ChangeRate appends a rate entry effective now. Stakes are not touched,
// weight is integrated per schedule segment, unless the accounting config
// asks to checkpoint active stakes once the entry is committed.
func (s *Service) ChangeRate(ctx context.Context, poolID string, rate uint64) (*PoolView, *types.Error) {
	var (
		view      *PoolView
		committed *model.PoolDocument
		now       int64
	)
	apiErr := s.withRetry(ctx, opChangeRate, func() error {
		doc, pool, err := s.loadPool(ctx, poolID)
		if err != nil {
			return err
		}

		now = s.clock.Now()
		expectedLen := pool.Schedule.Len()
		if err := pool.ChangeRate(now, rate); err != nil {
			return err
		}

		entry := model.NewRateEntryDocument(accounting.RateEntry{EffectiveTime: now, Rate: rate})
		if err := s.db.AppendRateEntry(ctx, poolID, expectedLen, entry); err != nil {
			return err
		}
		doc.Schedule = append(doc.Schedule, entry)
		committed = doc
		view = newPoolView(doc, pool, now)
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}

	// The new segment starts at now and adds nothing to the catch-up.
	if s.cfg.Accounting.SettleOnRateChange {
		if err := s.settleActiveStakes(ctx, committed, now); err != nil {
			log.Ctx(ctx).Warn().Err(err).
				Str("pool_id", poolID).
				Msg("failed to checkpoint active stakes after rate change")
		}
	}

	log.Ctx(ctx).Info().
		Str("pool_id", poolID).
		Uint64("rate", rate).
		Msg("reward rate changed")
	return view, nil
}

// ClosePool deactivates the pool. Existing stakes keep accruing until the
// staking end and can still be unstaked.
func (s *Service) ClosePool(ctx context.Context, poolID string) (*PoolView, *types.Error) {
	var view *PoolView
	apiErr := s.withRetry(ctx, opClosePool, func() error {
		doc, pool, err := s.loadPool(ctx, poolID)
		if err != nil {
			return err
		}
		if err := pool.Close(); err != nil {
			return err
		}

		now := s.clock.Now()
		if err := s.db.ClosePool(ctx, poolID, now); err != nil {
			return err
		}
		doc.State = types.PoolStateClosed
		doc.ClosedAt = now
		view = newPoolView(doc, pool, now)
		return nil
	})
	if apiErr != nil {
		return nil, apiErr
	}

	log.Ctx(ctx).Info().Str("pool_id", poolID).Msg("pool closed")
	return view, nil
}

// PoolWeight aggregates the weight of every stake of the pool and projects
// the share each active stake holds as of now.
func (s *Service) PoolWeight(ctx context.Context, poolID string) (*PoolWeightView, *types.Error) {
	_, pool, err := s.loadPool(ctx, poolID)
	if err != nil {
		return nil, toError(err)
	}

	docs, err := s.db.GetStakesByPool(ctx, poolID)
	if err != nil {
		return nil, toError(err)
	}

	now := s.clock.Now()
	records := make([]*accounting.StakeRecord, 0, len(docs))
	var shares []StakeShareView
	var projected uint64
	for _, doc := range docs {
		record, err := doc.ToStakeRecord()
		if err != nil {
			return nil, types.NewInternalServiceError(err)
		}
		records = append(records, record)

		weight := record.AccumulatedWeight
		if record.Active {
			delta, err := s.pendingDelta(pool, record, now)
			if err != nil {
				return nil, toError(err)
			}
			if weight, err = accounting.AddWeight(weight, delta.Weight); err != nil {
				return nil, toError(err)
			}
			shares = append(shares, StakeShareView{AssetID: record.AssetID, Owner: record.Owner, Weight: weight})
		}
		if projected, err = accounting.AddWeight(projected, weight); err != nil {
			return nil, toError(err)
		}
	}

	total, err := accounting.TotalWeight(records)
	if err != nil {
		return nil, toError(err)
	}
	for i := range shares {
		shares[i].Share = accounting.ShareOf(shares[i].Weight, projected).String()
	}

	return &PoolWeightView{
		PoolID:          poolID,
		TotalWeight:     total,
		ProjectedWeight: projected,
		ActiveStakes:    len(shares),
		TotalStakes:     len(records),
		AsOf:            now,
		Shares:          shares,
	}, nil
}

func (s *Service) loadPool(ctx context.Context, poolID string) (*model.PoolDocument, *accounting.Pool, error) {
	if err := validateID("pool_id", poolID); err != nil {
		return nil, nil, err
	}
	doc, err := s.db.GetPool(ctx, poolID)
	if err != nil {
		return nil, nil, err
	}
	pool, err := doc.ToPool()
	if err != nil {
		return nil, nil, types.NewInternalServiceError(err)
	}
	return doc, pool, nil
}

// pendingDelta is the weight an active stake accrued since its last update,
// without changing the record.
func (s *Service) pendingDelta(pool *accounting.Pool, r *accounting.StakeRecord, now int64) (accounting.Delta, error) {
	return accounting.ComputeDelta(
		r.StakeTime, r.LastWeightUpdateTime, now, pool.Schedule, pool.Policy.StakingEndsAt,
	)
}
