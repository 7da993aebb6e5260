package services

import (
	"github.com/nftstake/weight-indexer/internal/accounting"
	"github.com/nftstake/weight-indexer/internal/db/model"
	"github.com/nftstake/weight-indexer/internal/types"
)

type RateEntryView struct {
	EffectiveTime int64  `json:"effective_time"`
	Rate          uint64 `json:"rate,string"`
}

type PoolView struct {
	PoolID          string          `json:"pool_id"`
	StakingStartsAt int64           `json:"staking_starts_at"`
	StakingEndsAt   int64           `json:"staking_ends_at"`
	State           types.PoolState `json:"state"`
	RewardPerWeight string          `json:"reward_per_weight"`
	// CurrentRate is the rate in force at the time of the request.
	CurrentRate uint64          `json:"current_rate,string"`
	Schedule    []RateEntryView `json:"schedule"`
	Settled     bool            `json:"settled"`
}

type StakeView struct {
	PoolID               string           `json:"pool_id"`
	AssetID              string           `json:"asset_id"`
	Owner                string           `json:"owner"`
	State                types.StakeState `json:"state"`
	StakeTime            int64            `json:"stake_time"`
	AccumulatedWeight    uint64           `json:"accumulated_weight,string"`
	WithdrawnWeight      uint64           `json:"withdrawn_weight,string"`
	LastWeightUpdateTime int64            `json:"last_weight_update_time"`
	// PendingWeight is accrued since the last update but not yet recorded.
	PendingWeight uint64 `json:"pending_weight,string"`
	UnstakedAt    int64  `json:"unstaked_at,omitempty"`
}

// OperationResult is returned by operations that release weight for payout.
type OperationResult struct {
	Stake         *StakeView `json:"stake"`
	WeightDelta   uint64     `json:"weight_delta,string"`
	MeanRate      uint64     `json:"mean_rate,string"`
	PaidWeight    uint64     `json:"paid_weight,string"`
	PayableReward string     `json:"payable_reward"`
}

type PoolWeightView struct {
	PoolID string `json:"pool_id"`
	// TotalWeight sums the recorded weight of every stake of the pool.
	TotalWeight uint64 `json:"total_weight,string"`
	// ProjectedWeight adds the weight active stakes accrued up to now.
	ProjectedWeight uint64           `json:"projected_weight,string"`
	ActiveStakes    int              `json:"active_stakes"`
	TotalStakes     int              `json:"total_stakes"`
	AsOf            int64            `json:"as_of"`
	Shares          []StakeShareView `json:"shares"`
}

type StakeShareView struct {
	AssetID string `json:"asset_id"`
	Owner   string `json:"owner"`
	Weight  uint64 `json:"weight,string"`
	// Share of the projected pool weight, as a decimal.
	Share string `json:"share"`
}

func newPoolView(doc *model.PoolDocument, pool *accounting.Pool, now int64) *PoolView {
	entries := pool.Schedule.Entries()
	schedule := make([]RateEntryView, len(entries))
	for i, e := range entries {
		schedule[i] = RateEntryView{EffectiveTime: e.EffectiveTime, Rate: e.Rate}
	}

	// zero before the staking start
	currentRate, _ := pool.Schedule.RateAt(now)

	return &PoolView{
		PoolID:          pool.ID,
		StakingStartsAt: pool.Policy.StakingStartsAt,
		StakingEndsAt:   pool.Policy.StakingEndsAt,
		State:           doc.State,
		RewardPerWeight: pool.RewardPerWeight.String(),
		CurrentRate:     currentRate,
		Schedule:        schedule,
		Settled:         doc.Settled,
	}
}

func newStakeView(r *accounting.StakeRecord, pending uint64) *StakeView {
	return &StakeView{
		PoolID:               r.PoolID,
		AssetID:              r.AssetID,
		Owner:                r.Owner,
		State:                types.StakeStateFromActive(r.Active),
		StakeTime:            r.StakeTime,
		AccumulatedWeight:    r.AccumulatedWeight,
		WithdrawnWeight:      r.WithdrawnWeight,
		LastWeightUpdateTime: r.LastWeightUpdateTime,
		PendingWeight:        pending,
		UnstakedAt:           r.UnstakedAt,
	}
}

func newOperationResult(pool *accounting.Pool, r *accounting.StakeRecord, out accounting.Outcome) *OperationResult {
	return &OperationResult{
		Stake:         newStakeView(r, 0),
		WeightDelta:   out.Delta.Weight,
		MeanRate:      out.Delta.MeanRate,
		PaidWeight:    out.PaidWeight,
		PayableReward: pool.Payable(out.PaidWeight).String(),
	}
}
