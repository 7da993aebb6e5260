package model

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/nftstake/weight-indexer/internal/accounting"
	"github.com/nftstake/weight-indexer/internal/types"
)

type RateEntryDocument struct {
	EffectiveTime int64  `bson:"effective_time"`
	Rate          string `bson:"rate"`
}

type PoolDocument struct {
	PoolID          string              `bson:"_id"` // Primary key
	StakingStartsAt int64               `bson:"staking_starts_at"`
	StakingEndsAt   int64               `bson:"staking_ends_at"`
	State           types.PoolState     `bson:"state"`
	RewardPerWeight string              `bson:"reward_per_weight"`
	Schedule        []RateEntryDocument `bson:"schedule"`
	CreatedAt       int64               `bson:"created_at"`
	ClosedAt        int64               `bson:"closed_at,omitempty"`
	// Settled is set once every stake has been caught up to the staking end.
	Settled bool `bson:"settled"`
}

func NewRateEntryDocument(e accounting.RateEntry) RateEntryDocument {
	return RateEntryDocument{
		EffectiveTime: e.EffectiveTime,
		Rate:          formatUint(e.Rate),
	}
}

func FromPool(p *accounting.Pool, createdAt int64) *PoolDocument {
	entries := p.Schedule.Entries()
	schedule := make([]RateEntryDocument, len(entries))
	for i, e := range entries {
		schedule[i] = NewRateEntryDocument(e)
	}

	state := types.PoolStateActive
	if !p.Policy.IsActive {
		state = types.PoolStateClosed
	}

	return &PoolDocument{
		PoolID:          p.ID,
		StakingStartsAt: p.Policy.StakingStartsAt,
		StakingEndsAt:   p.Policy.StakingEndsAt,
		State:           state,
		RewardPerWeight: p.RewardPerWeight.String(),
		Schedule:        schedule,
		CreatedAt:       createdAt,
	}
}

// ToPool rebuilds the accounting pool, re-checking the window and schedule
// invariants on the persisted fields.
func (d *PoolDocument) ToPool() (*accounting.Pool, error) {
	rewardPerWeight, err := sdkmath.LegacyNewDecFromStr(d.RewardPerWeight)
	if err != nil {
		return nil, fmt.Errorf("invalid reward per weight of pool %s: %w", d.PoolID, err)
	}

	entries := make([]accounting.RateEntry, len(d.Schedule))
	for i, e := range d.Schedule {
		rate, err := parseUint(e.Rate)
		if err != nil {
			return nil, fmt.Errorf("invalid rate of pool %s at %d: %w", d.PoolID, e.EffectiveTime, err)
		}
		entries[i] = accounting.RateEntry{EffectiveTime: e.EffectiveTime, Rate: rate}
	}

	policy, err := accounting.NewPolicy(d.StakingStartsAt, d.StakingEndsAt)
	if err != nil {
		return nil, fmt.Errorf("pool %s: %w", d.PoolID, err)
	}

	schedule, err := accounting.NewSchedule(d.StakingEndsAt, entries...)
	if err != nil {
		return nil, fmt.Errorf("corrupted schedule of pool %s: %w", d.PoolID, err)
	}
	// the genesis entry is written at staking start
	if len(entries) == 0 {
		return nil, fmt.Errorf("corrupted schedule of pool %s: %w", d.PoolID, accounting.ErrScheduleEmpty)
	}
	if entries[0].EffectiveTime != d.StakingStartsAt {
		return nil, fmt.Errorf("corrupted schedule of pool %s: %w: genesis entry at %d, staking starts at %d",
			d.PoolID, accounting.ErrScheduleOrder, entries[0].EffectiveTime, d.StakingStartsAt)
	}

	state, err := types.PoolStateFromString(d.State.String())
	if err != nil {
		return nil, fmt.Errorf("pool %s: %w", d.PoolID, err)
	}
	policy.IsActive = state == types.PoolStateActive

	return &accounting.Pool{
		ID:              d.PoolID,
		Policy:          policy,
		Schedule:        schedule,
		RewardPerWeight: rewardPerWeight,
	}, nil
}
