package accounting

import "fmt"

// StakeRecord is the per-asset accounting state.
type StakeRecord struct {
	PoolID  string
	Owner   string
	AssetID string

	StakeTime            int64
	AccumulatedWeight    uint64
	WithdrawnWeight      uint64
	LastWeightUpdateTime int64
	Active               bool
	UnstakedAt           int64
}

// Outcome describes an applied weight update.
type Outcome struct {
	Delta Delta
	// PaidWeight is the weight released for payout by this operation.
	PaidWeight uint64
}

// Stake creates a record for an asset deposited at currentTime.
func Stake(policy Policy, poolID, owner, assetID string, currentTime int64) (*StakeRecord, error) {
	if err := policy.CheckStake(currentTime); err != nil {
		return nil, err
	}
	return &StakeRecord{
		PoolID:               poolID,
		Owner:                owner,
		AssetID:              assetID,
		StakeTime:            currentTime,
		LastWeightUpdateTime: currentTime,
		Active:               true,
	}, nil
}

// UnwithdrawnWeight is the accumulated weight not yet paid out.
func (r *StakeRecord) UnwithdrawnWeight() uint64 {
	if r.WithdrawnWeight > r.AccumulatedWeight {
		return 0
	}
	return r.AccumulatedWeight - r.WithdrawnWeight
}

// Unstake catches the weight up to the horizon, releases all unwithdrawn
// weight for payout and deactivates the record. It cannot fail on a zero
// elapsed time, so a staked asset can always be redeemed.
func Unstake(r *StakeRecord, currentTime int64, schedule *Schedule, stakingEndsAt int64) (Outcome, error) {
	next, out, err := prepareUpdate(r, currentTime, schedule, stakingEndsAt, true)
	if err != nil {
		return Outcome{}, err
	}
	next.Active = false
	next.UnstakedAt = currentTime
	*r = next
	return out, nil
}

// WithdrawReward catches the weight up and releases it for payout while
// the asset stays staked.
func WithdrawReward(r *StakeRecord, currentTime int64, schedule *Schedule, stakingEndsAt int64) (Outcome, error) {
	next, out, err := prepareUpdate(r, currentTime, schedule, stakingEndsAt, true)
	if err != nil {
		return Outcome{}, err
	}
	*r = next
	return out, nil
}

// Settle catches the weight up without paying anything out.
func Settle(r *StakeRecord, currentTime int64, schedule *Schedule, stakingEndsAt int64) (Outcome, error) {
	next, out, err := prepareUpdate(r, currentTime, schedule, stakingEndsAt, false)
	if err != nil {
		return Outcome{}, err
	}
	*r = next
	return out, nil
}

// prepareUpdate computes the next record state on a copy; the caller
// assigns it only when everything succeeded.
func prepareUpdate(r *StakeRecord, currentTime int64, schedule *Schedule, stakingEndsAt int64, payout bool) (StakeRecord, Outcome, error) {
	if r == nil || !r.Active {
		return StakeRecord{}, Outcome{}, ErrNothingStaked
	}

	delta, err := ComputeDelta(r.StakeTime, r.LastWeightUpdateTime, currentTime, schedule, stakingEndsAt)
	if err != nil {
		return StakeRecord{}, Outcome{}, fmt.Errorf("failed to compute weight for asset %s: %w", r.AssetID, err)
	}

	next := *r
	next.AccumulatedWeight, err = checkedAdd(r.AccumulatedWeight, delta.Weight)
	if err != nil {
		return StakeRecord{}, Outcome{}, fmt.Errorf("failed to accumulate weight for asset %s: %w", r.AssetID, err)
	}
	next.LastWeightUpdateTime = delta.Horizon

	out := Outcome{Delta: delta}
	if payout {
		out.PaidWeight, err = checkedSub(next.AccumulatedWeight, next.WithdrawnWeight)
		if err != nil {
			return StakeRecord{}, Outcome{}, err
		}
		next.WithdrawnWeight = next.AccumulatedWeight
	}
	return next, out, nil
}
