package accounting

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// Pool owns its policy and reward schedule. Stakes are referenced, not
// owned, by pool-level aggregation.
type Pool struct {
	ID              string
	Policy          Policy
	Schedule        *Schedule
	RewardPerWeight sdkmath.LegacyDec
}

// NewPool creates a pool with its mandatory genesis rate at the staking
// start.
func NewPool(id string, startsAt, endsAt int64, genesisRate uint64, rewardPerWeight sdkmath.LegacyDec) (*Pool, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty pool id", ErrInvalidPool)
	}
	if rewardPerWeight.IsNil() || rewardPerWeight.IsNegative() {
		return nil, fmt.Errorf("%w: reward per weight must be non-negative", ErrInvalidPool)
	}
	policy, err := NewPolicy(startsAt, endsAt)
	if err != nil {
		return nil, err
	}
	schedule, err := NewSchedule(endsAt, RateEntry{EffectiveTime: startsAt, Rate: genesisRate})
	if err != nil {
		return nil, err
	}
	return &Pool{
		ID:              id,
		Policy:          policy,
		Schedule:        schedule,
		RewardPerWeight: rewardPerWeight,
	}, nil
}

// ChangeRate admits and appends a rate change effective at currentTime.
func (p *Pool) ChangeRate(currentTime int64, rate uint64) error {
	if err := p.Policy.RequestRateChange(currentTime); err != nil {
		return err
	}
	return p.Schedule.Append(currentTime, rate, p.Policy.StakingEndsAt)
}

func (p *Pool) Close() error {
	return p.Policy.Close()
}

func (p *Pool) Stake(owner, assetID string, currentTime int64) (*StakeRecord, error) {
	return Stake(p.Policy, p.ID, owner, assetID, currentTime)
}

// Unstake is allowed on closed pools and after the staking end.
func (p *Pool) Unstake(r *StakeRecord, currentTime int64) (Outcome, error) {
	return Unstake(r, currentTime, p.Schedule, p.Policy.StakingEndsAt)
}

func (p *Pool) WithdrawReward(r *StakeRecord, currentTime int64) (Outcome, error) {
	return WithdrawReward(r, currentTime, p.Schedule, p.Policy.StakingEndsAt)
}

func (p *Pool) Settle(r *StakeRecord, currentTime int64) (Outcome, error) {
	return Settle(r, currentTime, p.Schedule, p.Policy.StakingEndsAt)
}

// Payable converts weight to reward tokens for this pool.
func (p *Pool) Payable(weight uint64) sdkmath.Int {
	return Payable(weight, p.RewardPerWeight)
}
