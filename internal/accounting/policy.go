package accounting

import "fmt"

// Policy gates operations on a pool: the staking window
// [StakingStartsAt, StakingEndsAt) and the explicit active flag.
type Policy struct {
	StakingStartsAt int64
	StakingEndsAt   int64
	IsActive        bool
}

func NewPolicy(startsAt, endsAt int64) (Policy, error) {
	if startsAt >= endsAt {
		return Policy{}, fmt.Errorf("%w: staking starts at %d, ends at %d", ErrInvalidPool, startsAt, endsAt)
	}
	return Policy{
		StakingStartsAt: startsAt,
		StakingEndsAt:   endsAt,
		IsActive:        true,
	}, nil
}

// InWindow reports whether t lies in the half-open staking window.
func (p Policy) InWindow(t int64) bool {
	return t >= p.StakingStartsAt && t < p.StakingEndsAt
}

// CheckStake admits a new stake at currentTime.
func (p Policy) CheckStake(currentTime int64) error {
	if !p.IsActive {
		return fmt.Errorf("%w: pool is closed", ErrStakingNotActive)
	}
	if !p.InWindow(currentTime) {
		return fmt.Errorf("%w: time %d outside staking window [%d, %d)",
			ErrStakingNotActive, currentTime, p.StakingStartsAt, p.StakingEndsAt)
	}
	return nil
}

// RequestRateChange admits a rate change at currentTime. A change at
// exactly the staking end is rejected.
func (p Policy) RequestRateChange(currentTime int64) error {
	if !p.IsActive {
		return fmt.Errorf("%w: pool is closed", ErrStakingNotActive)
	}
	if currentTime >= p.StakingEndsAt {
		return fmt.Errorf("%w: rate change at %d, staking ends at %d",
			ErrStakingWindowClosed, currentTime, p.StakingEndsAt)
	}
	if currentTime < p.StakingStartsAt {
		return fmt.Errorf("%w: rate change at %d, staking starts at %d",
			ErrStakingWindowClosed, currentTime, p.StakingStartsAt)
	}
	return nil
}

// Close deactivates the pool. Time-based expiry is independent of it.
func (p *Policy) Close() error {
	if !p.IsActive {
		return fmt.Errorf("%w: pool already closed", ErrStakingNotActive)
	}
	p.IsActive = false
	return nil
}
