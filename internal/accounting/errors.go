package accounting

import "errors"

// Error kinds returned by the accounting core. Callers match them with
// errors.Is; every returned error leaves pool and stake state untouched.
var (
	// ErrScheduleOrder is returned when a rate change is not strictly after
	// the last schedule entry.
	ErrScheduleOrder = errors.New("schedule entry is not strictly increasing")
	// ErrStakingWindowClosed is returned for operations attempted outside
	// the staking window [starts_at, ends_at).
	ErrStakingWindowClosed = errors.New("staking window is closed")
	// ErrStakingNotActive is returned when the pool was closed or the
	// operation falls outside the pool's staking window.
	ErrStakingNotActive = errors.New("staking is not active")
	// ErrNothingStaked is returned for operations on an inactive stake.
	ErrNothingStaked = errors.New("nothing staked")
	// ErrArithmeticOverflow is returned when weight accumulation overflows.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	// ErrScheduleEmpty is returned when the schedule has no genesis entry.
	ErrScheduleEmpty = errors.New("reward schedule is empty")
	ErrInvalidPool   = errors.New("invalid pool parameters")
)
