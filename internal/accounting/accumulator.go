package accounting

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Delta is the result of a weight computation. It has no side effects
// until applied to a StakeRecord.
type Delta struct {
	// Weight to add to the stake's accumulated weight: the integral of the
	// rate over the interval.
	Weight uint64
	// MeanRate is the floored time-weighted rate over the interval.
	MeanRate uint64
	// Base is the elapsed time the delta covers, zero for a no-op.
	Base int64
	// Horizon is the new last_weight_update_time.
	Horizon int64
}

// IsZero reports whether the computation covered no elapsed time.
func (d Delta) IsZero() bool {
	return d.Base == 0
}

// ComputeDelta computes the weight accrued by a stake between its last
// update and min(currentTime, stakingEndsAt).
//
// Each schedule segment overlapping the interval contributes rate*overlap,
// and the delta is the sum of the contributions. MeanRate is that sum
// divided by base, floored, and is informational only. A non-positive base
// (same-second operations, evaluation at or after the staking end) is a
// zero delta, not an error, and the division is never reached.
func ComputeDelta(stakeTime, lastUpdateTime, currentTime int64, schedule *Schedule, stakingEndsAt int64) (Delta, error) {
	start := max(lastUpdateTime, stakeTime)
	horizon := min(currentTime, stakingEndsAt)

	base := horizon - start
	if base <= 0 {
		return Delta{Horizon: start}, nil
	}

	num, err := integrateRate(schedule, start, horizon)
	if err != nil {
		return Delta{}, err
	}

	return Delta{
		Weight:   num,
		MeanRate: num / uint64(base),
		Base:     base,
		Horizon:  horizon,
	}, nil
}

// integrateRate sums rate*duration over [from, to) across the schedule.
func integrateRate(schedule *Schedule, from, to int64) (uint64, error) {
	if schedule == nil || schedule.Len() == 0 {
		return 0, ErrScheduleEmpty
	}

	var num uint64
	entries := schedule.entries
	for i, e := range entries {
		segEnd := to
		if i+1 < len(entries) {
			segEnd = entries[i+1].EffectiveTime
		}
		lo := max(e.EffectiveTime, from)
		hi := min(segEnd, to)
		if hi <= lo {
			continue
		}

		contribution, err := checkedMul(e.Rate, uint64(hi-lo))
		if err != nil {
			return 0, fmt.Errorf("segment starting at %d: %w", e.EffectiveTime, err)
		}
		num, err = checkedAdd(num, contribution)
		if err != nil {
			return 0, fmt.Errorf("segment starting at %d: %w", e.EffectiveTime, err)
		}
	}
	return num, nil
}

func checkedMul(a, b uint64) (uint64, error) {
	prod, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(a), uint256.NewInt(b))
	if overflow || !prod.IsUint64() {
		return 0, fmt.Errorf("%w: %d * %d", ErrArithmeticOverflow, a, b)
	}
	return prod.Uint64(), nil
}

func checkedAdd(a, b uint64) (uint64, error) {
	sum, overflow := new(uint256.Int).AddOverflow(uint256.NewInt(a), uint256.NewInt(b))
	if overflow || !sum.IsUint64() {
		return 0, fmt.Errorf("%w: %d + %d", ErrArithmeticOverflow, a, b)
	}
	return sum.Uint64(), nil
}

func checkedSub(a, b uint64) (uint64, error) {
	diff, underflow := new(uint256.Int).SubOverflow(uint256.NewInt(a), uint256.NewInt(b))
	if underflow {
		return 0, fmt.Errorf("%w: %d - %d", ErrArithmeticOverflow, a, b)
	}
	return diff.Uint64(), nil
}
