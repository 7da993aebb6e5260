package accounting

import "fmt"

// RateEntry is a single reward-rate change: Rate weight units per second
// from EffectiveTime until the next entry (or the staking end).
type RateEntry struct {
	EffectiveTime int64
	Rate          uint64
}

// Schedule is the append-only reward-rate ledger of a pool. Entries are
// kept in insertion order with strictly increasing effective times.
type Schedule struct {
	entries []RateEntry
}

// NewSchedule rebuilds a schedule from persisted entries, re-checking the
// ordering invariant.
func NewSchedule(stakingEndsAt int64, entries ...RateEntry) (*Schedule, error) {
	s := &Schedule{entries: make([]RateEntry, 0, len(entries))}
	for _, e := range entries {
		if err := s.Append(e.EffectiveTime, e.Rate, stakingEndsAt); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Append adds a rate change. The effective time must be strictly greater
// than the last entry and strictly less than the staking end.
func (s *Schedule) Append(effectiveTime int64, rate uint64, stakingEndsAt int64) error {
	if err := s.validateAppend(effectiveTime, stakingEndsAt); err != nil {
		return err
	}
	s.entries = append(s.entries, RateEntry{EffectiveTime: effectiveTime, Rate: rate})
	return nil
}

func (s *Schedule) validateAppend(effectiveTime int64, stakingEndsAt int64) error {
	if n := len(s.entries); n > 0 && effectiveTime <= s.entries[n-1].EffectiveTime {
		return fmt.Errorf("%w: effective time %d, last entry at %d",
			ErrScheduleOrder, effectiveTime, s.entries[n-1].EffectiveTime)
	}
	if effectiveTime >= stakingEndsAt {
		return fmt.Errorf("%w: effective time %d, staking ends at %d",
			ErrStakingWindowClosed, effectiveTime, stakingEndsAt)
	}
	return nil
}

// LastEntry returns the most recent rate change.
func (s *Schedule) LastEntry() (RateEntry, error) {
	if len(s.entries) == 0 {
		return RateEntry{}, ErrScheduleEmpty
	}
	return s.entries[len(s.entries)-1], nil
}

// RateAt returns the rate in force at t. Times before the genesis entry
// accrue nothing.
func (s *Schedule) RateAt(t int64) (uint64, error) {
	if len(s.entries) == 0 {
		return 0, ErrScheduleEmpty
	}
	var rate uint64
	for _, e := range s.entries {
		if e.EffectiveTime > t {
			break
		}
		rate = e.Rate
	}
	return rate, nil
}

func (s *Schedule) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the ledger.
func (s *Schedule) Entries() []RateEntry {
	out := make([]RateEntry, len(s.entries))
	copy(out, s.entries)
	return out
}
