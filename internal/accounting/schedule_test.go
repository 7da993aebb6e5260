package accounting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedule_Append(t *testing.T) {
	const endsAt = 1000

	t.Run("strictly increasing entries", func(t *testing.T) {
		s, err := NewSchedule(endsAt, RateEntry{EffectiveTime: 0, Rate: 10})
		require.NoError(t, err)

		require.NoError(t, s.Append(500, 20, endsAt))
		require.NoError(t, s.Append(999, 30, endsAt))

		last, err := s.LastEntry()
		require.NoError(t, err)
		assert.Equal(t, RateEntry{EffectiveTime: 999, Rate: 30}, last)
		assert.Equal(t, 3, s.Len())
	})
	t.Run("same effective time is rejected", func(t *testing.T) {
		s, err := NewSchedule(endsAt, RateEntry{EffectiveTime: 100, Rate: 10})
		require.NoError(t, err)

		err = s.Append(100, 20, endsAt)
		require.ErrorIs(t, err, ErrScheduleOrder)
		assert.Equal(t, 1, s.Len())
	})
	t.Run("earlier effective time is rejected", func(t *testing.T) {
		s, err := NewSchedule(endsAt, RateEntry{EffectiveTime: 100, Rate: 10})
		require.NoError(t, err)

		err = s.Append(50, 20, endsAt)
		require.ErrorIs(t, err, ErrScheduleOrder)
		assert.Equal(t, []RateEntry{{EffectiveTime: 100, Rate: 10}}, s.Entries())
	})
	t.Run("effective time at staking end is rejected", func(t *testing.T) {
		s, err := NewSchedule(endsAt, RateEntry{EffectiveTime: 0, Rate: 10})
		require.NoError(t, err)

		err = s.Append(endsAt, 20, endsAt)
		require.ErrorIs(t, err, ErrStakingWindowClosed)
		err = s.Append(endsAt+1, 20, endsAt)
		require.ErrorIs(t, err, ErrStakingWindowClosed)
		assert.Equal(t, 1, s.Len())
	})
	t.Run("rebuild rejects unordered entries", func(t *testing.T) {
		_, err := NewSchedule(endsAt,
			RateEntry{EffectiveTime: 10, Rate: 1},
			RateEntry{EffectiveTime: 5, Rate: 2},
		)
		require.ErrorIs(t, err, ErrScheduleOrder)
	})
}

func TestSchedule_LastEntry(t *testing.T) {
	s := &Schedule{}
	_, err := s.LastEntry()
	require.ErrorIs(t, err, ErrScheduleEmpty)

	_, err = s.RateAt(10)
	require.ErrorIs(t, err, ErrScheduleEmpty)
}

func TestSchedule_RateAt(t *testing.T) {
	s, err := NewSchedule(1000,
		RateEntry{EffectiveTime: 100, Rate: 1},
		RateEntry{EffectiveTime: 500, Rate: 2},
	)
	require.NoError(t, err)

	cases := map[int64]uint64{
		0:   0,
		100: 1,
		499: 1,
		500: 2,
		999: 2,
	}
	for at, expected := range cases {
		rate, err := s.RateAt(at)
		require.NoError(t, err)
		assert.Equal(t, expected, rate, "rate at %d", at)
	}
}

func TestSchedule_EntriesIsCopy(t *testing.T) {
	s, err := NewSchedule(1000, RateEntry{EffectiveTime: 0, Rate: 1})
	require.NoError(t, err)

	entries := s.Entries()
	entries[0].Rate = 42

	last, err := s.LastEntry()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), last.Rate)
}
