package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPoolDefinitions(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		requests, err := loadPoolDefinitions(strings.NewReader(`
pools:
  - pool_id: genesis
    staking_starts_at: 1000
    staking_ends_at: 3000
    genesis_rate: 10
    reward_per_weight: "0.5"
    rates:
      - effective_time: 1500
        rate: 20
  - pool_id: second
    staking_starts_at: 2000
    staking_ends_at: 4000
    genesis_rate: 18446744073709551615
    reward_per_weight: "1"
`))
		require.NoError(t, err)
		require.Len(t, requests, 2)

		assert.Equal(t, "genesis", requests[0].PoolID)
		assert.Equal(t, int64(3000), requests[0].StakingEndsAt)
		require.Len(t, requests[0].ScheduledRates, 1)
		assert.Equal(t, uint64(20), requests[0].ScheduledRates[0].Rate)

		assert.Equal(t, uint64(18446744073709551615), requests[1].GenesisRate)
		assert.Empty(t, requests[1].ScheduledRates)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := loadPoolDefinitions(strings.NewReader(`
pools:
  - pool_id: genesis
    rate: 10
`))
		require.Error(t, err)
	})

	t.Run("duplicate pool", func(t *testing.T) {
		_, err := loadPoolDefinitions(strings.NewReader(`
pools:
  - pool_id: genesis
  - pool_id: genesis
`))
		require.ErrorContains(t, err, "defined twice")
	})

	t.Run("empty", func(t *testing.T) {
		_, err := loadPoolDefinitions(strings.NewReader(""))
		require.ErrorContains(t, err, "empty")
	})
}
