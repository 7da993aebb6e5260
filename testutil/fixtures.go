package testutil

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/require"

	"github.com/nftstake/weight-indexer/internal/accounting"
	"github.com/nftstake/weight-indexer/internal/db/model"
)

// RandomID returns a random identifier, e.g. pool-xKqzTbWe.
func RandomID(prefix string) string {
	return prefix + "-" + gofakeit.LetterN(8)
}

// PoolDocument builds a valid pool document created at startsAt. changes
// are appended to the schedule after the genesis entry.
func PoolDocument(
	t testing.TB,
	poolID string,
	startsAt, endsAt int64,
	genesisRate uint64,
	rewardPerWeight string,
	changes ...accounting.RateEntry,
) *model.PoolDocument {
	t.Helper()

	pool, err := accounting.NewPool(poolID, startsAt, endsAt, genesisRate, sdkmath.LegacyMustNewDecFromStr(rewardPerWeight))
	require.NoError(t, err)
	for _, c := range changes {
		require.NoError(t, pool.Schedule.Append(c.EffectiveTime, c.Rate, endsAt))
	}
	return model.FromPool(pool, startsAt)
}

// StakeDocument builds an active stake document of an asset staked at
// stakeTime.
func StakeDocument(t testing.TB, id, poolID, owner, assetID string, stakeTime int64, version uint64) *model.StakeDocument {
	t.Helper()

	record := &accounting.StakeRecord{
		PoolID:               poolID,
		Owner:                owner,
		AssetID:              assetID,
		StakeTime:            stakeTime,
		LastWeightUpdateTime: stakeTime,
		Active:               true,
	}
	return model.FromStakeRecord(id, record, version)
}
