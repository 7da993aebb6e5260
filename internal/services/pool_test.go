package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nftstake/weight-indexer/internal/accounting"
	"github.com/nftstake/weight-indexer/internal/db"
	"github.com/nftstake/weight-indexer/internal/db/model"
	"github.com/nftstake/weight-indexer/internal/types"
)

func TestCreatePool(t *testing.T) {
	validRequest := func() *CreatePoolRequest {
		return &CreatePoolRequest{
			PoolID:          testPoolID,
			StakingStartsAt: testStartsAt,
			StakingEndsAt:   testEndsAt,
			GenesisRate:     10,
			RewardPerWeight: "0.5",
		}
	}

	t.Run("ok", func(t *testing.T) {
		env := newTestEnv(t, 900)
		req := validRequest()
		req.ScheduledRates = []RateEntryView{{EffectiveTime: 2000, Rate: 5}}

		env.db.On("SaveNewPool", internalCtx, mock.MatchedBy(func(doc *model.PoolDocument) bool {
			return doc.PoolID == testPoolID &&
				doc.State == types.PoolStateActive &&
				doc.CreatedAt == 900 &&
				len(doc.Schedule) == 2 &&
				doc.Schedule[0] == model.RateEntryDocument{EffectiveTime: testStartsAt, Rate: "10"}
		})).Return(nil).Once()

		view, apiErr := env.srv.CreatePool(t.Context(), req)
		require.Nil(t, apiErr)
		assert.Equal(t, testPoolID, view.PoolID)
		// nothing is in force before the staking start
		assert.Zero(t, view.CurrentRate)
		assert.Equal(t, "0.500000000000000000", view.RewardPerWeight)
		assert.Len(t, view.Schedule, 2)
	})

	t.Run("invalid reward per weight", func(t *testing.T) {
		env := newTestEnv(t, 900)
		req := validRequest()
		req.RewardPerWeight = "abc"

		_, apiErr := env.srv.CreatePool(t.Context(), req)
		require.NotNil(t, apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, types.ValidationError, apiErr.ErrorCode)
	})

	t.Run("empty window", func(t *testing.T) {
		env := newTestEnv(t, 900)
		req := validRequest()
		req.StakingEndsAt = req.StakingStartsAt

		_, apiErr := env.srv.CreatePool(t.Context(), req)
		require.NotNil(t, apiErr)
		assert.Equal(t, types.ValidationError, apiErr.ErrorCode)
	})

	t.Run("scheduled rates out of order", func(t *testing.T) {
		env := newTestEnv(t, 900)
		req := validRequest()
		req.ScheduledRates = []RateEntryView{{EffectiveTime: 2000, Rate: 5}, {EffectiveTime: 1500, Rate: 7}}

		_, apiErr := env.srv.CreatePool(t.Context(), req)
		require.NotNil(t, apiErr)
		assert.Equal(t, types.ScheduleOrder, apiErr.ErrorCode)
	})

	t.Run("scheduled rate at staking end", func(t *testing.T) {
		env := newTestEnv(t, 900)
		req := validRequest()
		req.ScheduledRates = []RateEntryView{{EffectiveTime: testEndsAt, Rate: 5}}

		_, apiErr := env.srv.CreatePool(t.Context(), req)
		require.NotNil(t, apiErr)
		assert.Equal(t, types.StakingWindowClosed, apiErr.ErrorCode)
	})

	t.Run("duplicate", func(t *testing.T) {
		env := newTestEnv(t, 900)
		env.db.On("SaveNewPool", internalCtx, mock.Anything).
			Return(&db.DuplicateKeyError{Key: testPoolID, Message: "pool already exists"}).Once()

		_, apiErr := env.srv.CreatePool(t.Context(), validRequest())
		require.NotNil(t, apiErr)
		assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	})
}

func TestGetPool(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		env := newTestEnv(t, 1500)
		env.db.On("GetPool", internalCtx, "missing").
			Return(nil, &db.NotFoundError{Key: "missing", Message: "pool not found"})

		_, apiErr := env.srv.GetPool(t.Context(), "missing")
		require.NotNil(t, apiErr)
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	})

	t.Run("empty id", func(t *testing.T) {
		env := newTestEnv(t, 1500)
		_, apiErr := env.srv.GetPool(t.Context(), "")
		require.NotNil(t, apiErr)
		assert.Equal(t, types.BadRequest, apiErr.ErrorCode)
	})
}

func TestChangeRate(t *testing.T) {
	t.Run("appends entry effective now", func(t *testing.T) {
		env := newTestEnv(t, 2000)
		env.db.On("GetPool", internalCtx, testPoolID).Return(testPoolDoc(t, "1"), nil).Once()
		env.db.On("AppendRateEntry", internalCtx, testPoolID, 1,
			model.RateEntryDocument{EffectiveTime: 2000, Rate: "20"}).Return(nil).Once()

		view, apiErr := env.srv.ChangeRate(t.Context(), testPoolID, 20)
		require.Nil(t, apiErr)
		assert.Equal(t, uint64(20), view.CurrentRate)
		assert.Len(t, view.Schedule, 2)
	})

	t.Run("retries after concurrent append", func(t *testing.T) {
		env := newTestEnv(t, 2000)
		env.db.On("GetPool", internalCtx, testPoolID).Return(testPoolDoc(t, "1"), nil).Once()
		env.db.On("GetPool", internalCtx, testPoolID).
			Return(testPoolDoc(t, "1", accounting.RateEntry{EffectiveTime: 1500, Rate: 7}), nil).Once()
		env.db.On("AppendRateEntry", internalCtx, testPoolID, 1, mock.Anything).
			Return(&db.ConcurrentUpdateError{Key: testPoolID, Message: "changed"}).Once()
		env.db.On("AppendRateEntry", internalCtx, testPoolID, 2,
			model.RateEntryDocument{EffectiveTime: 2000, Rate: "20"}).Return(nil).Once()

		view, apiErr := env.srv.ChangeRate(t.Context(), testPoolID, 20)
		require.Nil(t, apiErr)
		assert.Len(t, view.Schedule, 3)
	})

	t.Run("rejected at staking end", func(t *testing.T) {
		env := newTestEnv(t, testEndsAt)
		env.db.On("GetPool", internalCtx, testPoolID).Return(testPoolDoc(t, "1"), nil).Once()

		_, apiErr := env.srv.ChangeRate(t.Context(), testPoolID, 20)
		require.NotNil(t, apiErr)
		assert.Equal(t, types.StakingWindowClosed, apiErr.ErrorCode)
		env.db.AssertNotCalled(t, "AppendRateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejected in the same second as the last entry", func(t *testing.T) {
		env := newTestEnv(t, 1500)
		env.db.On("GetPool", internalCtx, testPoolID).
			Return(testPoolDoc(t, "1", accounting.RateEntry{EffectiveTime: 1500, Rate: 7}), nil).Once()

		_, apiErr := env.srv.ChangeRate(t.Context(), testPoolID, 20)
		require.NotNil(t, apiErr)
		assert.Equal(t, types.ScheduleOrder, apiErr.ErrorCode)
	})

	t.Run("rejected on closed pool", func(t *testing.T) {
		env := newTestEnv(t, 2000)
		doc := testPoolDoc(t, "1")
		doc.State = types.PoolStateClosed
		env.db.On("GetPool", internalCtx, testPoolID).Return(doc, nil).Once()

		_, apiErr := env.srv.ChangeRate(t.Context(), testPoolID, 20)
		require.NotNil(t, apiErr)
		assert.Equal(t, types.StakingNotActive, apiErr.ErrorCode)
	})

	t.Run("checkpoints active stakes after the append when configured", func(t *testing.T) {
		env := newTestEnv(t, 2000)
		env.cfg.Accounting.SettleOnRateChange = true
		env.db.On("GetPool", internalCtx, testPoolID).Return(testPoolDoc(t, "1"), nil).Once()
		appended := env.db.On("AppendRateEntry", internalCtx, testPoolID, 1, mock.Anything).Return(nil).Once()
		env.db.On("GetActiveStakes", internalCtx, testPoolID).
			Return([]*model.StakeDocument{testStakeDoc(t, 1000, 4)}, nil).Once().
			NotBefore(appended)
		// the new segment starts at 2000, so only the old rate is credited
		env.db.On("UpdateStake", internalCtx, mock.MatchedBy(func(doc *model.StakeDocument) bool {
			return doc.AccumulatedWeight == "10000" && doc.LastWeightUpdateTime == 2000 && doc.Version == 5
		}), uint64(4)).Return(nil).Once()

		_, apiErr := env.srv.ChangeRate(t.Context(), testPoolID, 20)
		require.Nil(t, apiErr)
	})

	t.Run("failed append leaves stakes untouched", func(t *testing.T) {
		env := newTestEnv(t, 2000)
		env.cfg.Accounting.SettleOnRateChange = true
		env.db.On("GetPool", internalCtx, testPoolID).Return(testPoolDoc(t, "1"), nil).Once()
		env.db.On("AppendRateEntry", internalCtx, testPoolID, 1, mock.Anything).
			Return(errors.New("write failed")).Once()

		_, apiErr := env.srv.ChangeRate(t.Context(), testPoolID, 20)
		require.NotNil(t, apiErr)
		assert.Equal(t, types.InternalServiceError, apiErr.ErrorCode)
		env.db.AssertNotCalled(t, "GetActiveStakes", mock.Anything, mock.Anything)
		env.db.AssertNotCalled(t, "UpdateStake", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failed checkpoint keeps the committed rate change", func(t *testing.T) {
		env := newTestEnv(t, 2000)
		env.cfg.Accounting.SettleOnRateChange = true
		env.db.On("GetPool", internalCtx, testPoolID).Return(testPoolDoc(t, "1"), nil).Once()
		env.db.On("AppendRateEntry", internalCtx, testPoolID, 1, mock.Anything).Return(nil).Once()
		env.db.On("GetActiveStakes", internalCtx, testPoolID).
			Return(nil, errors.New("read failed")).Once()

		view, apiErr := env.srv.ChangeRate(t.Context(), testPoolID, 20)
		require.Nil(t, apiErr)
		assert.Equal(t, uint64(20), view.CurrentRate)
	})
}

func TestClosePool(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		env := newTestEnv(t, 2000)
		env.db.On("GetPool", internalCtx, testPoolID).Return(testPoolDoc(t, "1"), nil).Once()
		env.db.On("ClosePool", internalCtx, testPoolID, int64(2000)).Return(nil).Once()

		view, apiErr := env.srv.ClosePool(t.Context(), testPoolID)
		require.Nil(t, apiErr)
		assert.Equal(t, types.PoolStateClosed, view.State)
	})

	t.Run("already closed", func(t *testing.T) {
		env := newTestEnv(t, 2000)
		doc := testPoolDoc(t, "1")
		doc.State = types.PoolStateClosed
		env.db.On("GetPool", internalCtx, testPoolID).Return(doc, nil).Once()

		_, apiErr := env.srv.ClosePool(t.Context(), testPoolID)
		require.NotNil(t, apiErr)
		assert.Equal(t, types.StakingNotActive, apiErr.ErrorCode)
	})
}

func TestPoolWeight(t *testing.T) {
	env := newTestEnv(t, 2000)
	env.db.On("GetPool", internalCtx, testPoolID).Return(testPoolDoc(t, "1"), nil).Once()

	active := testStakeDoc(t, 1000, 0)
	active.AssetID = "asset-a"
	active.AccumulatedWeight = "1000"
	active.LastWeightUpdateTime = 1500

	unstaked := testStakeDoc(t, 1000, 3)
	unstaked.AssetID = "asset-b"
	unstaked.AccumulatedWeight = "4000"
	unstaked.Active = false
	unstaked.UnstakedAt = 1400

	env.db.On("GetStakesByPool", internalCtx, testPoolID).
		Return([]*model.StakeDocument{active, unstaked}, nil).Once()

	view, apiErr := env.srv.PoolWeight(t.Context(), testPoolID)
	require.Nil(t, apiErr)
	assert.Equal(t, uint64(5000), view.TotalWeight)
	// active stake accrued 10 * 500 since its last update
	assert.Equal(t, uint64(10000), view.ProjectedWeight)
	assert.Equal(t, 1, view.ActiveStakes)
	assert.Equal(t, 2, view.TotalStakes)
	require.Len(t, view.Shares, 1)
	assert.Equal(t, "asset-a", view.Shares[0].AssetID)
	assert.Equal(t, uint64(6000), view.Shares[0].Weight)
	assert.Equal(t, "0.600000000000000000", view.Shares[0].Share)
}
