package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/nftstake/weight-indexer/internal/accounting"
	"github.com/nftstake/weight-indexer/internal/clock"
	"github.com/nftstake/weight-indexer/internal/config"
	"github.com/nftstake/weight-indexer/internal/custody"
	"github.com/nftstake/weight-indexer/internal/db"
	"github.com/nftstake/weight-indexer/internal/observability/metrics"
	"github.com/nftstake/weight-indexer/internal/types"
	"github.com/nftstake/weight-indexer/internal/utils/poller"
)

const (
	opCreatePool     = "create_pool"
	opChangeRate     = "change_rate"
	opClosePool      = "close_pool"
	opStake          = "stake"
	opUnstake        = "unstake"
	opWithdrawReward = "withdraw_reward"
	opSettle         = "settle"
)

type Service struct {
	cfg     *config.Config
	db      db.DbInterface
	clock   clock.Source
	custody custody.Notifier
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	clock clock.Source,
	custody custody.Notifier,
) *Service {
	return &Service{
		cfg:     cfg,
		db:      db,
		clock:   clock,
		custody: custody,
	}
}

// StartSettlementPoller periodically finalises the weight of stakes in
// pools whose staking window has ended.
func (s *Service) StartSettlementPoller(ctx context.Context) *poller.Poller {
	settlementPoller := poller.NewPoller(
		"settlement",
		s.cfg.Poller.SettlementPollingInterval,
		s.SettleEndedPools,
	)
	go settlementPoller.Start(ctx)
	return settlementPoller
}

func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// withRetry runs an operation and retries it only when it lost an
// optimistic concurrency race. Every attempt re-reads state, so a retry
// never applies a stale computation.
func (s *Service) withRetry(ctx context.Context, operation string, f func() error) *types.Error {
	startTime := time.Now()
	err := retry.Do(
		func() error {
			err := f()
			if err == nil {
				return nil
			}
			if db.IsConcurrentUpdateError(err) {
				metrics.IncConcurrentUpdateRetry(operation)
				return err
			}
			return retry.Unrecoverable(err)
		},
		retry.Context(ctx),
		retry.Attempts(s.cfg.Accounting.MaxRetryTimes),
		retry.Delay(s.cfg.Accounting.RetryInterval),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Str("operation", operation).
				Uint("attempt", n+1).
				Err(err).
				Msg("retrying accounting operation after concurrent update")
		}),
	)

	var apiErr *types.Error
	if err != nil {
		apiErr = toError(err)
		metrics.RecordOperation(time.Since(startTime), operation, apiErr.ErrorCode.String())
		return apiErr
	}
	metrics.RecordOperation(time.Since(startTime), operation, "")
	return nil
}

func toError(err error) *types.Error {
	var apiErr *types.Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case db.IsNotFoundError(err):
		return types.NewError(http.StatusNotFound, types.NotFound, err)
	case db.IsDuplicateKeyError(err):
		return types.NewError(http.StatusConflict, types.Conflict, err)
	case db.IsConcurrentUpdateError(err):
		return types.NewError(http.StatusConflict, types.Conflict, err)
	default:
		return types.FromAccountingError(err)
	}
}

// notify sends a custody signal for an operation that is already
// committed. Failures are logged and counted, the stake record stays the
// source of truth for reconciliation.
func (s *Service) notify(ctx context.Context, signal *custody.Signal) {
	if err := s.custody.Notify(ctx, signal); err != nil {
		log.Ctx(ctx).Error().
			Err(err).
			Stringer("event_type", signal.EventType).
			Str("pool_id", signal.PoolID).
			Str("asset_id", signal.AssetID).
			Msg("failed to deliver custody signal")
	}
}

func validateID(name, value string) error {
	if value == "" {
		return types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, fmt.Sprintf("%s is required", name))
	}
	return nil
}

func recordZeroElapsed(operation string, out accounting.Outcome) {
	if out.Delta.IsZero() {
		metrics.IncZeroElapsedUpdate(operation)
	}
}
