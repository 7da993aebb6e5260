package custody

import (
	"context"

	"github.com/rs/zerolog/log"
)

// NoopNotifier only logs signals. Used when no custody queue is configured.
type NoopNotifier struct{}

func (NoopNotifier) Notify(ctx context.Context, signal *Signal) error {
	log.Ctx(ctx).Info().
		Stringer("event_type", signal.EventType).
		Str("pool_id", signal.PoolID).
		Str("asset_id", signal.AssetID).
		Str("payable_reward", signal.PayableReward).
		Msg("custody signal (no custody queue configured)")
	return nil
}

func (NoopNotifier) Close() error {
	return nil
}
