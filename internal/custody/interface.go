package custody

import (
	"context"

	"github.com/nftstake/weight-indexer/internal/types"
)

// Signal tells the custody collaborator what to do with an asset. The
// service never moves assets or tokens itself.
type Signal struct {
	EventType types.CustodyEventType `json:"event_type"`
	PoolID    string                 `json:"pool_id"`
	AssetID   string                 `json:"asset_id"`
	Owner     string                 `json:"owner"`
	// Weight released for payout by the operation.
	PaidWeight uint64 `json:"paid_weight,string"`
	// PayableReward is PaidWeight converted with the pool's reward per weight.
	PayableReward string `json:"payable_reward"`
	OccurredAt    int64  `json:"occurred_at"`
}

//go:generate mockery --name=Notifier --output=../../tests/mocks --outpkg=mocks --filename=mock_custody_notifier.go
type Notifier interface {
	Notify(ctx context.Context, signal *Signal) error
	Close() error
}
