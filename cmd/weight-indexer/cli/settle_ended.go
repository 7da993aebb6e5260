package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nftstake/weight-indexer/internal/config"
	"github.com/nftstake/weight-indexer/internal/observability/tracing"
)

func SettleEndedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settle-ended",
		Short: "Settles the stakes of every pool whose staking window has ended, once",
		Args:  cobra.ExactArgs(0),
		RunE:  settleEnded,
	}

	return cmd
}

func settleEnded(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return err
	}

	service, cleanup, err := newService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := service.SettleEndedPools(ctx); err != nil {
		return fmt.Errorf("failed to settle ended pools: %w", err)
	}
	return nil
}
