package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nftstake/weight-indexer/internal/config"
	dbmodel "github.com/nftstake/weight-indexer/internal/db/model"
	"github.com/nftstake/weight-indexer/internal/observability/tracing"
	"github.com/nftstake/weight-indexer/internal/services"
	"github.com/nftstake/weight-indexer/internal/types"
)

type scheduleFile struct {
	Pools []poolDefinition `yaml:"pools"`
}

type poolDefinition struct {
	PoolID          string           `yaml:"pool_id"`
	StakingStartsAt int64            `yaml:"staking_starts_at"`
	StakingEndsAt   int64            `yaml:"staking_ends_at"`
	GenesisRate     uint64           `yaml:"genesis_rate"`
	RewardPerWeight string           `yaml:"reward_per_weight"`
	Rates           []rateDefinition `yaml:"rates"`
}

type rateDefinition struct {
	EffectiveTime int64  `yaml:"effective_time"`
	Rate          uint64 `yaml:"rate"`
}

func ImportScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-schedule [file]",
		Short: "Creates pools with their reward schedules from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE:  importSchedule,
	}

	return cmd
}

func importSchedule(cmd *cobra.Command, args []string) error {
	ctx := tracing.InjectTraceID(cmd.Context())

	fd, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer fd.Close()

	requests, err := loadPoolDefinitions(fd)
	if err != nil {
		return fmt.Errorf("failed to read schedule file %s: %w", args[0], err)
	}

	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return err
	}
	if err := dbmodel.Setup(ctx, &cfg.Db); err != nil {
		return err
	}

	service, cleanup, err := newService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	for _, req := range requests {
		_, apiErr := service.CreatePool(ctx, req)
		if apiErr != nil && apiErr.ErrorCode == types.Conflict {
			fmt.Fprintf(out, "Pool %q already exists, skipped\n", req.PoolID)
			continue
		}
		if apiErr != nil {
			return fmt.Errorf("failed to create pool %q: %w", req.PoolID, apiErr)
		}
		fmt.Fprintf(out, "Pool %q created with %d scheduled rate changes\n", req.PoolID, len(req.ScheduledRates))
	}

	return nil
}

func loadPoolDefinitions(r io.Reader) ([]*services.CreatePoolRequest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var file scheduleFile
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("schedule file is empty")
		}
		return nil, err
	}

	requests := make([]*services.CreatePoolRequest, 0, len(file.Pools))
	seen := make(map[string]struct{}, len(file.Pools))
	for _, p := range file.Pools {
		if _, ok := seen[p.PoolID]; ok {
			return nil, fmt.Errorf("pool %q defined twice", p.PoolID)
		}
		seen[p.PoolID] = struct{}{}

		req := &services.CreatePoolRequest{
			PoolID:          p.PoolID,
			StakingStartsAt: p.StakingStartsAt,
			StakingEndsAt:   p.StakingEndsAt,
			GenesisRate:     p.GenesisRate,
			RewardPerWeight: p.RewardPerWeight,
		}
		for _, rate := range p.Rates {
			req.ScheduledRates = append(req.ScheduledRates, services.RateEntryView{
				EffectiveTime: rate.EffectiveTime,
				Rate:          rate.Rate,
			})
		}
		requests = append(requests, req)
	}
	return requests, nil
}
