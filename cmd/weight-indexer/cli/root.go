package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nftstake/weight-indexer/internal/clock"
	"github.com/nftstake/weight-indexer/internal/config"
	"github.com/nftstake/weight-indexer/internal/custody"
	"github.com/nftstake/weight-indexer/internal/db"
	"github.com/nftstake/weight-indexer/internal/services"
	"github.com/nftstake/weight-indexer/pkg"
)

const (
	defaultConfigFileName = "config.yml"
	configPathEnv         = "WEIGHT_INDEXER_CONFIG"
)

var (
	cfgPath string
	rootCmd = &cobra.Command{
		Use:           "weight-indexer",
		Short:         "Time-weighted NFT staking reward accounting",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func Setup() error {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	defaultConfigPath := pkg.Getenv(configPathEnv, getDefaultConfigFile(homePath, defaultConfigFileName))

	rootCmd.AddCommand(StartServerCmd())
	rootCmd.AddCommand(ImportScheduleCmd())
	rootCmd.AddCommand(SettleEndedCmd())
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, fmt.Sprintf("config file (default %s)", defaultConfigPath))

	return rootCmd.Execute()
}

func getDefaultConfigFile(homePath, filename string) string {
	return filepath.Join(homePath, filename)
}

func GetConfigPath() string {
	return cfgPath
}

// newService wires the accounting service over mongo. The returned cleanup
// closes the custody notifier.
func newService(ctx context.Context, cfg *config.Config) (*services.Service, func(), error) {
	var dbClient db.DbInterface
	dbClient, err := db.New(ctx, cfg.Db)
	if err != nil {
		return nil, nil, fmt.Errorf("error while creating db client: %w", err)
	}
	dbClient = db.NewDbWithMetrics(dbClient)

	var notifier custody.Notifier = custody.NoopNotifier{}
	if cfg.Custody != nil {
		notifier, err = custody.NewAMQPNotifier(cfg.Custody)
		if err != nil {
			return nil, nil, fmt.Errorf("error while creating custody notifier: %w", err)
		}
	}

	service := services.NewService(cfg, dbClient, clock.NewSystemClock(), notifier)
	cleanup := func() {
		_ = notifier.Close()
	}
	return service, cleanup, nil
}
