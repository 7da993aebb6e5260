package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "WEIGHT_INDEXER"

type Config struct {
	Db         DbConfig         `mapstructure:"db"`
	Server     ServerConfig     `mapstructure:"server"`
	Accounting AccountingConfig `mapstructure:"accounting"`
	Poller     PollerConfig     `mapstructure:"poller"`
	Custody    *CustodyConfig   `mapstructure:"custody"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

func (cfg *Config) Validate() error {
	if err := cfg.Db.Validate(); err != nil {
		return fmt.Errorf("db config: %w", err)
	}

	if err := cfg.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := cfg.Accounting.Validate(); err != nil {
		return fmt.Errorf("accounting config: %w", err)
	}

	if err := cfg.Poller.Validate(); err != nil {
		return fmt.Errorf("poller config: %w", err)
	}

	// custody section is optional, without it custody signals are only logged
	if cfg.Custody != nil {
		if err := cfg.Custody.Validate(); err != nil {
			return fmt.Errorf("custody config: %w", err)
		}
	}

	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics config: %w", err)
	}

	return nil
}

// New loads the config file at cfgFile. Any key can be overridden from the
// environment, e.g. WEIGHT_INDEXER_DB_ADDRESS for db.address.
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
