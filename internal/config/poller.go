package config

import (
	"errors"
	"time"
)

const (
	defaultSettlementConcurrency = 8
)

type PollerConfig struct {
	SettlementPollingInterval time.Duration `mapstructure:"settlement-polling-interval"`
	SettlementBatchSize       uint64        `mapstructure:"settlement-batch-size"`
	SettlementConcurrency     int           `mapstructure:"settlement-concurrency"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.SettlementPollingInterval <= 0 {
		return errors.New("settlement-polling-interval must be positive")
	}

	if cfg.SettlementBatchSize <= 0 {
		return errors.New("settlement-batch-size must be positive")
	}

	if cfg.SettlementConcurrency <= 0 {
		cfg.SettlementConcurrency = defaultSettlementConcurrency
	}

	return nil
}
