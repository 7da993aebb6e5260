package config

import (
	"errors"
	"time"
)

// AccountingConfig tunes how the service applies accounting operations.
type AccountingConfig struct {
	// MaxRetryTimes bounds retries of an operation that lost an optimistic
	// concurrency race against another write to the same stake or pool.
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
	// SettleOnRateChange catches up every active stake of the pool once a
	// rate change is committed.
	SettleOnRateChange bool `mapstructure:"settle-on-rate-change"`
}

func (cfg *AccountingConfig) Validate() error {
	if cfg.MaxRetryTimes == 0 {
		return errors.New("max-retry-times must be positive")
	}

	if cfg.RetryInterval <= 0 {
		return errors.New("retry-interval must be positive")
	}

	return nil
}
