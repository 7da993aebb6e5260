package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollerConfig_Validate(t *testing.T) {
	t.Run("all required fields set", func(t *testing.T) {
		cfg := &PollerConfig{
			SettlementPollingInterval: 1 * time.Minute,
			SettlementBatchSize:       100,
			SettlementConcurrency:     3,
		}
		err := cfg.Validate()
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.SettlementConcurrency)
	})

	t.Run("settlement concurrency not set - should use default", func(t *testing.T) {
		cfg := &PollerConfig{
			SettlementPollingInterval: 1 * time.Minute,
			SettlementBatchSize:       100,
		}
		err := cfg.Validate()
		require.NoError(t, err)
		assert.Equal(t, defaultSettlementConcurrency, cfg.SettlementConcurrency)
	})

	t.Run("settlement polling interval not set - should error", func(t *testing.T) {
		cfg := &PollerConfig{
			SettlementBatchSize: 100,
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "settlement-polling-interval must be positive")
	})

	t.Run("settlement batch size not set - should error", func(t *testing.T) {
		cfg := &PollerConfig{
			SettlementPollingInterval: 1 * time.Minute,
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "settlement-batch-size must be positive")
	})
}
