package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	const (
		key          = "WEIGHT_INDEXER_TEST_CONFIG"
		defaultValue = "/home/indexer/config.yml"
	)

	t.Run("unset key falls back to default", func(t *testing.T) {
		assert.Equal(t, defaultValue, Getenv("WEIGHT_INDEXER_TEST_UNSET", defaultValue))
	})
	t.Run("empty value is kept", func(t *testing.T) {
		t.Setenv(key, "")
		assert.Empty(t, Getenv(key, defaultValue))
	})
	t.Run("value overrides default", func(t *testing.T) {
		t.Setenv(key, "/etc/weight-indexer.yml")
		assert.Equal(t, "/etc/weight-indexer.yml", Getenv(key, defaultValue))
	})
}
