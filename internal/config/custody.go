package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	defaultCustodyMaxRetryTimes = 5
	defaultCustodyRetryInterval = 500 * time.Millisecond
)

// CustodyConfig defines the AMQP queue custody signals are published to.
type CustodyConfig struct {
	URL           string        `mapstructure:"url"`
	User          string        `mapstructure:"user"`
	Password      string        `mapstructure:"password"`
	QueueName     string        `mapstructure:"queue-name"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *CustodyConfig) Validate() error {
	if cfg.URL == "" {
		return fmt.Errorf("custody queue url must be set")
	}
	if cfg.QueueName == "" {
		return fmt.Errorf("custody queue name must be set")
	}

	if cfg.MaxRetryTimes == 0 {
		cfg.MaxRetryTimes = defaultCustodyMaxRetryTimes
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultCustodyRetryInterval
	}

	return nil
}

// AMQPURL builds the connection url including escaped credentials. URL is
// host:port with an optional /vhost suffix.
func (cfg *CustodyConfig) AMQPURL() string {
	host, vhost, _ := strings.Cut(cfg.URL, "/")
	u := url.URL{Scheme: "amqp", Host: host}
	if vhost != "" {
		u.Path = "/" + vhost
	}
	if cfg.User != "" {
		u.User = url.UserPassword(cfg.User, cfg.Password)
	}
	return u.String()
}
