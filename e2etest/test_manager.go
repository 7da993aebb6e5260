//go:build e2e

package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"

	"github.com/nftstake/weight-indexer/e2etest/container"
	"github.com/nftstake/weight-indexer/internal/api"
	"github.com/nftstake/weight-indexer/internal/clock"
	"github.com/nftstake/weight-indexer/internal/config"
	"github.com/nftstake/weight-indexer/internal/custody"
	"github.com/nftstake/weight-indexer/internal/db"
	"github.com/nftstake/weight-indexer/internal/db/model"
	"github.com/nftstake/weight-indexer/internal/services"
)

const (
	eventuallyWaitTimeOut = 30 * time.Second

	custodyQueueName = "nft-custody-e2e"
)

type TestManager struct {
	Config   *config.Config
	Clock    *clock.FixedClock
	DbClient *db.Database
	Service  *services.Service
	Server   *httptest.Server
	Notifier *custody.AMQPNotifier
	// CustodyMessages receives every signal published to the custody queue
	CustodyMessages <-chan amqp.Delivery

	manager    *container.Manager
	amqpConn   *amqp.Connection
	amqpCancel func()
}

// StartManager runs mongo and rabbitmq in docker and serves the API over a
// test server, with time driven by a fixed clock.
func StartManager(t *testing.T, now int64) *TestManager {
	manager := container.NewManager(t)
	mongoPort := manager.RunMongoResource(t)
	rabbitPort := manager.RunRabbitMQResource(t)

	cfg := DefaultWeightIndexerConfig()
	cfg.Db.Address = fmt.Sprintf("mongodb://localhost:%s/", mongoPort)
	cfg.Custody.URL = fmt.Sprintf("localhost:%s", rabbitPort)

	ctx := context.Background()

	var dbClient *db.Database
	err := manager.Retry(func() error {
		var err error
		dbClient, err = db.New(ctx, cfg.Db)
		if err != nil {
			return err
		}
		return dbClient.Ping(ctx)
	})
	require.NoError(t, err)
	require.NoError(t, model.Setup(ctx, &cfg.Db))

	var notifier *custody.AMQPNotifier
	err = manager.Retry(func() error {
		var err error
		notifier, err = custody.NewAMQPNotifier(cfg.Custody)
		return err
	})
	require.NoError(t, err)

	conn, err := amqp.Dial(cfg.Custody.AMQPURL())
	require.NoError(t, err)
	ch, err := conn.Channel()
	require.NoError(t, err)
	messages, err := ch.Consume(custodyQueueName, "e2e", true, false, false, false, nil)
	require.NoError(t, err)

	fixedClock := clock.NewFixedClock(now)
	service := services.NewService(cfg, db.NewDbWithMetrics(dbClient), fixedClock, notifier)
	server := httptest.NewServer(api.New(&cfg.Server, service).Handler())

	return &TestManager{
		Config:          cfg,
		Clock:           fixedClock,
		DbClient:        dbClient,
		Service:         service,
		Server:          server,
		Notifier:        notifier,
		CustodyMessages: messages,
		manager:         manager,
		amqpConn:        conn,
		amqpCancel:      func() { _ = ch.Close() },
	}
}

func (tm *TestManager) Stop(t *testing.T) {
	tm.Server.Close()
	tm.amqpCancel()
	require.NoError(t, tm.amqpConn.Close())
	require.NoError(t, tm.Notifier.Close())
	require.NoError(t, tm.manager.ClearResources())
}

func DefaultWeightIndexerConfig() *config.Config {
	return &config.Config{
		Db: config.DbConfig{
			Username: container.Username,
			Password: container.Password,
			DbName:   "weight-indexer-e2e",
		},
		Server: config.ServerConfig{
			Host:         "127.0.0.1",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			IdleTimeout:  30 * time.Second,
		},
		Accounting: config.AccountingConfig{
			MaxRetryTimes: 5,
			RetryInterval: 10 * time.Millisecond,
		},
		Poller: config.PollerConfig{
			SettlementPollingInterval: time.Second,
			SettlementBatchSize:       2,
			SettlementConcurrency:     2,
		},
		Custody: &config.CustodyConfig{
			User:          container.Username,
			Password:      container.Password,
			QueueName:     custodyQueueName,
			MaxRetryTimes: 3,
			RetryInterval: 100 * time.Millisecond,
		},
	}
}

// Do sends a JSON request to the API and decodes the response into out
// when it is not nil. It returns the status code.
func (tm *TestManager) Do(t *testing.T, method, path string, body any, out any) int {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, tm.Server.URL+path, reader)
	require.NoError(t, err)
	resp, err := tm.Server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// NextCustodySignal waits for the next message on the custody queue.
func (tm *TestManager) NextCustodySignal(t *testing.T) custody.Signal {
	select {
	case msg := <-tm.CustodyMessages:
		var signal custody.Signal
		require.NoError(t, json.Unmarshal(msg.Body, &signal))
		require.Equal(t, signal.EventType.String(), msg.Type)
		return signal
	case <-time.After(eventuallyWaitTimeOut):
		t.Fatal("no custody signal received")
		return custody.Signal{}
	}
}
