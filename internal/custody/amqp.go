package custody

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/nftstake/weight-indexer/internal/config"
	"github.com/nftstake/weight-indexer/internal/observability/metrics"
)

// publisher is the part of an AMQP channel the notifier needs.
type publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type AMQPNotifier struct {
	cfg     *config.CustodyConfig
	conn    *amqp.Connection
	channel publisher
}

func NewAMQPNotifier(cfg *config.CustodyConfig) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(cfg.AMQPURL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to custody queue: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open custody channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		cfg.QueueName,
		true,  // durable
		false, // auto delete
		false, // exclusive
		false, // no wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare custody queue %s: %w", cfg.QueueName, err)
	}

	return &AMQPNotifier{
		cfg:     cfg,
		conn:    conn,
		channel: ch,
	}, nil
}

func (n *AMQPNotifier) Notify(ctx context.Context, signal *Signal) error {
	body, err := json.Marshal(signal)
	if err != nil {
		return fmt.Errorf("failed to marshal custody signal: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.New().String(),
		Timestamp:    time.Unix(signal.OccurredAt, 0),
		Type:         signal.EventType.String(),
		Body:         body,
	}

	startTime := time.Now()
	err = retry.Do(
		func() error {
			return n.channel.PublishWithContext(ctx, "", n.cfg.QueueName, false, false, msg)
		},
		retry.Context(ctx),
		retry.Attempts(n.cfg.MaxRetryTimes),
		retry.Delay(n.cfg.RetryInterval),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(attempt uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", attempt+1).
				Uint("max_attempts", n.cfg.MaxRetryTimes).
				Err(err).
				Msg("failed to publish custody signal")
		}),
	)
	metrics.RecordCustodyPublish(time.Since(startTime), signal.EventType.String(), err != nil)
	if err != nil {
		return fmt.Errorf("failed to publish %s signal for asset %s: %w", signal.EventType, signal.AssetID, err)
	}

	return nil
}

// Close gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (n *AMQPNotifier) Close() error {
	log.Info().Msg("Shutting down custody notifier")
	if err := n.channel.Close(); err != nil {
		return err
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
