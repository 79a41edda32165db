package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"vidstream/pkg/config"
	"vidstream/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	SubscriptionQueueName = "subscription_events"
	SubscriptionExchange  = "vidstream.notifications"
	subscriptionRouteKey  = "channel.subscribed"
)

// SubscriptionEvent is published when a user subscribes to a channel
// so downstream consumers can notify the channel owner.
type SubscriptionEvent struct {
	ChannelID    string    `json:"channel_id"`
	SubscriberID string    `json:"subscriber_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		SubscriptionExchange, // name
		"direct",             // type
		true,                 // durable
		false,                // auto-deleted
		false,                // internal
		false,                // no-wait
		nil,                  // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		SubscriptionQueueName, // name
		true,                  // durable
		false,                 // delete when unused
		false,                 // exclusive
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		SubscriptionQueueName,
		subscriptionRouteKey,
		SubscriptionExchange,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishSubscriptionEvent publishes a subscription event. Failures are
// the caller's problem to log; subscription creation must not depend on
// the broker being up.
func (c *Client) PublishSubscriptionEvent(event SubscriptionEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = c.channel.Publish(
		SubscriptionExchange,
		subscriptionRouteKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("Published subscription event: channel=%s subscriber=%s", event.ChannelID, event.SubscriberID)
	return nil
}

// ConsumeSubscriptionEvents delivers subscription events to handler.
// Handler errors requeue the message; malformed payloads are dropped.
func (c *Client) ConsumeSubscriptionEvents(handler func(event SubscriptionEvent) error) error {
	msgs, err := c.channel.Consume(
		SubscriptionQueueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			var event SubscriptionEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				c.logger.Error("Failed to unmarshal subscription event: %v", err)
				msg.Nack(false, false)
				continue
			}

			if err := handler(event); err != nil {
				c.logger.Error("Handler failed for subscription event: %v", err)
				msg.Nack(false, true)
				continue
			}

			msg.Ack(false)
		}
	}()

	return nil
}
