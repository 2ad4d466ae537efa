package queue

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends a message body to a named queue
type Publisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

// Consumer reads deliveries from a durable queue with manual acks
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// NewConsumer connects to RabbitMQ and declares queueName
func NewConsumer(amqpURL, queueName string, prefetch int) (*Consumer, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	if prefetch < 1 {
		prefetch = 1
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	return &Consumer{conn: conn, channel: ch, queue: queueName}, nil
}

// Consume starts delivering messages
func (c *Consumer) Consume() (<-chan amqp.Delivery, error) {
	return c.channel.Consume(c.queue, "", false, false, false, false, nil)
}

// Close closes the channel and the connection
func (c *Consumer) Close() error {
	if err := c.channel.Close(); err != nil {
		c.conn.Close()
		return err
	}
	return c.conn.Close()
}

// Producer publishes persistent JSON messages
type Producer struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	declared map[string]bool
}

// NewProducer connects to RabbitMQ
func NewProducer(amqpURL string) (*Producer, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	return &Producer{conn: conn, channel: ch, declared: make(map[string]bool)}, nil
}

// Publish implements Publisher. It is not safe for concurrent use.
func (p *Producer) Publish(ctx context.Context, queueName string, body []byte) error {
	if !p.declared[queueName] {
		if _, err := p.channel.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", queueName, err)
		}
		p.declared[queueName] = true
	}

	err := p.channel.PublishWithContext(ctx,
		"",
		queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Close closes the channel and the connection
func (p *Producer) Close() error {
	if err := p.channel.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}
