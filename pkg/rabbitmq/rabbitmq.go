// Package rabbitmq publishes JSON messages to a topic exchange.
package rabbitmq

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
)

var ErrClosed = errors.New("rabbitmq: client is closed")

// Config holds RabbitMQ connection details. An empty URL disables publishing.
type Config struct {
	URL      string `env:"RABBITMQ_URL"`
	Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"catalog.events"`
}

func (c Config) Enabled() bool {
	return c.URL != ""
}

// Channel is the part of *amqp.Channel the client publishes through.
type Channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type Client struct {
	mu       sync.Mutex
	conn     io.Closer
	ch       Channel
	exchange string
	now      func() time.Time
}

// NewClient dials the broker and declares cfg.Exchange as a durable topic
// exchange.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", cfg.Exchange, err)
	}

	return newClient(conn, ch, cfg.Exchange), nil
}

func newClient(conn io.Closer, ch Channel, exchange string) *Client {
	return &Client{conn: conn, ch: ch, exchange: exchange, now: time.Now}
}

// Close releases the channel and the connection. Further publishes fail
// with ErrClosed.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	if c.ch != nil {
		errs = append(errs, c.ch.Close())
		c.ch = nil
	}
	if c.conn != nil {
		errs = append(errs, c.conn.Close())
		c.conn = nil
	}
	return errors.Join(errs...)
}

// PublishJSON sends payload as a persistent JSON message. Publishes are
// serialized because an amqp channel is not safe for concurrent use.
func (c *Client) PublishJSON(routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s message: %w", routingKey, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ch == nil {
		return ErrClosed
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    c.now(),
		Body:         body,
	}
	if err := c.ch.Publish(c.exchange, routingKey, false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}
