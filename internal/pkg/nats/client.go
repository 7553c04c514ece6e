package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/toolshare/internal/pkg/logger"
)

// Client wraps a NATS connection and its JetStream context
type Client struct {
	conn *nats.Conn
	js   jetstream.JetStream
}

// NewClient connects with unlimited reconnects and logs connection changes
func NewClient(url, name string) (*Client, error) {
	conn, err := nats.Connect(url,
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", logger.Err(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", logger.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS server: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	return &Client{conn: conn, js: js}, nil
}

func (c *Client) GetConn() *nats.Conn {
	return c.conn
}

func (c *Client) GetJetStream() jetstream.JetStream {
	return c.js
}

// EnsureStreams creates or updates every stream in configs
func (c *Client) EnsureStreams(ctx context.Context, configs ...jetstream.StreamConfig) error {
	for _, cfg := range configs {
		if _, err := c.js.CreateOrUpdateStream(ctx, cfg); err != nil {
			return fmt.Errorf("failed to ensure stream %s: %w", cfg.Name, err)
		}
	}
	return nil
}

// PublishJSON publishes v to subject through JetStream. msgID enables the
// stream's duplicate window so a retried publish is stored once.
func (c *Client) PublishJSON(ctx context.Context, subject, msgID string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	var opts []jetstream.PublishOpt
	if msgID != "" {
		opts = append(opts, jetstream.WithMsgID(msgID))
	}
	if _, err := c.js.Publish(ctx, subject, data, opts...); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

// Close drains subscriptions before closing the connection
func (c *Client) Close() {
	if c.conn == nil {
		return
	}
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
	}
}

// ErrMalformed marks a message that can never be processed; it is
// terminated instead of redelivered.
var ErrMalformed = errors.New("malformed message")

// MessageHandler processes one message payload
type MessageHandler func(ctx context.Context, data []byte) error

// ConsumerConfig describes a durable JetStream consumer
type ConsumerConfig struct {
	Stream        string
	Durable       string
	FilterSubject string
	AckWait       time.Duration
	MaxDeliver    int
	RetryDelay    time.Duration
}

// Consume attaches handler to a durable consumer. Messages are acked on
// success, terminated on ErrMalformed and redelivered after RetryDelay
// otherwise. Stop the returned context to detach.
func (c *Client) Consume(ctx context.Context, cfg ConsumerConfig, handler MessageHandler) (jetstream.ConsumeContext, error) {
	consumer, err := c.js.CreateOrUpdateConsumer(ctx, cfg.Stream, jetstream.ConsumerConfig{
		Durable:       cfg.Durable,
		FilterSubject: cfg.FilterSubject,
		AckPolicy:     jetstream.AckExplicitPolicy,
		DeliverPolicy: jetstream.DeliverAllPolicy,
		AckWait:       orDefault(cfg.AckWait, 30*time.Second),
		MaxDeliver:    cfg.MaxDeliver,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer %s: %w", cfg.Durable, err)
	}

	retryDelay := orDefault(cfg.RetryDelay, 5*time.Second)
	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		HandleMessage(ctx, msg, handler, retryDelay)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start consumer %s: %w", cfg.Durable, err)
	}
	return cc, nil
}

// Acker is the subset of jetstream.Msg used to settle a delivery
type Acker interface {
	Data() []byte
	Subject() string
	Ack() error
	NakWithDelay(delay time.Duration) error
	Term() error
}

// HandleMessage runs handler and settles msg according to its result
func HandleMessage(ctx context.Context, msg Acker, handler MessageHandler, retryDelay time.Duration) {
	err := handler(ctx, msg.Data())
	switch {
	case err == nil:
		if ackErr := msg.Ack(); ackErr != nil {
			logger.Warn("Failed to ack message", logger.String("subject", msg.Subject()), logger.Err(ackErr))
		}
	case errors.Is(err, ErrMalformed):
		logger.Error("Dropping malformed message", logger.String("subject", msg.Subject()), logger.Err(err))
		_ = msg.Term()
	default:
		logger.Warn("Message processing failed, will redeliver", logger.String("subject", msg.Subject()), logger.Err(err))
		_ = msg.NakWithDelay(retryDelay)
	}
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
