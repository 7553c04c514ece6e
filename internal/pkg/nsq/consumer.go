package nsq

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nsqio/go-nsq"
	"github.com/piresc/toolshare/internal/pkg/logger"
)

// MessageHandler processes one NSQ message body
type MessageHandler func(body []byte) error

// ErrDrop marks a message that must not be requeued
var ErrDrop = errors.New("drop message")

// ConsumerConfig describes a topic/channel subscription
type ConsumerConfig struct {
	Topic          string
	Channel        string
	NSQDAddress    string
	LookupdAddress []string
	MaxInFlight    int
	MaxAttempts    uint16
}

// Consumer reads a topic/channel and hands bodies to a MessageHandler
type Consumer struct {
	consumer *nsq.Consumer
}

// NewConsumer subscribes handler to the configured topic/channel. Lookupd
// addresses win over a direct nsqd address when both are set.
func NewConsumer(cfg ConsumerConfig, handler MessageHandler) (*Consumer, error) {
	config := nsq.NewConfig()
	if cfg.MaxInFlight > 0 {
		config.MaxInFlight = cfg.MaxInFlight
	}
	if cfg.MaxAttempts > 0 {
		config.MaxAttempts = cfg.MaxAttempts
	}

	consumer, err := nsq.NewConsumer(cfg.Topic, cfg.Channel, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ consumer: %w", err)
	}
	consumer.SetLoggerLevel(nsq.LogLevelWarning)
	consumer.AddHandler(nsq.HandlerFunc(func(message *nsq.Message) error {
		return HandleMessage(cfg.Topic, message.Attempts, message.Body, handler)
	}))

	if len(cfg.LookupdAddress) > 0 {
		if err := consumer.ConnectToNSQLookupds(cfg.LookupdAddress); err != nil {
			consumer.Stop()
			return nil, fmt.Errorf("failed to connect to NSQ lookupd: %w", err)
		}
	} else if err := consumer.ConnectToNSQD(cfg.NSQDAddress); err != nil {
		consumer.Stop()
		return nil, fmt.Errorf("failed to connect to NSQ daemon: %w", err)
	}

	return &Consumer{consumer: consumer}, nil
}

// HandleMessage runs handler and converts its result into the value the
// NSQ library expects: nil finishes the message, an error requeues it.
func HandleMessage(topic string, attempts uint16, body []byte, handler MessageHandler) error {
	err := handler(body)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrDrop) {
		logger.Error("Dropping NSQ message",
			logger.String("topic", topic),
			logger.Err(err))
		return nil
	}
	logger.Warn("Error processing NSQ message, requeueing",
		logger.String("topic", topic),
		logger.Int("attempts", int(attempts)),
		logger.Err(err))
	return err
}

// UnmarshalMessage decodes a JSON body, marking decode failures as ErrDrop
func UnmarshalMessage(body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to unmarshal message: %v: %w", err, ErrDrop)
	}
	return nil
}

// Stop blocks until in-flight messages are handled
func (c *Consumer) Stop() {
	c.consumer.Stop()
	<-c.consumer.StopChan
}
