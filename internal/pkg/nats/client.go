package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/angkut/internal/pkg/logger"
	"github.com/piresc/angkut/internal/pkg/requestcontext"
)

// StreamConfig describes a JetStream stream this service owns
type StreamConfig struct {
	Name      string
	Subjects  []string
	Retention jetstream.RetentionPolicy
	Storage   jetstream.StorageType
	Replicas  int
	MaxAge    time.Duration
	MaxBytes  int64
	MaxMsgs   int64
	Discard   jetstream.DiscardPolicy

	// Duplicates is the window in which a repeated Nats-Msg-Id is dropped
	Duplicates time.Duration
}

// ConsumerConfig describes a durable JetStream consumer
type ConsumerConfig struct {
	StreamName    string
	ConsumerName  string
	FilterSubject string
	DeliverPolicy jetstream.DeliverPolicy
	AckPolicy     jetstream.AckPolicy
	AckWait       time.Duration
	MaxDeliver    int
	ReplayPolicy  jetstream.ReplayPolicy
	MaxAckPending int
}

// JetStreamMessageHandler processes one message; a non-nil error NAKs it
type JetStreamMessageHandler func(msg jetstream.Msg) error

// Client wraps a NATS connection and its JetStream context
type Client struct {
	conn *nats.Conn
	js   jetstream.JetStream

	mu        sync.Mutex
	consumers map[string]jetstream.Consumer
	running   []jetstream.ConsumeContext
}

// NewClient connects to NATS and opens JetStream
func NewClient(url string) (*Client, error) {
	conn, err := nats.Connect(url,
		nats.Name("angkut"),
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

	return &Client{
		conn:      conn,
		js:        js,
		consumers: make(map[string]jetstream.Consumer),
	}, nil
}

// EnsureStreams creates or updates every given stream
func (c *Client) EnsureStreams(ctx context.Context, configs ...StreamConfig) error {
	for _, cfg := range configs {
		_, err := c.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:      cfg.Name,
			Subjects:  cfg.Subjects,
			Retention: cfg.Retention,
			Storage:   cfg.Storage,
			Replicas:  cfg.Replicas,
			MaxAge:    cfg.MaxAge,
			MaxBytes:  cfg.MaxBytes,
			MaxMsgs:    cfg.MaxMsgs,
			Discard:    cfg.Discard,
			Duplicates: cfg.Duplicates,
		})
		if err != nil {
			return fmt.Errorf("failed to ensure stream %s: %w", cfg.Name, err)
		}
		logger.Info("JetStream stream ready",
			logger.String("stream", cfg.Name),
			logger.Strings("subjects", cfg.Subjects))
	}
	return nil
}

// CreateConsumer creates or updates a durable consumer
func (c *Client) CreateConsumer(ctx context.Context, cfg ConsumerConfig) error {
	consumer, err := c.js.CreateOrUpdateConsumer(ctx, cfg.StreamName, jetstream.ConsumerConfig{
		Durable:       cfg.ConsumerName,
		FilterSubject: cfg.FilterSubject,
		DeliverPolicy: cfg.DeliverPolicy,
		AckPolicy:     cfg.AckPolicy,
		AckWait:       cfg.AckWait,
		MaxDeliver:    cfg.MaxDeliver,
		ReplayPolicy:  cfg.ReplayPolicy,
		MaxAckPending: cfg.MaxAckPending,
	})
	if err != nil {
		return fmt.Errorf("failed to create consumer %s: %w", cfg.ConsumerName, err)
	}

	c.mu.Lock()
	c.consumers[consumerKey(cfg.StreamName, cfg.ConsumerName)] = consumer
	c.mu.Unlock()
	return nil
}

// ConsumeMessages starts delivering messages of a created consumer to handler.
// Messages are ACKed when the handler returns nil and NAKed otherwise.
func (c *Client) ConsumeMessages(stream, consumerName string, handler JetStreamMessageHandler) error {
	c.mu.Lock()
	consumer, ok := c.consumers[consumerKey(stream, consumerName)]
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("consumer %s not created on stream %s", consumerName, stream)
	}

	cc, err := consumer.Consume(func(msg jetstream.Msg) {
		if err := handler(msg); err != nil {
			logger.Error("Error processing JetStream message",
				logger.String("subject", msg.Subject()),
				logger.Err(err))
			if nakErr := msg.Nak(); nakErr != nil {
				logger.Error("Failed to NAK message", logger.Err(nakErr))
			}
			return
		}
		if ackErr := msg.Ack(); ackErr != nil {
			logger.Error("Failed to ACK message", logger.Err(ackErr))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	c.mu.Lock()
	c.running = append(c.running, cc)
	c.mu.Unlock()
	return nil
}

// PublishJSON encodes v and publishes it to subject through JetStream. The
// request id in ctx travels as the X-Request-ID header.
func (c *Client) PublishJSON(ctx context.Context, subject string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	msg := nats.NewMsg(subject)
	msg.Data = data
	if requestID := requestcontext.GetRequestID(ctx); requestID != "" {
		msg.Header.Set(requestcontext.HeaderRequestID, requestID)
	}
	if _, err := c.js.PublishMsg(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

// Ping reports whether the connection is usable
func (c *Client) Ping() error {
	if c.conn == nil || !c.conn.IsConnected() {
		return fmt.Errorf("nats not connected")
	}
	return nil
}

// Close stops consumers and drains the connection
func (c *Client) Close() {
	c.mu.Lock()
	for _, cc := range c.running {
		cc.Stop()
	}
	c.running = nil
	c.mu.Unlock()

	if c.conn != nil {
		if err := c.conn.Drain(); err != nil {
			c.conn.Close()
		}
	}
}

func consumerKey(stream, consumer string) string {
	return stream + ":" + consumer
}
