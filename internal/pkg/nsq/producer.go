package nsq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nsqio/go-nsq"
	"github.com/piresc/angkut/internal/pkg/logger"
)

// Producer publishes JSON messages to nsqd
type Producer struct {
	producer *nsq.Producer
}

// NewProducer connects to the nsqd at address
func NewProducer(address string) (*Producer, error) {
	config := nsq.NewConfig()
	config.DialTimeout = 2 * time.Second
	config.WriteTimeout = 2 * time.Second

	producer, err := nsq.NewProducer(address, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ producer: %w", err)
	}
	producer.SetLogger(zapAdapter{}, nsq.LogLevelWarning)

	if err := producer.Ping(); err != nil {
		producer.Stop()
		return nil, fmt.Errorf("failed to ping NSQ daemon: %w", err)
	}

	return &Producer{producer: producer}, nil
}

// Publish sends message to topic and waits for nsqd to acknowledge it or
// for ctx to end, whichever comes first
func (p *Producer) Publish(ctx context.Context, topic string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	done := make(chan *nsq.ProducerTransaction, 1)
	if err := p.producer.PublishAsync(topic, body, done); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	select {
	case tx := <-done:
		if tx.Error != nil {
			return fmt.Errorf("failed to publish to %s: %w", topic, tx.Error)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("publish to %s not acknowledged: %w", topic, ctx.Err())
	}
}

// Ping checks that nsqd is reachable
func (p *Producer) Ping() error {
	return p.producer.Ping()
}

// Stop flushes in-flight publishes and closes the connection
func (p *Producer) Stop() {
	p.producer.Stop()
}

// zapAdapter routes go-nsq's internal log lines into the service logger
type zapAdapter struct{}

func (zapAdapter) Output(_ int, s string) error {
	// go-nsq prefixes lines with the level, e.g. "WRN    1 [topic] ..."
	if strings.HasPrefix(s, "ERR") {
		logger.Error("nsq", logger.String("line", s))
	} else {
		logger.Warn("nsq", logger.String("line", s))
	}
	return nil
}
