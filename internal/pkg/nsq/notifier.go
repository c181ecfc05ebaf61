package nsq

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/piresc/angkut/internal/pkg/logger"
	"github.com/piresc/angkut/internal/pkg/models"
)

// Publisher is the part of Producer the notifier needs
type Publisher interface {
	Publish(ctx context.Context, topic string, message interface{}) error
}

// Notifier enqueues notification jobs for the delivery worker
type Notifier struct {
	publisher Publisher
	topic     string
}

// NewNotifier creates a notifier publishing to topic
func NewNotifier(publisher Publisher, topic string) *Notifier {
	return &Notifier{publisher: publisher, topic: topic}
}

// Notify publishes one notification job
func (n *Notifier) Notify(ctx context.Context, notification models.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = models.Now()
	}

	if err := n.publisher.Publish(ctx, n.topic, notification); err != nil {
		return fmt.Errorf("failed to enqueue %s notification: %w", notification.Type, err)
	}

	logger.DebugCtx(ctx, "Notification enqueued",
		logger.String("user_id", notification.UserID.String()),
		logger.String("type", string(notification.Type)))
	return nil
}
