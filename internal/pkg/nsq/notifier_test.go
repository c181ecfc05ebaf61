package nsq

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	topic    string
	messages []interface{}
	err      error
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, message interface{}) error {
	if p.err != nil {
		return p.err
	}
	p.topic = topic
	p.messages = append(p.messages, message)
	return nil
}

func TestNotifier_Notify(t *testing.T) {
	pub := &recordingPublisher{}
	notifier := NewNotifier(pub, "notifications")
	bookingID := uuid.New()

	err := notifier.Notify(context.Background(), models.Notification{
		UserID:           uuid.New(),
		Type:             models.NotificationBookingCancelled,
		Title:            "Booking cancelled",
		Message:          "cargo not ready",
		RelatedBookingID: &bookingID,
	})
	require.NoError(t, err)

	require.Len(t, pub.messages, 1)
	assert.Equal(t, "notifications", pub.topic)
	sent := pub.messages[0].(models.Notification)
	assert.NotEqual(t, uuid.Nil, sent.ID)
	assert.False(t, sent.CreatedAt.IsZero())
	assert.Equal(t, &bookingID, sent.RelatedBookingID)
}

func TestNotifier_PublishError(t *testing.T) {
	notifier := NewNotifier(&recordingPublisher{err: errors.New("nsqd down")}, "notifications")

	err := notifier.Notify(context.Background(), models.Notification{Type: models.NotificationRefundProcessed})
	assert.ErrorContains(t, err, "refund_processed")
}

func TestNewProducer_Unreachable(t *testing.T) {
	producer, err := NewProducer("127.0.0.1:1")
	assert.Error(t, err)
	assert.Nil(t, producer)
}
