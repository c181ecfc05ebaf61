package nats

import (
	"strings"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/angkut/internal/pkg/constants"
)

const eventRetention = 7 * 24 * time.Hour

// DefaultStreamConfigs returns the streams this service publishes to or reads from.
// Booking events fan out to any number of readers; payment results are work
// items removed once the booking service has acknowledged them.
func DefaultStreamConfigs() []StreamConfig {
	return []StreamConfig{
		{
			Name:      constants.BookingStream,
			Subjects:  []string{constants.SubjectBookingAll},
			Retention: jetstream.LimitsPolicy,
			Storage:   jetstream.FileStorage,
			Replicas:  1,
			MaxAge:    eventRetention,
			MaxBytes:  256 << 20,
			Discard:   jetstream.DiscardOld,
		},
		{
			Name:       constants.PaymentStream,
			Subjects:   []string{constants.SubjectPaymentAll},
			Retention:  jetstream.WorkQueuePolicy,
			Storage:    jetstream.FileStorage,
			Replicas:   1,
			MaxAge:     eventRetention,
			Discard:    jetstream.DiscardOld,
			Duplicates: 10 * time.Minute,
		},
	}
}

// DefaultConsumerConfigs returns the durable consumers keyed by name
func DefaultConsumerConfigs() map[string]ConsumerConfig {
	return map[string]ConsumerConfig{
		constants.ConsumerPaymentResult: {
			StreamName:    constants.PaymentStream,
			ConsumerName:  constants.ConsumerPaymentResult,
			FilterSubject: constants.SubjectPaymentResult,
			DeliverPolicy: jetstream.DeliverAllPolicy,
			AckPolicy:     jetstream.AckExplicitPolicy,
			AckWait:       30 * time.Second,
			MaxDeliver:    10,
			ReplayPolicy:  jetstream.ReplayInstantPolicy,
			MaxAckPending: 100,
		},
	}
}

// GetStreamForSubject returns the stream that captures subject
func GetStreamForSubject(subject string) string {
	switch {
	case strings.HasPrefix(subject, "booking."):
		return constants.BookingStream
	case strings.HasPrefix(subject, "payment."):
		return constants.PaymentStream
	}
	return ""
}
