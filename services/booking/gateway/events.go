package gateway

import (
	"context"
	"fmt"

	"github.com/piresc/angkut/internal/pkg/constants"
	"github.com/piresc/angkut/internal/pkg/logger"
	"github.com/piresc/angkut/internal/pkg/models"
)

// JSONPublisher is the part of the NATS client the event gateway needs
type JSONPublisher interface {
	PublishJSON(ctx context.Context, subject string, v interface{}) error
}

// EventGW publishes booking lifecycle events to JetStream
type EventGW struct {
	publisher JSONPublisher
}

// NewEventGateway creates the booking event publisher
func NewEventGateway(publisher JSONPublisher) *EventGW {
	return &EventGW{publisher: publisher}
}

// PublishStatusChanged publishes on booking.status.<status>
func (g *EventGW) PublishStatusChanged(ctx context.Context, event models.BookingEvent) error {
	subject := constants.BookingStatusSubject(string(event.Status))
	if err := g.publisher.PublishJSON(ctx, subject, event); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}

	logger.DebugCtx(ctx, "Booking event published",
		logger.String("subject", subject),
		logger.String("booking_id", event.BookingID))
	return nil
}

// PublishTracking publishes a location update on booking.tracking
func (g *EventGW) PublishTracking(ctx context.Context, event models.TrackingEvent) error {
	if err := g.publisher.PublishJSON(ctx, constants.SubjectBookingTracking, event); err != nil {
		return fmt.Errorf("failed to publish %s: %w", constants.SubjectBookingTracking, err)
	}
	return nil
}
