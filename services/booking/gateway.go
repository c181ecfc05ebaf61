package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/angkut/internal/pkg/distance"
	"github.com/piresc/angkut/internal/pkg/lock"
	"github.com/piresc/angkut/internal/pkg/models"
)

// Geocoder resolves addresses to coordinates
// go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/angkut/services/booking Geocoder,Estimator,EventPublisher,Notifier,Locker,Escrow
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*models.GeocodeResult, error)
}

// Estimator turns two coordinates into a travel estimate
type Estimator interface {
	Estimate(ctx context.Context, origin, destination models.Coordinates) (distance.Estimate, error)
}

// EventPublisher announces booking lifecycle events
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event models.BookingEvent) error
	PublishTracking(ctx context.Context, event models.TrackingEvent) error
}

// Notifier delivers best-effort user notifications
type Notifier interface {
	Notify(ctx context.Context, notification models.Notification) error
}

// Locker serializes mutations of one booking
type Locker interface {
	Lock(ctx context.Context, key string) (lock.Unlock, error)
}

// Escrow is the part of the escrow ledger booking transitions drive
type Escrow interface {
	PaymentForBooking(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error)
	AutoRelease(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error)
	Refund(ctx context.Context, paymentID uuid.UUID, reason string, actor models.Actor) (*models.RefundOutcome, error)
}
