package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/angkut/internal/pkg/models"
)

// BookingUC defines the booking lifecycle operations
// go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/angkut/services/booking BookingUC
type BookingUC interface {
	CreateBooking(ctx context.Context, actor models.Actor, req models.CreateBookingRequest) (*models.CreateBookingResult, error)
	EditBooking(ctx context.Context, bookingID uuid.UUID, actor models.Actor, req models.EditBookingRequest) (*models.Booking, error)
	TransitionStatus(ctx context.Context, bookingID uuid.UUID, actor models.Actor, req models.TransitionRequest) (*models.TransitionResult, error)
	RecordTracking(ctx context.Context, bookingID uuid.UUID, actor models.Actor, update models.TrackingUpdate) (*models.Booking, error)
	ListActiveBookingsSequenced(ctx context.Context, truckerID uuid.UUID, actor models.Actor) ([]models.SequencedBooking, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID, actor models.Actor) (*models.Booking, error)
	ListBookings(ctx context.Context, actor models.Actor, statuses []models.BookingStatus) ([]*models.Booking, error)
	TruckActivity(ctx context.Context, truckID uuid.UUID, actor models.Actor, limit int) ([]models.ActivityEntry, error)
}
