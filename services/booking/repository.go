package booking

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/angkut/internal/pkg/models"
)

// BookingRepo defines the interface for booking persistence
// go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/angkut/services/booking BookingRepo,TruckRepo,ActivityRepo
type BookingRepo interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	// UpdateIfStatus writes booking only if the stored status still equals
	// expected, and reports whether it did
	UpdateIfStatus(ctx context.Context, booking *models.Booking, expected models.BookingStatus) (bool, error)
	CountActiveByTruck(ctx context.Context, truckID uuid.UUID) (int, error)
	List(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error)
}

// TruckRepo reads trucks and writes their availability
type TruckRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Truck, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) error
}

// ActivityRepo is the append-only truck activity log
type ActivityRepo interface {
	Append(ctx context.Context, entry models.ActivityEntry) error
	ListByTruck(ctx context.Context, truckID uuid.UUID, limit int) ([]models.ActivityEntry, error)
}
