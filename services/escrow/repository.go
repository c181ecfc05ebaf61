package escrow

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/angkut/internal/pkg/models"
)

// PaymentRepo defines the interface for payment persistence
// go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/angkut/services/escrow PaymentRepo,BookingLink
type PaymentRepo interface {
	Create(ctx context.Context, payment *models.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	GetByExternalRequestID(ctx context.Context, reference string) (*models.Payment, error)
	// LatestByBooking returns nil without error when the booking has no payment
	LatestByBooking(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error)
	// UpdateIfState writes payment only if the stored status and escrow status
	// still equal the expected ones, and reports whether it did
	UpdateIfState(ctx context.Context, payment *models.Payment, status models.PaymentStatus, escrowStatus models.EscrowStatus) (bool, error)
}

// BookingLink is the part of the booking store the ledger reads and writes
type BookingLink interface {
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	LinkPayment(ctx context.Context, bookingID, paymentID uuid.UUID, status models.PaymentStatus) error
	UpdatePaymentStatus(ctx context.Context, bookingID uuid.UUID, status models.PaymentStatus) error
}
