package escrow

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/angkut/internal/pkg/models"
)

// EscrowUC defines the escrow ledger operations
// go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/angkut/services/escrow EscrowUC
type EscrowUC interface {
	Initiate(ctx context.Context, bookingID uuid.UUID, actor models.Actor, req models.InitiatePaymentRequest) (*models.Payment, error)
	ConfirmExternalResult(ctx context.Context, result models.PaymentResult) error
	AutoRelease(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error)
	Refund(ctx context.Context, paymentID uuid.UUID, reason string, actor models.Actor) (*models.RefundOutcome, error)
	GetPayment(ctx context.Context, paymentID uuid.UUID, actor models.Actor) (*models.Payment, error)
	PaymentForBooking(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error)
}
