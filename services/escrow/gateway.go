package escrow

import (
	"context"

	"github.com/piresc/angkut/internal/pkg/lock"
	"github.com/piresc/angkut/internal/pkg/models"
)

// PaymentGW is the external payment provider
// go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/angkut/services/escrow PaymentGW,Notifier,Locker
type PaymentGW interface {
	Initiate(ctx context.Context, payment *models.Payment) (models.GatewayInitiation, error)
}

// Notifier delivers best-effort user notifications
type Notifier interface {
	Notify(ctx context.Context, notification models.Notification) error
}

// Locker serializes work on one key
type Locker interface {
	Lock(ctx context.Context, key string) (lock.Unlock, error)
}
