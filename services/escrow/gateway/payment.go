package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/piresc/angkut/internal/pkg/apperror"
	"github.com/piresc/angkut/internal/pkg/circuitbreaker"
	"github.com/piresc/angkut/internal/pkg/http"
	"github.com/piresc/angkut/internal/pkg/logger"
	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/piresc/angkut/internal/pkg/retry"
	"github.com/piresc/angkut/internal/utils"
)

// PaymentGW talks to the payment provider's collection API
type PaymentGW struct {
	client      *http.Client
	callbackURL string
}

type initiateRequest struct {
	Reference   string `json:"reference"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Method      string `json:"method,omitempty"`
	PayerPhone  string `json:"payer_phone"`
	CallbackURL string `json:"callback_url,omitempty"`
}

type initiateResponse struct {
	RequestID string `json:"request_id"`
	Status    string `json:"status"`
}

// NewPaymentGateway creates the payment provider adapter
func NewPaymentGateway(cfg models.PaymentGatewayConfig) *PaymentGW {
	rc := retry.DefaultConfig()
	rc.MaxRetries = 2
	return &PaymentGW{
		client: http.NewClient(http.Config{
			BaseURL:     cfg.BaseURL,
			Timeout:     cfg.Timeout,
			APIKey:      cfg.APIKey,
			ServiceName: "payment-gateway",
			Retry:       &rc,
			Breaker:     &circuitbreaker.Config{FailureThreshold: 5},
		}),
		callbackURL: cfg.CallbackURL,
	}
}

// Initiate asks the provider to collect the payment amount from the payer.
// The payment id is the idempotency reference, so retries cannot charge twice.
func (g *PaymentGW) Initiate(ctx context.Context, payment *models.Payment) (models.GatewayInitiation, error) {
	req := initiateRequest{
		Reference:   payment.ID.String(),
		Amount:      payment.Amount,
		Currency:    payment.Currency,
		Method:      payment.Method,
		PayerPhone:  payment.PayerPhone,
		CallbackURL: g.callbackURL,
	}

	var resp initiateResponse
	if err := g.client.PostJSON(ctx, "/v1/payments", req, &resp); err != nil {
		var se *http.StatusError
		if errors.As(err, &se) && se.StatusCode >= 400 && se.StatusCode < 500 && se.StatusCode != 429 {
			// the provider rejected the request outright
			logger.WarnCtx(ctx, "Payment gateway rejected payment",
				logger.PaymentID(payment.ID),
				logger.String("payer", utils.MaskPhoneNumber(payment.PayerPhone)),
				logger.Int("status_code", se.StatusCode))
			return models.GatewayInitiation{Outcome: models.GatewayOutcomeFailed}, nil
		}
		return models.GatewayInitiation{}, apperror.DependencyError{Dependency: "payment gateway", Err: err}
	}

	initiation := models.GatewayInitiation{ExternalRequestID: resp.RequestID}
	switch strings.ToLower(resp.Status) {
	case "success", "succeeded", "paid", "completed":
		initiation.Outcome = models.GatewayOutcomeSucceeded
	case "failed", "rejected", "declined":
		initiation.Outcome = models.GatewayOutcomeFailed
	case "", "pending", "processing", "accepted":
		initiation.Outcome = models.GatewayOutcomePending
	default:
		return models.GatewayInitiation{}, apperror.DependencyError{
			Dependency: "payment gateway",
			Err:        fmt.Errorf("unknown payment status %q", resp.Status),
		}
	}
	return initiation, nil
}
