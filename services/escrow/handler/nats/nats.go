package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/piresc/angkut/internal/pkg/constants"
	"github.com/piresc/angkut/internal/pkg/logger"
	"github.com/piresc/angkut/internal/pkg/models"
	natspkg "github.com/piresc/angkut/internal/pkg/nats"
	"github.com/piresc/angkut/internal/pkg/requestcontext"
	"github.com/piresc/angkut/services/escrow"
)

// PaymentResultHandler consumes gateway payment results from JetStream
type PaymentResultHandler struct {
	escrowUC   escrow.EscrowUC
	natsClient *natspkg.Client
}

// NewPaymentResultHandler creates a new payment result NATS handler
func NewPaymentResultHandler(escrowUC escrow.EscrowUC, client *natspkg.Client) *PaymentResultHandler {
	return &PaymentResultHandler{
		escrowUC:   escrowUC,
		natsClient: client,
	}
}

// InitNATSConsumers creates the payment result consumer and starts consuming
func (h *PaymentResultHandler) InitNATSConsumers(ctx context.Context) error {
	cfg := natspkg.DefaultConsumerConfigs()[constants.ConsumerPaymentResult]
	logger.Info("Creating payment result consumer",
		logger.String("stream", cfg.StreamName),
		logger.String("consumer", cfg.ConsumerName),
		logger.String("filter_subject", cfg.FilterSubject))

	if err := h.natsClient.CreateConsumer(ctx, cfg); err != nil {
		return fmt.Errorf("failed to create payment result consumer: %w", err)
	}

	if err := h.natsClient.ConsumeMessages(constants.PaymentStream, constants.ConsumerPaymentResult, h.handlePaymentResultJS); err != nil {
		return fmt.Errorf("failed to start consuming payment results: %w", err)
	}

	logger.Info("Payment result consumer started")
	return nil
}

// handlePaymentResultJS returns an error to have the message redelivered
func (h *PaymentResultHandler) handlePaymentResultJS(msg jetstream.Msg) error {
	ctx := requestcontext.WithRequestID(context.Background(), msg.Headers().Get(requestcontext.HeaderRequestID))

	logger.DebugCtx(ctx, "Received payment result from JetStream",
		logger.String("subject", msg.Subject()))

	return h.handlePaymentResult(ctx, msg.Data())
}

func (h *PaymentResultHandler) handlePaymentResult(ctx context.Context, data []byte) error {
	var result models.PaymentResult
	if err := json.Unmarshal(data, &result); err != nil {
		// redelivery cannot fix a malformed message
		logger.ErrorCtx(ctx, "Dropping malformed payment result",
			logger.String("raw_message", string(data)),
			logger.Err(err))
		return nil
	}

	if err := h.escrowUC.ConfirmExternalResult(ctx, result); err != nil {
		logger.ErrorCtx(ctx, "Failed to apply payment result",
			logger.String("reference", result.Reference),
			logger.Bool("succeeded", result.Succeeded),
			logger.Err(err))
		return err
	}
	return nil
}
