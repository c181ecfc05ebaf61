package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/angkut/internal/pkg/apperror"
	"github.com/piresc/angkut/internal/pkg/logger"
	"github.com/piresc/angkut/internal/pkg/middleware"
	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/piresc/angkut/internal/utils"
	"github.com/piresc/angkut/services/escrow"
)

// PaymentHandler handles HTTP requests for payment operations
type PaymentHandler struct {
	escrowUC escrow.EscrowUC
}

// NewPaymentHandler creates a new payment HTTP handler
func NewPaymentHandler(escrowUC escrow.EscrowUC) *PaymentHandler {
	return &PaymentHandler{
		escrowUC: escrowUC,
	}
}

// RegisterRoutes registers the payment routes. auth guards the user routes,
// callbackAuth the gateway webhook.
func (h *PaymentHandler) RegisterRoutes(e *echo.Echo, auth, callbackAuth echo.MiddlewareFunc) {
	e.POST("/bookings/:id/payments", h.InitiatePayment, auth)

	paymentGroup := e.Group("/payments", auth)
	paymentGroup.GET("/:id", h.GetPayment)
	paymentGroup.POST("/:id/refund", h.RequestRefund)

	e.POST("/internal/payments/callback", h.GatewayCallback, callbackAuth)
}

// InitiatePayment starts the escrow payment of a booking
func (h *PaymentHandler) InitiatePayment(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, err.Error())
	}
	bookingID, err := parseID(c, "id")
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	var req models.InitiatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	payment, err := h.escrowUC.Initiate(c.Request().Context(), bookingID, actor, req)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Payment initiated", payment)
}

// GetPayment returns a payment to one of its parties
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, err.Error())
	}
	paymentID, err := parseID(c, "id")
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	payment, err := h.escrowUC.GetPayment(c.Request().Context(), paymentID, actor)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment retrieved", payment)
}

// RequestRefund refunds a payment. A refund that needs manual processing is
// answered with 202 Accepted.
func (h *PaymentHandler) RequestRefund(c echo.Context) error {
	actor, err := middleware.ActorFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, err.Error())
	}
	paymentID, err := parseID(c, "id")
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	var req models.RefundRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	outcome, err := h.escrowUC.Refund(c.Request().Context(), paymentID, req.Reason, actor)
	if err != nil {
		return utils.DomainErrorResponse(c, err)
	}

	if outcome.ManualInterventionRequired {
		return utils.SuccessResponse(c, http.StatusAccepted, "Refund recorded, manual processing required", outcome)
	}
	return utils.SuccessResponse(c, http.StatusOK, "Payment refunded", outcome)
}

// GatewayCallback receives asynchronous payment results from the gateway
func (h *PaymentHandler) GatewayCallback(c echo.Context) error {
	var result models.PaymentResult
	if err := c.Bind(&result); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}
	if result.Reference == "" {
		return utils.BadRequestResponse(c, "reference is required")
	}

	ctx := c.Request().Context()
	if err := h.escrowUC.ConfirmExternalResult(ctx, result); err != nil {
		logger.ErrorCtx(ctx, "Failed to apply payment callback",
			logger.String("reference", result.Reference),
			logger.Err(err))
		return utils.DomainErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, http.StatusOK, "Payment result accepted", nil)
}

func parseID(c echo.Context, param string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return uuid.Nil, apperror.ValidationError{Field: param, Msg: "must be a valid UUID", Err: err}
	}
	return id, nil
}
