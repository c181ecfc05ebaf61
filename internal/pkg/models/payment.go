package models

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the processing status of a payment
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusCancelled  PaymentStatus = "cancelled"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

// EscrowStatus represents where the money of a payment currently sits
type EscrowStatus string

const (
	EscrowStatusHeld     EscrowStatus = "held"
	EscrowStatusReleased EscrowStatus = "released"
	EscrowStatusRefunded EscrowStatus = "refunded"
)

// Payment is one escrow-backed money movement tied to exactly one booking.
// Amount is in the provider's smallest unit and never changes after creation.
type Payment struct {
	ID                       uuid.UUID     `json:"id" db:"id"`
	BookingID                uuid.UUID     `json:"booking_id" db:"booking_id"`
	CustomerID               uuid.UUID     `json:"customer_id" db:"customer_id"`
	TruckerID                uuid.UUID     `json:"trucker_id" db:"trucker_id"`
	Amount                   int64         `json:"amount" db:"amount"`
	Currency                 string        `json:"currency" db:"currency"`
	Method                   string        `json:"method" db:"method"`
	PayerPhone               string        `json:"payer_phone,omitempty" db:"payer_phone"`
	ExternalRequestID        *string       `json:"external_request_id,omitempty" db:"external_request_id"`
	Status                   PaymentStatus `json:"status" db:"status"`
	EscrowStatus             EscrowStatus  `json:"escrow_status" db:"escrow_status"`
	ManualProcessingRequired bool          `json:"manual_processing_required" db:"manual_processing_required"`
	RefundReason             *string       `json:"refund_reason,omitempty" db:"refund_reason"`
	RefundedBy               *uuid.UUID    `json:"refunded_by,omitempty" db:"refunded_by"`
	PaidAt                   *time.Time    `json:"paid_at,omitempty" db:"paid_at"`
	ReleasedAt               *time.Time    `json:"released_at,omitempty" db:"released_at"`
	RefundedAt               *time.Time    `json:"refunded_at,omitempty" db:"refunded_at"`
	CreatedAt                time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt                time.Time     `json:"updated_at" db:"updated_at"`
}

// BlocksNewPayment reports whether this payment prevents initiating another
// one for the same booking. Only failed, cancelled and refunded payments
// leave room for a retry.
func (p *Payment) BlocksNewPayment() bool {
	switch p.Status {
	case PaymentStatusFailed, PaymentStatusCancelled, PaymentStatusRefunded:
		return false
	}
	return true
}

// InitiatePaymentRequest is the customer's request to pay for a booking
type InitiatePaymentRequest struct {
	PayerPhone string `json:"payer_phone"`
}

// RefundRequest asks for a payment to be refunded
type RefundRequest struct {
	Reason string `json:"reason"`
}

// PaymentResult is the asynchronous outcome reported by the payment gateway
type PaymentResult struct {
	Reference string `json:"reference"`
	Succeeded bool   `json:"succeeded"`
}

// GatewayOutcome is the synchronous answer of the gateway to an initiation
type GatewayOutcome string

const (
	GatewayOutcomePending   GatewayOutcome = "pending"
	GatewayOutcomeSucceeded GatewayOutcome = "succeeded"
	GatewayOutcomeFailed    GatewayOutcome = "failed"
)

// GatewayInitiation is what the gateway adapter returns on initiate
type GatewayInitiation struct {
	ExternalRequestID string         `json:"external_request_id"`
	Outcome           GatewayOutcome `json:"outcome"`
}

// RefundOutcome is the result of a refund request
type RefundOutcome struct {
	Payment                    *Payment `json:"payment"`
	ManualInterventionRequired bool     `json:"manual_intervention_required"`
}

// ProjectedStatus is the payment status shown on the booking. A soft refund
// after release is labelled refunded even though the money still sits with
// the trucker and needs manual processing.
func (p *Payment) ProjectedStatus() PaymentStatus {
	if p.ManualProcessingRequired && p.Status == PaymentStatusCancelled {
		return PaymentStatusRefunded
	}
	return p.Status
}
