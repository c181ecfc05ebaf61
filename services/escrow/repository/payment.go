package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/angkut/internal/pkg/apperror"
	"github.com/piresc/angkut/internal/pkg/models"
)

const paymentColumns = `
	id, booking_id, customer_id, trucker_id, amount, currency, method, payer_phone,
	external_request_id, status, escrow_status, manual_processing_required,
	refund_reason, refunded_by, paid_at, released_at, refunded_at, created_at, updated_at`

// PaymentRepo stores payments in PostgreSQL
type PaymentRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewPaymentRepository creates a payment repository
func NewPaymentRepository(cfg *models.Config, db *sqlx.DB) *PaymentRepo {
	return &PaymentRepo{
		cfg: cfg,
		db:  db,
	}
}

// Create inserts a new payment
func (r *PaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES (
			:id, :booking_id, :customer_id, :trucker_id, :amount, :currency, :method, :payer_phone,
			:external_request_id, :status, :escrow_status, :manual_processing_required,
			:refund_reason, :refunded_by, :paid_at, :released_at, :refunded_at, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}
	return nil
}

// GetByID retrieves a payment by ID
func (r *PaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return r.getOne(ctx, "id = $1", id.String(), id)
}

// GetByExternalRequestID retrieves a payment by the gateway's request id
func (r *PaymentRepo) GetByExternalRequestID(ctx context.Context, reference string) (*models.Payment, error) {
	return r.getOne(ctx, "external_request_id = $1", reference, reference)
}

func (r *PaymentRepo) getOne(ctx context.Context, where, label string, arg interface{}) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE ` + where

	var p models.Payment
	if err := r.db.GetContext(ctx, &p, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFoundError{Resource: "payment", ID: label, Err: err}
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return &p, nil
}

// LatestByBooking returns the most recent payment of a booking, or nil
func (r *PaymentRepo) LatestByBooking(ctx context.Context, bookingID uuid.UUID) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE booking_id = $1
		ORDER BY created_at DESC
		LIMIT 1`

	var p models.Payment
	if err := r.db.GetContext(ctx, &p, query, bookingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest payment: %w", err)
	}
	return &p, nil
}

// UpdateIfState writes the mutable payment fields when the stored row still
// has the expected status and escrow status. Amount is never written.
func (r *PaymentRepo) UpdateIfState(ctx context.Context, p *models.Payment, status models.PaymentStatus, escrowStatus models.EscrowStatus) (bool, error) {
	query := `
		UPDATE payments SET
			external_request_id = $1,
			status = $2,
			escrow_status = $3,
			manual_processing_required = $4,
			refund_reason = $5,
			refunded_by = $6,
			paid_at = $7,
			released_at = $8,
			refunded_at = $9,
			updated_at = $10
		WHERE id = $11 AND status = $12 AND escrow_status = $13`

	result, err := r.db.ExecContext(ctx, query,
		p.ExternalRequestID,
		p.Status,
		p.EscrowStatus,
		p.ManualProcessingRequired,
		p.RefundReason,
		p.RefundedBy,
		p.PaidAt,
		p.ReleasedAt,
		p.RefundedAt,
		p.UpdatedAt,
		p.ID,
		status,
		escrowStatus,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update payment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}
