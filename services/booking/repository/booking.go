package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/angkut/internal/pkg/apperror"
	"github.com/piresc/angkut/internal/pkg/models"
)

const bookingColumns = `
	id, customer_id, trucker_id, truck_id,
	origin_address, origin_latitude, origin_longitude, pickup_time,
	destination_address, destination_latitude, destination_longitude, dropoff_time,
	cargo_type, cargo_weight_kg, cargo_volume_m3, cargo_description,
	distance_km, rate_per_km, minimum_charge, estimated_amount,
	payment_method, payment_status, payment_id, status,
	tracking_latitude, tracking_longitude, tracking_updated_at, estimated_arrival,
	cancel_reason, cancelled_by, cancelled_by_role, cancelled_at,
	confirmed_at, started_at, completed_at, created_at, updated_at`

// activeStatusList is the SQL literal of statuses that occupy a truck
var activeStatusList = func() string {
	quoted := make([]string, 0, len(models.ActiveBookingStatuses))
	for _, s := range models.ActiveBookingStatuses {
		quoted = append(quoted, "'"+string(s)+"'")
	}
	return strings.Join(quoted, ", ")
}()

// BookingRepo stores bookings in PostgreSQL
type BookingRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewBookingRepository creates a booking repository
func NewBookingRepository(cfg *models.Config, db *sqlx.DB) *BookingRepo {
	return &BookingRepo{
		cfg: cfg,
		db:  db,
	}
}

// Create inserts a new booking
func (r *BookingRepo) Create(ctx context.Context, b *models.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES (
			:id, :customer_id, :trucker_id, :truck_id,
			:origin_address, :origin_latitude, :origin_longitude, :pickup_time,
			:destination_address, :destination_latitude, :destination_longitude, :dropoff_time,
			:cargo_type, :cargo_weight_kg, :cargo_volume_m3, :cargo_description,
			:distance_km, :rate_per_km, :minimum_charge, :estimated_amount,
			:payment_method, :payment_status, :payment_id, :status,
			:tracking_latitude, :tracking_longitude, :tracking_updated_at, :estimated_arrival,
			:cancel_reason, :cancelled_by, :cancelled_by_role, :cancelled_at,
			:confirmed_at, :started_at, :completed_at, :created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, b.ToDTO()); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}
	return nil
}

// GetByID retrieves a booking by ID
func (r *BookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var dto models.BookingDTO
	if err := r.db.GetContext(ctx, &dto, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFoundError{Resource: "booking", ID: id.String(), Err: err}
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return dto.ToBooking(), nil
}

// GetBooking satisfies the escrow ledger's view of the booking store
func (r *BookingRepo) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return r.GetByID(ctx, id)
}

// UpdateIfStatus writes every mutable column of the booking when the stored
// status still equals expected. Payment columns belong to the ledger and are
// left alone.
func (r *BookingRepo) UpdateIfStatus(ctx context.Context, b *models.Booking, expected models.BookingStatus) (bool, error) {
	dto := b.ToDTO()
	query := `
		UPDATE bookings SET
			origin_address = $1,
			origin_latitude = $2,
			origin_longitude = $3,
			pickup_time = $4,
			destination_address = $5,
			destination_latitude = $6,
			destination_longitude = $7,
			dropoff_time = $8,
			cargo_type = $9,
			cargo_weight_kg = $10,
			cargo_volume_m3 = $11,
			cargo_description = $12,
			distance_km = $13,
			rate_per_km = $14,
			minimum_charge = $15,
			estimated_amount = $16,
			status = $17,
			tracking_latitude = $18,
			tracking_longitude = $19,
			tracking_updated_at = $20,
			estimated_arrival = $21,
			cancel_reason = $22,
			cancelled_by = $23,
			cancelled_by_role = $24,
			cancelled_at = $25,
			confirmed_at = $26,
			started_at = $27,
			completed_at = $28,
			updated_at = $29
		WHERE id = $30 AND status = $31`

	result, err := r.db.ExecContext(ctx, query,
		dto.OriginAddress,
		dto.OriginLatitude,
		dto.OriginLongitude,
		dto.PickupTime,
		dto.DestinationAddress,
		dto.DestinationLatitude,
		dto.DestinationLongitude,
		dto.DropoffTime,
		dto.CargoType,
		dto.CargoWeightKg,
		dto.CargoVolumeM3,
		dto.CargoDescription,
		dto.DistanceKm,
		dto.RatePerKm,
		dto.MinimumCharge,
		dto.EstimatedAmount,
		dto.Status,
		dto.TrackingLatitude,
		dto.TrackingLongitude,
		dto.TrackingUpdatedAt,
		dto.EstimatedArrival,
		dto.CancelReason,
		dto.CancelledBy,
		dto.CancelledByRole,
		dto.CancelledAt,
		dto.ConfirmedAt,
		dto.StartedAt,
		dto.CompletedAt,
		dto.UpdatedAt,
		dto.ID,
		expected,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows == 1, nil
}

// CountActiveByTruck counts the truck's pending, confirmed and in-transit bookings
func (r *BookingRepo) CountActiveByTruck(ctx context.Context, truckID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE truck_id = $1 AND status IN (` + activeStatusList + `)`

	var count int
	if err := r.db.GetContext(ctx, &count, query, truckID); err != nil {
		return 0, fmt.Errorf("failed to count active bookings: %w", err)
	}
	return count, nil
}

// List returns the bookings matching filter, newest first
func (r *BookingRepo) List(ctx context.Context, filter models.BookingFilter) ([]*models.Booking, error) {
	var (
		conditions []string
		args       []interface{}
	)
	placeholder := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CustomerID != nil {
		conditions = append(conditions, "customer_id = "+placeholder(*filter.CustomerID))
	}
	if filter.TruckerID != nil {
		conditions = append(conditions, "trucker_id = "+placeholder(*filter.TruckerID))
	}
	if len(filter.Statuses) > 0 {
		in := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			in = append(in, placeholder(s))
		}
		conditions = append(conditions, "status IN ("+strings.Join(in, ", ")+")")
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	var dtos []models.BookingDTO
	if err := r.db.SelectContext(ctx, &dtos, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookings := make([]*models.Booking, 0, len(dtos))
	for i := range dtos {
		bookings = append(bookings, dtos[i].ToBooking())
	}
	return bookings, nil
}

// LinkPayment records a new payment on the booking
func (r *BookingRepo) LinkPayment(ctx context.Context, bookingID, paymentID uuid.UUID, status models.PaymentStatus) error {
	query := `UPDATE bookings SET payment_id = $1, payment_status = $2, updated_at = NOW() WHERE id = $3`
	return r.execOne(ctx, query, "link payment", bookingID, paymentID, status, bookingID)
}

// UpdatePaymentStatus mirrors the payment status onto the booking
func (r *BookingRepo) UpdatePaymentStatus(ctx context.Context, bookingID uuid.UUID, status models.PaymentStatus) error {
	query := `UPDATE bookings SET payment_status = $1, updated_at = NOW() WHERE id = $2`
	return r.execOne(ctx, query, "update payment status", bookingID, status, bookingID)
}

func (r *BookingRepo) execOne(ctx context.Context, query, action string, bookingID uuid.UUID, args ...interface{}) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NotFoundError{Resource: "booking", ID: bookingID.String()}
	}
	return nil
}
