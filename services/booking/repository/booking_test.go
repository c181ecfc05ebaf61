package repository_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/angkut/internal/pkg/apperror"
	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/piresc/angkut/services/booking/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingCols = []string{
	"id", "customer_id", "trucker_id", "truck_id",
	"origin_address", "origin_latitude", "origin_longitude", "pickup_time",
	"destination_address", "destination_latitude", "destination_longitude", "dropoff_time",
	"cargo_type", "cargo_weight_kg", "cargo_volume_m3", "cargo_description",
	"distance_km", "rate_per_km", "minimum_charge", "estimated_amount",
	"payment_method", "payment_status", "payment_id", "status",
	"tracking_latitude", "tracking_longitude", "tracking_updated_at", "estimated_arrival",
	"cancel_reason", "cancelled_by", "cancelled_by_role", "cancelled_at",
	"confirmed_at", "started_at", "completed_at", "created_at", "updated_at",
}

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)
	db := sqlx.NewDb(mockDB, "sqlmock")
	return db, mock
}

func bookingRow(rows *sqlmock.Rows, id uuid.UUID, status models.BookingStatus, now time.Time) *sqlmock.Rows {
	return rows.AddRow(
		id.String(), uuid.New().String(), uuid.New().String(), uuid.New().String(),
		"Jl. Sudirman 1", -6.2, 106.8, nil,
		"Jl. Ahmad Yani 9", -6.24, 107.0, nil,
		"furniture", 8.0, nil, "",
		40.0, 50.0, 1000.0, 2000.0,
		"ewallet", "pending", nil, string(status),
		nil, nil, nil, nil,
		nil, nil, nil, nil,
		nil, nil, nil, now, now,
	)
}

func anyArgs(n int) []driver.Value {
	args := make([]driver.Value, n)
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	return args
}

func TestCreateBooking_Success(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewBookingRepository(&models.Config{}, db)

	b := &models.Booking{
		ID:          uuid.New(),
		Origin:      models.Endpoint{Address: "A", Coordinates: &models.Coordinates{Latitude: -6.2, Longitude: 106.8}},
		Destination: models.Endpoint{Address: "B"},
		Cargo:       models.Cargo{Type: "boxes", WeightKg: 3},
		Status:      models.BookingStatusPending,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(anyArgs(len(bookingCols))...).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), b)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewBookingRepository(&models.Config{}, db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(anyArgs(len(bookingCols))...).
		WillReturnError(assert.AnError)

	err := repo.Create(context.Background(), &models.Booking{ID: uuid.New()})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestGetBookingByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewBookingRepository(&models.Config{}, db)

	id := uuid.New()
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(bookingRow(sqlmock.NewRows(bookingCols), id, models.BookingStatusConfirmed, now))

	b, err := repo.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, b.ID)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	require.NotNil(t, b.Origin.Coordinates)
	assert.Equal(t, -6.2, b.Origin.Coordinates.Latitude)
	assert.Nil(t, b.Origin.Time)
	assert.Nil(t, b.Tracking)
	assert.Nil(t, b.Cancellation)
	assert.Nil(t, b.Payment.PaymentID)
	assert.Equal(t, 2000.0, b.Pricing.EstimatedAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBookingByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewBookingRepository(&models.Config{}, db)

	id := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings WHERE id = $1")).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetBooking(context.Background(), id)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateIfStatus(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{name: "status matched", affected: 1, want: true},
		{name: "status moved on", affected: 0, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := repository.NewBookingRepository(&models.Config{}, db)

			b := &models.Booking{ID: uuid.New(), Status: models.BookingStatusConfirmed, UpdatedAt: time.Now().UTC()}

			args := anyArgs(31)
			args[16] = models.BookingStatusConfirmed
			args[29] = b.ID
			args[30] = models.BookingStatusPending
			mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET")).
				WithArgs(args...).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			ok, err := repo.UpdateIfStatus(context.Background(), b, models.BookingStatusPending)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCountActiveByTruck(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewBookingRepository(&models.Config{}, db)

	truckID := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("status IN ('pending', 'confirmed', 'in-transit')")).
		WithArgs(truckID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountActiveByTruck(context.Background(), truckID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestListBookings_Filtered(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewBookingRepository(&models.Config{}, db)

	truckerID := uuid.New()
	now := time.Now().UTC()
	rows := sqlmock.NewRows(bookingCols)
	bookingRow(rows, uuid.New(), models.BookingStatusPending, now)
	bookingRow(rows, uuid.New(), models.BookingStatusConfirmed, now)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE trucker_id = $1 AND status IN ($2, $3) ORDER BY created_at DESC")).
		WithArgs(truckerID, models.BookingStatusPending, models.BookingStatusConfirmed).
		WillReturnRows(rows)

	list, err := repo.List(context.Background(), models.BookingFilter{
		TruckerID: &truckerID,
		Statuses:  models.SequenceableStatuses,
	})
	require.NoError(t, err)
	assert.Len(t, list, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBookings_Unfiltered(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewBookingRepository(&models.Config{}, db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings ORDER BY created_at DESC")).
		WillReturnRows(sqlmock.NewRows(bookingCols))

	list, err := repo.List(context.Background(), models.BookingFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLinkPayment(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewBookingRepository(&models.Config{}, db)

	bookingID, paymentID := uuid.New(), uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET payment_id = $1, payment_status = $2")).
		WithArgs(paymentID, models.PaymentStatusProcessing, bookingID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.LinkPayment(context.Background(), bookingID, paymentID, models.PaymentStatusProcessing)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePaymentStatus_UnknownBooking(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := repository.NewBookingRepository(&models.Config{}, db)

	bookingID := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET payment_status = $1")).
		WithArgs(models.PaymentStatusRefunded, bookingID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdatePaymentStatus(context.Background(), bookingID, models.PaymentStatusRefunded)
	assert.True(t, apperror.IsNotFound(err))
}
