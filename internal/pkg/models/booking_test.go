package models

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatus_Classification(t *testing.T) {
	assert.True(t, BookingStatusPending.IsActive())
	assert.True(t, BookingStatusInTransit.IsActive())
	assert.False(t, BookingStatusCompleted.IsActive())

	assert.True(t, BookingStatusCancelled.IsTerminal())
	assert.False(t, BookingStatusConfirmed.IsTerminal())

	assert.True(t, BookingStatus("in-transit").IsValid())
	assert.False(t, BookingStatus("in_transit").IsValid())
}

func TestBookingDTO_PreservesOptionalParts(t *testing.T) {
	pickup := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	volume := 3.5
	paymentID := uuid.New()
	eta := pickup.Add(2 * time.Hour)

	b := &Booking{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		TruckerID:  uuid.New(),
		TruckID:    uuid.New(),
		Origin: Endpoint{
			Address:     "Jl. Sudirman 1",
			Coordinates: &Coordinates{Latitude: -6.2, Longitude: 106.8},
			Time:        &pickup,
		},
		Destination: Endpoint{Address: "Bandung"},
		Cargo:       Cargo{Type: "furniture", WeightKg: 8, VolumeM3: &volume},
		Pricing:     Pricing{DistanceKm: 40, RatePerKm: 50, MinimumCharge: 1000, EstimatedAmount: 2000},
		Payment:     BookingPayment{Method: "ewallet", Status: PaymentStatusProcessing, PaymentID: &paymentID},
		Status:      BookingStatusInTransit,
		Tracking: &Tracking{
			CurrentLocation:  Coordinates{Latitude: -6.5, Longitude: 107},
			UpdatedAt:        pickup.Add(time.Hour),
			EstimatedArrival: &eta,
		},
		CreatedAt: pickup,
		UpdatedAt: pickup,
	}

	got := b.ToDTO().ToBooking()

	require.NotNil(t, got.Origin.Coordinates)
	assert.Nil(t, got.Destination.Coordinates)
	assert.Equal(t, pickup, *got.Origin.Time)
	assert.Nil(t, got.Destination.Time)
	assert.Equal(t, volume, *got.Cargo.VolumeM3)
	assert.Equal(t, paymentID, *got.Payment.PaymentID)
	require.NotNil(t, got.Tracking)
	assert.Equal(t, eta, *got.Tracking.EstimatedArrival)
	assert.Nil(t, got.Cancellation)
	assert.Equal(t, b.Pricing, got.Pricing)
}

func TestBooking_PartyRole(t *testing.T) {
	b := &Booking{CustomerID: uuid.New(), TruckerID: uuid.New()}

	role, ok := b.PartyRole(b.CustomerID)
	assert.True(t, ok)
	assert.Equal(t, RoleCustomer, role)

	role, ok = b.PartyRole(b.TruckerID)
	assert.True(t, ok)
	assert.Equal(t, RoleTrucker, role)

	_, ok = b.PartyRole(uuid.New())
	assert.False(t, ok)
}

func TestCoordinates_Valid(t *testing.T) {
	tests := []struct {
		name string
		c    *Coordinates
		want bool
	}{
		{"nil", nil, false},
		{"zero point", &Coordinates{}, false},
		{"nan", &Coordinates{Latitude: math.NaN(), Longitude: 10}, false},
		{"latitude out of range", &Coordinates{Latitude: 91, Longitude: 10}, false},
		{"jakarta", &Coordinates{Latitude: -6.2, Longitude: 106.8}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.Valid())
		})
	}
}

func TestPayment_BlocksNewPayment(t *testing.T) {
	for status, blocks := range map[PaymentStatus]bool{
		PaymentStatusPending:    true,
		PaymentStatusProcessing: true,
		PaymentStatusCompleted:  true,
		PaymentStatusFailed:     false,
		PaymentStatusCancelled:  false,
		PaymentStatusRefunded:   false,
	} {
		p := &Payment{Status: status}
		assert.Equal(t, blocks, p.BlocksNewPayment(), string(status))
	}
}
