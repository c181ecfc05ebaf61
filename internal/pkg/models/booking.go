package models

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusInTransit BookingStatus = "in-transit"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// ActiveBookingStatuses are the statuses that keep a truck occupied
var ActiveBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
	BookingStatusInTransit,
}

// SequenceableStatuses are the statuses the delivery sequencer orders
var SequenceableStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
}

// IsValid reports whether s is a known booking status
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInTransit,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// IsActive reports whether the booking still holds its truck
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed || s == BookingStatusInTransit
}

// IsTerminal reports whether no further transition is possible
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// Cargo describes what is being hauled
type Cargo struct {
	Type        string   `json:"type"`
	WeightKg    float64  `json:"weight_kg"`
	VolumeM3    *float64 `json:"volume_m3,omitempty"`
	Description string   `json:"description,omitempty"`
}

// Pricing is the price snapshot computed for a booking
type Pricing struct {
	DistanceKm      float64 `json:"distance_km"`
	RatePerKm       float64 `json:"rate_per_km"`
	MinimumCharge   float64 `json:"minimum_charge"`
	EstimatedAmount float64 `json:"estimated_amount"`
}

// BookingPayment is the booking's view of its payment. Status is a
// projection of the Payment record, not an independent value.
type BookingPayment struct {
	Method    string        `json:"method"`
	Status    PaymentStatus `json:"status"`
	PaymentID *uuid.UUID    `json:"payment_id,omitempty"`
}

// Tracking is the in-transit location snapshot
type Tracking struct {
	CurrentLocation  Coordinates `json:"current_location"`
	UpdatedAt        time.Time   `json:"updated_at"`
	EstimatedArrival *time.Time  `json:"estimated_arrival,omitempty"`
}

// Cancellation records who cancelled a booking and why
type Cancellation struct {
	Reason      string    `json:"reason"`
	CancelledBy uuid.UUID `json:"cancelled_by"`
	Role        Role      `json:"role"`
	CancelledAt time.Time `json:"cancelled_at"`
}

// Booking represents one transport job
type Booking struct {
	ID           uuid.UUID      `json:"id"`
	CustomerID   uuid.UUID      `json:"customer_id"`
	TruckerID    uuid.UUID      `json:"trucker_id"`
	TruckID      uuid.UUID      `json:"truck_id"`
	Origin       Endpoint       `json:"origin"`
	Destination  Endpoint       `json:"destination"`
	Cargo        Cargo          `json:"cargo"`
	Pricing      Pricing        `json:"pricing"`
	Payment      BookingPayment `json:"payment"`
	Status       BookingStatus  `json:"status"`
	Tracking     *Tracking      `json:"tracking,omitempty"`
	Cancellation *Cancellation  `json:"cancellation,omitempty"`
	ConfirmedAt  *time.Time     `json:"confirmed_at,omitempty"`
	StartedAt    *time.Time     `json:"started_at,omitempty"`
	CompletedAt  *time.Time     `json:"completed_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// PartyRole returns the role the user plays on this booking, if any
func (b *Booking) PartyRole(userID uuid.UUID) (Role, bool) {
	switch userID {
	case b.CustomerID:
		return RoleCustomer, true
	case b.TruckerID:
		return RoleTrucker, true
	}
	return "", false
}

// CreateBookingRequest is the input for creating a booking
type CreateBookingRequest struct {
	TruckID       uuid.UUID `json:"truck_id"`
	Origin        Endpoint  `json:"origin"`
	Destination   Endpoint  `json:"destination"`
	Cargo         Cargo     `json:"cargo"`
	PaymentMethod string    `json:"payment_method"`
}

// EditBookingRequest carries the fields a customer may change while pending
type EditBookingRequest struct {
	Origin      *Endpoint `json:"origin,omitempty"`
	Destination *Endpoint `json:"destination,omitempty"`
	Cargo       *Cargo    `json:"cargo,omitempty"`
}

// TransitionRequest asks for a status change
type TransitionRequest struct {
	Status BookingStatus `json:"status"`
	Reason string        `json:"reason,omitempty"`
}

// CreateBookingResult is returned from booking creation. TruckBusy is
// advisory: the truck already had active bookings.
type CreateBookingResult struct {
	Booking   *Booking `json:"booking"`
	TruckBusy bool     `json:"truck_busy"`
}

// TransitionResult is returned from a status transition. Warnings lists side
// effects that failed after the new status was persisted.
type TransitionResult struct {
	Booking                    *Booking `json:"booking"`
	Payment                    *Payment `json:"payment,omitempty"`
	ManualInterventionRequired bool     `json:"manual_intervention_required"`
	Warnings                   []string `json:"warnings,omitempty"`
}

// BookingFilter narrows booking listings
type BookingFilter struct {
	CustomerID *uuid.UUID
	TruckerID  *uuid.UUID
	Statuses   []BookingStatus
}

// BookingDTO is used for database operations to flatten the nested structs
type BookingDTO struct {
	ID                   uuid.UUID       `db:"id"`
	CustomerID           uuid.UUID       `db:"customer_id"`
	TruckerID            uuid.UUID       `db:"trucker_id"`
	TruckID              uuid.UUID       `db:"truck_id"`
	OriginAddress        string          `db:"origin_address"`
	OriginLatitude       sql.NullFloat64 `db:"origin_latitude"`
	OriginLongitude      sql.NullFloat64 `db:"origin_longitude"`
	PickupTime           sql.NullTime    `db:"pickup_time"`
	DestinationAddress   string          `db:"destination_address"`
	DestinationLatitude  sql.NullFloat64 `db:"destination_latitude"`
	DestinationLongitude sql.NullFloat64 `db:"destination_longitude"`
	DropoffTime          sql.NullTime    `db:"dropoff_time"`
	CargoType            string          `db:"cargo_type"`
	CargoWeightKg        float64         `db:"cargo_weight_kg"`
	CargoVolumeM3        sql.NullFloat64 `db:"cargo_volume_m3"`
	CargoDescription     string          `db:"cargo_description"`
	DistanceKm           float64         `db:"distance_km"`
	RatePerKm            float64         `db:"rate_per_km"`
	MinimumCharge        float64         `db:"minimum_charge"`
	EstimatedAmount      float64         `db:"estimated_amount"`
	PaymentMethod        string          `db:"payment_method"`
	PaymentStatus        string          `db:"payment_status"`
	PaymentID            uuid.NullUUID   `db:"payment_id"`
	Status               BookingStatus   `db:"status"`
	TrackingLatitude     sql.NullFloat64 `db:"tracking_latitude"`
	TrackingLongitude    sql.NullFloat64 `db:"tracking_longitude"`
	TrackingUpdatedAt    sql.NullTime    `db:"tracking_updated_at"`
	EstimatedArrival     sql.NullTime    `db:"estimated_arrival"`
	CancelReason         sql.NullString  `db:"cancel_reason"`
	CancelledBy          uuid.NullUUID   `db:"cancelled_by"`
	CancelledByRole      sql.NullString  `db:"cancelled_by_role"`
	CancelledAt          sql.NullTime    `db:"cancelled_at"`
	ConfirmedAt          sql.NullTime    `db:"confirmed_at"`
	StartedAt            sql.NullTime    `db:"started_at"`
	CompletedAt          sql.NullTime    `db:"completed_at"`
	CreatedAt            time.Time       `db:"created_at"`
	UpdatedAt            time.Time       `db:"updated_at"`
}

// ToDTO converts a Booking to a BookingDTO
func (b *Booking) ToDTO() *BookingDTO {
	dto := &BookingDTO{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		TruckerID:          b.TruckerID,
		TruckID:            b.TruckID,
		OriginAddress:      b.Origin.Address,
		PickupTime:         nullTime(b.Origin.Time),
		DestinationAddress: b.Destination.Address,
		DropoffTime:        nullTime(b.Destination.Time),
		CargoType:          b.Cargo.Type,
		CargoWeightKg:      b.Cargo.WeightKg,
		CargoVolumeM3:      nullFloat(b.Cargo.VolumeM3),
		CargoDescription:   b.Cargo.Description,
		DistanceKm:         b.Pricing.DistanceKm,
		RatePerKm:          b.Pricing.RatePerKm,
		MinimumCharge:      b.Pricing.MinimumCharge,
		EstimatedAmount:    b.Pricing.EstimatedAmount,
		PaymentMethod:      b.Payment.Method,
		PaymentStatus:      string(b.Payment.Status),
		Status:             b.Status,
		ConfirmedAt:        nullTime(b.ConfirmedAt),
		StartedAt:          nullTime(b.StartedAt),
		CompletedAt:        nullTime(b.CompletedAt),
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
	if b.Origin.Coordinates != nil {
		dto.OriginLatitude = sql.NullFloat64{Float64: b.Origin.Coordinates.Latitude, Valid: true}
		dto.OriginLongitude = sql.NullFloat64{Float64: b.Origin.Coordinates.Longitude, Valid: true}
	}
	if b.Destination.Coordinates != nil {
		dto.DestinationLatitude = sql.NullFloat64{Float64: b.Destination.Coordinates.Latitude, Valid: true}
		dto.DestinationLongitude = sql.NullFloat64{Float64: b.Destination.Coordinates.Longitude, Valid: true}
	}
	if b.Payment.PaymentID != nil {
		dto.PaymentID = uuid.NullUUID{UUID: *b.Payment.PaymentID, Valid: true}
	}
	if b.Tracking != nil {
		dto.TrackingLatitude = sql.NullFloat64{Float64: b.Tracking.CurrentLocation.Latitude, Valid: true}
		dto.TrackingLongitude = sql.NullFloat64{Float64: b.Tracking.CurrentLocation.Longitude, Valid: true}
		dto.TrackingUpdatedAt = sql.NullTime{Time: b.Tracking.UpdatedAt, Valid: true}
		dto.EstimatedArrival = nullTime(b.Tracking.EstimatedArrival)
	}
	if b.Cancellation != nil {
		dto.CancelReason = sql.NullString{String: b.Cancellation.Reason, Valid: true}
		dto.CancelledBy = uuid.NullUUID{UUID: b.Cancellation.CancelledBy, Valid: true}
		dto.CancelledByRole = sql.NullString{String: string(b.Cancellation.Role), Valid: true}
		dto.CancelledAt = sql.NullTime{Time: b.Cancellation.CancelledAt, Valid: true}
	}
	return dto
}

// ToBooking converts a BookingDTO to a Booking
func (dto *BookingDTO) ToBooking() *Booking {
	b := &Booking{
		ID:         dto.ID,
		CustomerID: dto.CustomerID,
		TruckerID:  dto.TruckerID,
		TruckID:    dto.TruckID,
		Origin: Endpoint{
			Address:     dto.OriginAddress,
			Coordinates: coordinates(dto.OriginLatitude, dto.OriginLongitude),
			Time:        timePtr(dto.PickupTime),
		},
		Destination: Endpoint{
			Address:     dto.DestinationAddress,
			Coordinates: coordinates(dto.DestinationLatitude, dto.DestinationLongitude),
			Time:        timePtr(dto.DropoffTime),
		},
		Cargo: Cargo{
			Type:        dto.CargoType,
			WeightKg:    dto.CargoWeightKg,
			Description: dto.CargoDescription,
		},
		Pricing: Pricing{
			DistanceKm:      dto.DistanceKm,
			RatePerKm:       dto.RatePerKm,
			MinimumCharge:   dto.MinimumCharge,
			EstimatedAmount: dto.EstimatedAmount,
		},
		Payment: BookingPayment{
			Method: dto.PaymentMethod,
			Status: PaymentStatus(dto.PaymentStatus),
		},
		Status:      dto.Status,
		ConfirmedAt: timePtr(dto.ConfirmedAt),
		StartedAt:   timePtr(dto.StartedAt),
		CompletedAt: timePtr(dto.CompletedAt),
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	}
	if dto.CargoVolumeM3.Valid {
		v := dto.CargoVolumeM3.Float64
		b.Cargo.VolumeM3 = &v
	}
	if dto.PaymentID.Valid {
		id := dto.PaymentID.UUID
		b.Payment.PaymentID = &id
	}
	if loc := coordinates(dto.TrackingLatitude, dto.TrackingLongitude); loc != nil && dto.TrackingUpdatedAt.Valid {
		b.Tracking = &Tracking{
			CurrentLocation:  *loc,
			UpdatedAt:        dto.TrackingUpdatedAt.Time,
			EstimatedArrival: timePtr(dto.EstimatedArrival),
		}
	}
	if dto.CancelledAt.Valid {
		b.Cancellation = &Cancellation{
			Reason:      dto.CancelReason.String,
			CancelledBy: dto.CancelledBy.UUID,
			Role:        Role(dto.CancelledByRole.String),
			CancelledAt: dto.CancelledAt.Time,
		}
	}
	return b
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

func coordinates(lat, lng sql.NullFloat64) *Coordinates {
	if !lat.Valid || !lng.Valid {
		return nil
	}
	return &Coordinates{Latitude: lat.Float64, Longitude: lng.Float64}
}
