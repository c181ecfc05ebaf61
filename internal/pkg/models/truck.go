package models

import (
	"time"

	"github.com/google/uuid"
)

// Truck is the subset of the truck record this service reads and writes.
// RatePerKm and MinimumCharge are nil when the owner has not set them.
type Truck struct {
	ID            uuid.UUID `json:"id" db:"id"`
	OwnerID       uuid.UUID `json:"owner_id" db:"owner_id"`
	PlateNumber   string    `json:"plate_number" db:"plate_number"`
	CapacityKg    float64   `json:"capacity_kg" db:"capacity_kg"`
	RatePerKm     *float64  `json:"rate_per_km,omitempty" db:"rate_per_km"`
	MinimumCharge *float64  `json:"minimum_charge,omitempty" db:"minimum_charge"`
	IsAvailable   bool      `json:"is_available" db:"is_available"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}
