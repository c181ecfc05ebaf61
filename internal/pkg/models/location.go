package models

import (
	"math"
	"time"
)

// Coordinates is a WGS84 point
type Coordinates struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// Valid reports whether the point is usable for distance computations.
// A nil point, NaN components, out-of-range values and the zero point are
// all treated as missing.
func (c *Coordinates) Valid() bool {
	if c == nil {
		return false
	}
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	if c.Latitude < -90 || c.Latitude > 90 || c.Longitude < -180 || c.Longitude > 180 {
		return false
	}
	return c.Latitude != 0 || c.Longitude != 0
}

// Equal compares two optional points
func (c *Coordinates) Equal(other *Coordinates) bool {
	if c == nil || other == nil {
		return c == nil && other == nil
	}
	return c.Latitude == other.Latitude && c.Longitude == other.Longitude
}

// Endpoint is one end of a booking route
type Endpoint struct {
	Address     string       `json:"address"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Time        *time.Time   `json:"time,omitempty"`
}

// GeocodeResult is what the geocoder returns for an address
type GeocodeResult struct {
	Coordinates       Coordinates `json:"coordinates"`
	NormalizedAddress string      `json:"normalized_address"`
}

// TrackingUpdate is a location report from the trucker
type TrackingUpdate struct {
	Latitude         float64    `json:"latitude"`
	Longitude        float64    `json:"longitude"`
	EstimatedArrival *time.Time `json:"estimated_arrival,omitempty"`
}
