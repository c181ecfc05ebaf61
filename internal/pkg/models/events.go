package models

import "time"

// BookingEvent is published on every committed status change
type BookingEvent struct {
	BookingID  string        `json:"booking_id"`
	CustomerID string        `json:"customer_id"`
	TruckerID  string        `json:"trucker_id"`
	TruckID    string        `json:"truck_id"`
	From       BookingStatus `json:"from,omitempty"`
	Status     BookingStatus `json:"status"`
	ActorRole  Role          `json:"actor_role"`
	Timestamp  time.Time     `json:"timestamp"`
}

// TrackingEvent is published on every accepted tracking update
type TrackingEvent struct {
	BookingID        string      `json:"booking_id"`
	TruckerID        string      `json:"trucker_id"`
	Location         Coordinates `json:"location"`
	EstimatedArrival *time.Time  `json:"estimated_arrival,omitempty"`
	Timestamp        time.Time   `json:"timestamp"`
}
