package models

import "time"

// SequencedBooking is one entry of an advisory visiting order
type SequencedBooking struct {
	Position        int       `json:"position"`
	Booking         *Booking  `json:"booking"`
	EstimatedPickup time.Time `json:"estimated_pickup"`
}
