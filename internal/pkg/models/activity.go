package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityEntry is one append-only audit record in a truck's activity log
type ActivityEntry struct {
	ID        string                 `json:"id" bson:"_id"`
	TruckID   string                 `json:"truck_id" bson:"truck_id"`
	BookingID string                 `json:"booking_id" bson:"booking_id"`
	Action    string                 `json:"action" bson:"action"`
	ActorID   string                 `json:"actor_id" bson:"actor_id"`
	ActorRole Role                   `json:"actor_role" bson:"actor_role"`
	Metadata  map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp" bson:"timestamp"`
}

// NewActivityEntry builds an entry for an action taken on a booking
func NewActivityEntry(truckID, bookingID uuid.UUID, action string, actor Actor, metadata map[string]interface{}, at time.Time) ActivityEntry {
	return ActivityEntry{
		ID:        uuid.New().String(),
		TruckID:   truckID.String(),
		BookingID: bookingID.String(),
		Action:    action,
		ActorID:   actor.UserID.String(),
		ActorRole: actor.Role,
		Metadata:  metadata,
		Timestamp: at,
	}
}
