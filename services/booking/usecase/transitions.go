package usecase

import (
	"fmt"
	"time"

	"github.com/piresc/angkut/internal/pkg/apperror"
	"github.com/piresc/angkut/internal/pkg/models"
)

// transitions lists every allowed status edge. Completed and cancelled have
// no outgoing edges.
var transitions = map[models.BookingStatus][]models.BookingStatus{
	models.BookingStatusPending:   {models.BookingStatusConfirmed, models.BookingStatusCancelled},
	models.BookingStatusConfirmed: {models.BookingStatusInTransit, models.BookingStatusCancelled},
	models.BookingStatusInTransit: {models.BookingStatusCompleted, models.BookingStatusCancelled},
}

// validateTransition rejects any edge missing from the table
func validateTransition(from, to models.BookingStatus) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return apperror.InvalidTransition(string(from), string(to))
}

// authorizeTransition checks that the actor may take an allowed edge.
// Customers may only cancel before the truck leaves; the assigned trucker
// drives the booking forward and may cancel from any open state.
func authorizeTransition(b *models.Booking, actor models.Actor, from, to models.BookingStatus) error {
	if actor.IsAdmin() {
		return nil
	}

	role, ok := b.PartyRole(actor.UserID)
	if !ok {
		return apperror.AuthorizationError{Action: "change booking status", Msg: "not a party to this booking"}
	}

	switch role {
	case models.RoleCustomer:
		if to == models.BookingStatusCancelled &&
			(from == models.BookingStatusPending || from == models.BookingStatusConfirmed) {
			return nil
		}
	case models.RoleTrucker:
		return nil
	}

	return apperror.AuthorizationError{
		Action: "change booking status",
		Msg:    fmt.Sprintf("%s cannot move booking from %s to %s", role, from, to),
	}
}

// applyTransition stamps the fields that belong to entering status to
func applyTransition(b *models.Booking, to models.BookingStatus, actor models.Actor, reason string, at time.Time) {
	b.Status = to
	b.UpdatedAt = at

	switch to {
	case models.BookingStatusConfirmed:
		b.ConfirmedAt = models.TimePtr(at)
	case models.BookingStatusInTransit:
		b.StartedAt = models.TimePtr(at)
	case models.BookingStatusCompleted:
		b.CompletedAt = models.TimePtr(at)
		b.Tracking = nil
	case models.BookingStatusCancelled:
		b.Cancellation = &models.Cancellation{
			Reason:      reason,
			CancelledBy: actor.UserID,
			Role:        actor.Role,
			CancelledAt: at,
		}
		b.Tracking = nil
	}
}
