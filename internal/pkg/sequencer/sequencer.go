// Package sequencer orders a trucker's open bookings into an advisory
// visiting order using a greedy nearest-neighbour walk.
package sequencer

import (
	"time"

	"github.com/piresc/angkut/internal/pkg/models"
	"github.com/piresc/angkut/internal/utils"
)

// DefaultMinutesPerKm is used when no travel pace is configured
const DefaultMinutesPerKm = 2.0

// unknownDistanceKm ranks bookings without usable coordinates last
const unknownDistanceKm = 1e9

// Sequencer computes visiting orders. It holds no state besides its tuning.
type Sequencer struct {
	minutesPerKm float64
}

// New creates a sequencer travelling at minutesPerKm
func New(minutesPerKm float64) *Sequencer {
	if minutesPerKm <= 0 {
		minutesPerKm = DefaultMinutesPerKm
	}
	return &Sequencer{minutesPerKm: minutesPerKm}
}

// Sequence returns bookings in visiting order with 1-based positions and
// estimated pickup times. The input slice is not modified.
func (s *Sequencer) Sequence(bookings []*models.Booking, now time.Time) []models.SequencedBooking {
	if len(bookings) == 0 {
		return []models.SequencedBooking{}
	}

	placed := make([]bool, len(bookings))
	out := make([]models.SequencedBooking, 0, len(bookings))

	seed := seedIndex(bookings)
	placed[seed] = true
	eta := now
	if t := bookings[seed].Origin.Time; t != nil {
		eta = *t
	}
	out = append(out, models.SequencedBooking{Position: 1, Booking: bookings[seed], EstimatedPickup: eta})

	current := bookings[seed]
	for len(out) < len(bookings) {
		from := departurePoint(current)

		next, nextKm := -1, 0.0
		for i, b := range bookings {
			if placed[i] {
				continue
			}
			km := distanceKm(from, b.Origin.Coordinates)
			if next == -1 || km < nextKm {
				next, nextKm = i, km
			}
		}

		placed[next] = true
		b := bookings[next]
		if b.Origin.Time != nil {
			eta = *b.Origin.Time
		} else if nextKm < unknownDistanceKm {
			eta = eta.Add(time.Duration(nextKm * s.minutesPerKm * float64(time.Minute)))
		}
		// with no usable distance the previous estimate is carried over

		out = append(out, models.SequencedBooking{Position: len(out) + 1, Booking: b, EstimatedPickup: eta})
		current = b
	}
	return out
}

// seedIndex picks the booking with the earliest requested pickup. Bookings
// without a pickup time only seed when none has one; ties keep input order.
func seedIndex(bookings []*models.Booking) int {
	seed := 0
	for i := 1; i < len(bookings); i++ {
		if earlier(bookings[i].Origin.Time, bookings[seed].Origin.Time) {
			seed = i
		}
	}
	return seed
}

func earlier(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	}
	return a.Before(*b)
}

func departurePoint(b *models.Booking) *models.Coordinates {
	if b.Destination.Coordinates.Valid() {
		return b.Destination.Coordinates
	}
	return b.Origin.Coordinates
}

func distanceKm(from, to *models.Coordinates) float64 {
	if !from.Valid() || !to.Valid() {
		return unknownDistanceKm
	}
	return utils.CalculateDistance(*from, *to)
}
