package constants

import "fmt"

// JetStream streams
const (
	BookingStream = "BOOKING_STREAM"
	PaymentStream = "PAYMENT_STREAM"
)

// NATS Subjects
const (
	// Booking events
	SubjectBookingAll      = "booking.>"
	SubjectBookingStatus   = "booking.status.%s" // Format: booking.status.{status}
	SubjectBookingTracking = "booking.tracking"

	// Payment provider results
	SubjectPaymentAll    = "payment.>"
	SubjectPaymentResult = "payment.result"
)

// Durable consumers
const (
	ConsumerPaymentResult = "payment_result_booking"
)

// BookingStatusSubject returns the subject a status change is published on
func BookingStatusSubject(status string) string {
	return fmt.Sprintf(SubjectBookingStatus, status)
}
