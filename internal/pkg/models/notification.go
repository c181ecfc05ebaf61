package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies a notification job
type NotificationType string

const (
	NotificationBookingCreated     NotificationType = "booking_created"
	NotificationBookingConfirmed   NotificationType = "booking_confirmed"
	NotificationBookingInTransit   NotificationType = "booking_in_transit"
	NotificationBookingCancelled   NotificationType = "booking_cancelled"
	NotificationReviewRequest      NotificationType = "review_request"
	NotificationPaymentCompleted   NotificationType = "payment_completed"
	NotificationPayoutReleased     NotificationType = "payout_released"
	NotificationRefundProcessed    NotificationType = "refund_processed"
	NotificationRefundManualReview NotificationType = "refund_manual_review"
)

// Notification is a best-effort message to a single user
type Notification struct {
	ID               uuid.UUID        `json:"id"`
	UserID           uuid.UUID        `json:"user_id"`
	Type             NotificationType `json:"type"`
	Title            string           `json:"title"`
	Message          string           `json:"message"`
	RelatedBookingID *uuid.UUID       `json:"related_booking_id,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
}
