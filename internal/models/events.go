package models

import "time"

// Event subjects published to the streaming bus
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCompleted = "booking.completed"
	EventBookingCancelled = "booking.cancelled"
	EventPaymentUpdated   = "payment.updated"
	EventReviewCreated    = "review.created"
	EventReviewDeleted    = "review.deleted"
)

// BookingEvent is published on booking lifecycle transitions
type BookingEvent struct {
	BookingID string    `json:"booking_id"`
	PackageID string    `json:"package_id"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// PaymentEvent is published when a booking's payment status changes
type PaymentEvent struct {
	BookingID     string    `json:"booking_id"`
	PaymentStatus string    `json:"payment_status"`
	PaymentID     string    `json:"payment_id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}

// ReviewEvent is published when a review is created or removed
type ReviewEvent struct {
	ReviewID  string    `json:"review_id"`
	PackageID string    `json:"package_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}
