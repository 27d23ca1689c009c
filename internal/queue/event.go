// Package queue defines message payloads exchanged over the message
// broker and the background consumer for them.
package queue

// BookingConfirmedEvent is published after a booking commits.  It
// carries enough for downstream consumers to log or notify without
// querying the primary database.
type BookingConfirmedEvent struct {
	BookingID   uint64 `json:"booking_id"`
	UserID      uint64 `json:"user_id"`
	PlaceID     uint64 `json:"place_id"`
	VenueName   string `json:"venue_name"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	ConfirmedAt string `json:"confirmed_at"`
}
