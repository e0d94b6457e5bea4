// Package queue defines message payloads exchanged over the message broker.
package queue

// NotificationEvent is published whenever a booking transition requires
// an outbound message: a new request (to the admin) or a decision (to
// the booking holder).  It carries everything the delivery consumer
// needs so that no primary-database lookup happens on the delivery
// path.
type NotificationEvent struct {
    Recipient  string `json:"recipient"`
    Subject    string `json:"subject"`
    Body       string `json:"body"` // HTML
    EnqueuedAt string `json:"enqueued_at"`
}
