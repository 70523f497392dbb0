// Package queue defines message payloads exchanged over the message broker.
package queue

import "time"

// Hall event types.
const (
	HallCreated  = "hall.created"
	SeatReserved = "seat.reserved"
	SeatCanceled = "seat.canceled"
	HallDeleted  = "hall.deleted"
)

// HallEvent is published after every persisted change to the hall
// collection.  It carries the hall's state after the change so
// consumers do not need access to the data store.
type HallEvent struct {
	Type       string `json:"type"`
	Hall       string `json:"hall"`
	Seat       string `json:"seat,omitempty"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Reserved   int    `json:"reserved"`
	OccurredAt string `json:"occurred_at"`
}

// Stamp sets OccurredAt to t in RFC 3339 UTC.
func (e *HallEvent) Stamp(t time.Time) {
	e.OccurredAt = t.UTC().Format(time.RFC3339)
}
