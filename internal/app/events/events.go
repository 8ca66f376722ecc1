// Package events defines the outbound reservation lifecycle events.
// The broker integration is a port: handlers publish, infra decides
// whether that means Kafka or nothing at all.
package events

import (
	"context"
	"time"
)

const (
	KindReservationConfirmed = "reservation.confirmed"
	KindReservationCancelled = "reservation.cancelled"
)

// Event is one reservation lifecycle fact.
type Event struct {
	Kind          string    `json:"kind"`
	ReservationID string    `json:"reservation_id"`
	UnitID        string    `json:"unit_id"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	TotalAmount   int64     `json:"total_amount"`
	Currency      string    `json:"currency"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// Publisher emits events to the outside world. Publishing is
// best-effort; a failed publish never fails the reservation.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops events; used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error { return nil }
