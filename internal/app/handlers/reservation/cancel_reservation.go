package reservation

import (
	"context"
	"log/slog"
	"time"

	"domoreserva/internal/app/commands"
	"domoreserva/internal/app/events"
	domainreservation "domoreserva/internal/domain/reservation"
)

const cancelReservationKey = "reservation.cancel"

type CancelReservationCommand struct {
	ReservationID string
}

func (CancelReservationCommand) Key() string { return cancelReservationKey }

type CancelReservationResult struct {
	ReservationID string `json:"reservation_id"`
	Status        string `json:"status"`
}

type CancelReservationHandler struct {
	Reservations domainreservation.Repository
	Events       events.Publisher
	Now          func() time.Time
	Logger       *slog.Logger
}

func (h *CancelReservationHandler) Handle(ctx context.Context, cmd CancelReservationCommand) (*CancelReservationResult, error) {
	res, err := h.Reservations.ByID(ctx, domainreservation.ReservationID(cmd.ReservationID))
	if err != nil {
		return nil, err
	}
	now := h.now()
	if err := res.Cancel(now); err != nil {
		return nil, err
	}
	if err := h.Reservations.Save(ctx, res); err != nil {
		return nil, err
	}
	if h.Events != nil {
		event := events.Event{
			Kind:          events.KindReservationCancelled,
			ReservationID: string(res.ID),
			UnitID:        string(res.UnitID),
			CheckIn:       res.Stay.CheckIn.String(),
			CheckOut:      res.Stay.CheckOut.String(),
			TotalAmount:   res.Quote.Total.Amount,
			Currency:      res.Quote.Total.Currency,
			OccurredAt:    now,
		}
		if err := h.Events.Publish(ctx, event); err != nil {
			h.logger().Warn("event publish failed", "kind", event.Kind, "error", err)
		}
	}
	return &CancelReservationResult{ReservationID: string(res.ID), Status: string(res.State)}, nil
}

func (h *CancelReservationHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *CancelReservationHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

var _ commands.Handler[CancelReservationCommand, *CancelReservationResult] = (*CancelReservationHandler)(nil)
