package reservation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"domoreserva/internal/app/commands"
	"domoreserva/internal/app/dto"
	"domoreserva/internal/app/events"
	pricingapp "domoreserva/internal/app/handlers/pricing"
	"domoreserva/internal/app/middleware"
	domainpricing "domoreserva/internal/domain/pricing"
	domainreservation "domoreserva/internal/domain/reservation"
	"domoreserva/internal/domain/shared/civil"
	"domoreserva/internal/domain/units"
)

const createReservationKey = "reservation.create"

// ConflictError reports the occupied nights inside a requested stay so
// the UI can highlight them.
type ConflictError struct {
	Dates []civil.Date
}

func (e *ConflictError) Error() string {
	nights := make([]string, 0, len(e.Dates))
	for _, d := range e.Dates {
		nights = append(nights, d.String())
	}
	return fmt.Sprintf("reservation: nights not available: %s", strings.Join(nights, ", "))
}

// CreateReservationCommand submits a validated selection.
type CreateReservationCommand struct {
	CommandID       string
	UnitID          string
	CheckIn         civil.Date
	CheckOut        civil.Date
	Name            string
	Email           string
	Phone           string
	IdempotencyKeyV string
}

func (c CreateReservationCommand) Key() string { return createReservationKey }

func (c CreateReservationCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c CreateReservationCommand) ResultPrototype() any { return &CreateReservationResult{} }

type CreateReservationResult struct {
	ReservationID string    `json:"reservation_id"`
	UnitName      string    `json:"unit_name"`
	CheckIn       string    `json:"check_in"`
	CheckOut      string    `json:"check_out"`
	Quote         dto.Quote `json:"quote"`
	WhatsAppURL   string    `json:"whatsapp_url,omitempty"`
}

// ConfirmationLinker builds the deep link the guest uses to finish the
// conversation over WhatsApp.
type ConfirmationLinker interface {
	ConfirmationLink(guestName string) string
}

// CreateReservationHandler re-validates availability authoritatively,
// prices the stay server-side and persists the reservation. The quote
// the client displayed is never trusted.
type CreateReservationHandler struct {
	Units        units.Repository
	Reservations domainreservation.Repository
	Holidays     domainpricing.HolidayRepository
	Discounts    domainpricing.DiscountRepository
	Events       events.Publisher
	Links        ConfirmationLinker
	Now          func() time.Time
	Logger       *slog.Logger
}

func (h *CreateReservationHandler) Handle(ctx context.Context, cmd CreateReservationCommand) (*CreateReservationResult, error) {
	now := h.now()
	stay, err := domainreservation.NewStay(cmd.CheckIn, cmd.CheckOut)
	if err != nil {
		return nil, err
	}
	if err := stay.ValidateNotPast(civil.FromTime(now)); err != nil {
		return nil, err
	}
	guest := domainreservation.Guest{
		Name:  strings.TrimSpace(cmd.Name),
		Phone: strings.TrimSpace(cmd.Phone),
		Email: strings.TrimSpace(cmd.Email),
	}
	if err := guest.Validate(); err != nil {
		return nil, err
	}

	unit, err := h.Units.ByID(ctx, units.UnitID(cmd.UnitID))
	if err != nil {
		return nil, err
	}

	overlapping, err := h.Reservations.ConfirmedOverlapping(ctx, unit.ID, stay)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, &ConflictError{Dates: conflictingNights(stay, overlapping)}
	}

	engine := pricingapp.LoadEngine(ctx, h.Holidays, h.Discounts, h.logger())
	quote, err := engine.Quote(domainpricing.Rates{
		Weekday: unit.WeekdayRate,
		Weekend: unit.WeekendRate,
	}, stay.CheckIn, stay.CheckOut)
	if err != nil {
		return nil, err
	}

	res, err := domainreservation.New(domainreservation.CreateParams{
		ID:        domainreservation.ReservationID(cmd.CommandID),
		UnitID:    unit.ID,
		Guest:     guest,
		Stay:      stay,
		Quote:     quote,
		CreatedAt: now,
	})
	if err != nil {
		return nil, err
	}
	if err := h.Reservations.Save(ctx, res); err != nil {
		return nil, err
	}

	h.publish(ctx, events.Event{
		Kind:          events.KindReservationConfirmed,
		ReservationID: string(res.ID),
		UnitID:        string(res.UnitID),
		CheckIn:       res.Stay.CheckIn.String(),
		CheckOut:      res.Stay.CheckOut.String(),
		TotalAmount:   res.Quote.Total.Amount,
		Currency:      res.Quote.Total.Currency,
		OccurredAt:    now,
	})

	result := &CreateReservationResult{
		ReservationID: string(res.ID),
		UnitName:      unit.Name,
		CheckIn:       res.Stay.CheckIn.String(),
		CheckOut:      res.Stay.CheckOut.String(),
		Quote:         dto.MapQuote(quote),
	}
	if h.Links != nil {
		result.WhatsAppURL = h.Links.ConfirmationLink(guest.Name)
	}
	return result, nil
}

// conflictingNights intersects the requested nights with the nights
// held by the overlapping reservations.
func conflictingNights(stay domainreservation.Stay, overlapping []*domainreservation.Reservation) []civil.Date {
	var dates []civil.Date
	for d := stay.CheckIn; d.Before(stay.CheckOut); d = d.AddDays(1) {
		for _, r := range overlapping {
			if r.OccupiesNight(d) {
				dates = append(dates, d)
				break
			}
		}
	}
	return dates
}

func (h *CreateReservationHandler) publish(ctx context.Context, event events.Event) {
	if h.Events == nil {
		return
	}
	if err := h.Events.Publish(ctx, event); err != nil {
		h.logger().Warn("event publish failed", "kind", event.Kind, "error", err)
	}
}

func (h *CreateReservationHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

func (h *CreateReservationHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

var _ commands.Handler[CreateReservationCommand, *CreateReservationResult] = (*CreateReservationHandler)(nil)
var _ middleware.IdempotentCommand = CreateReservationCommand{}
