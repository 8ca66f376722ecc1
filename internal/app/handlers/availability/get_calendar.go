package availability

import (
	"context"
	"log/slog"

	"domoreserva/internal/app/dto"
	"domoreserva/internal/app/queries"
	domainavailability "domoreserva/internal/domain/availability"
	"domoreserva/internal/domain/reservation"
	"domoreserva/internal/domain/shared/civil"
	"domoreserva/internal/domain/units"
)

const getCalendarKey = "availability.calendar"

// GetCalendarQuery asks for the occupied/boundary dates of one unit in
// a window.
type GetCalendarQuery struct {
	UnitID string
	From   civil.Date
	To     civil.Date
}

func (q GetCalendarQuery) Key() string { return getCalendarKey }

// GetCalendarHandler builds the calendar from confirmed reservations.
// A failed reservation fetch degrades to an empty occupied set instead
// of blocking the widget; the DTO carries the degraded flag so the UI
// can warn.
type GetCalendarHandler struct {
	Units        units.Repository
	Reservations reservation.Repository
	Logger       *slog.Logger
}

func (h *GetCalendarHandler) Handle(ctx context.Context, query GetCalendarQuery) (dto.UnitCalendar, error) {
	unit, err := h.Units.ByID(ctx, units.UnitID(query.UnitID))
	if err != nil {
		return dto.UnitCalendar{}, err
	}

	today := civil.Today()
	from, to := resolveWindow(query.From, query.To, today)

	cal := domainavailability.NewCalendar(unit.ID)
	stays, err := h.Reservations.ConfirmedByUnit(ctx, unit.ID)
	if err != nil {
		h.logger().Warn("availability fetch failed, rendering empty calendar",
			"unit_id", unit.ID, "error", err)
		out := dto.MapUnitCalendar(cal, from, to, today)
		out.Degraded = true
		return out, nil
	}
	for _, r := range stays {
		if err := cal.Block(r.Stay.CheckIn, r.Stay.CheckOut); err != nil {
			h.logger().Warn("skipping reservation with invalid stay",
				"reservation_id", r.ID, "error", err)
		}
	}
	return dto.MapUnitCalendar(cal, from, to, today), nil
}

// resolveWindow defaults to today plus 60 days, mirroring what the
// widget's two visible months can show.
func resolveWindow(from, to, today civil.Date) (civil.Date, civil.Date) {
	if from.IsZero() {
		from = today
	}
	if to.IsZero() || !to.After(from) {
		to = from.AddDays(60)
	}
	return from, to
}

var _ queries.Handler[GetCalendarQuery, dto.UnitCalendar] = (*GetCalendarHandler)(nil)

func (h *GetCalendarHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
