package dto

import (
	"domoreserva/internal/domain/availability"
	"domoreserva/internal/domain/shared/civil"
)

// CalendarDay is one renderable cell of the booking calendar.
type CalendarDay struct {
	Date       string `json:"date"`
	Status     string `json:"status"`
	Selectable bool   `json:"selectable"`
}

// UnitCalendar is the availability window for one unit. Dates are ISO
// calendar strings with no time component. Degraded marks the
// no-known-occupied-dates fallback after a failed availability fetch.
type UnitCalendar struct {
	UnitID         string        `json:"unit_id"`
	From           string        `json:"from"`
	To             string        `json:"to"`
	OccupiedNights []string      `json:"occupied_nights"`
	CheckinDates   []string      `json:"checkin_dates"`
	CheckoutDates  []string      `json:"checkout_dates"`
	Days           []CalendarDay `json:"days"`
	Degraded       bool          `json:"degraded,omitempty"`
}

// MapUnitCalendar renders the window [from, to] against the calendar.
func MapUnitCalendar(cal *availability.Calendar, from, to, today civil.Date) UnitCalendar {
	out := UnitCalendar{
		UnitID:         string(cal.UnitID()),
		From:           from.String(),
		To:             to.String(),
		OccupiedNights: mapDates(cal.OccupiedNights()),
		CheckinDates:   mapDates(cal.CheckinDates()),
		CheckoutDates:  mapDates(cal.CheckoutDates()),
	}
	for d := from; !d.After(to); d = d.AddDays(1) {
		status := cal.Classify(d, today)
		out.Days = append(out.Days, CalendarDay{
			Date:       d.String(),
			Status:     status.String(),
			Selectable: status.Selectable(),
		})
	}
	return out
}

func mapDates(dates []civil.Date) []string {
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.String())
	}
	return out
}
