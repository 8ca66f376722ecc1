// Package availability classifies calendar days for a unit and decides
// whether a candidate stay is legal against the existing reservations.
// Everything here is a pure function of the occupied/boundary sets plus
// "today"; the UI layer applies the results to presentation.
package availability

import (
	"errors"
	"sort"

	"domoreserva/internal/domain/shared/civil"
	"domoreserva/internal/domain/units"
)

var ErrInvalidRange = errors.New("availability: end date must be after start date")

// DayStatus is the per-date classification used for rendering and
// click handling.
type DayStatus int

const (
	StatusFree DayStatus = iota
	StatusPast
	StatusOccupied
	StatusCheckin
	StatusCheckout
	StatusCheckinCheckout
)

func (s DayStatus) String() string {
	switch s {
	case StatusFree:
		return "free"
	case StatusPast:
		return "past"
	case StatusOccupied:
		return "occupied"
	case StatusCheckin:
		return "checkin"
	case StatusCheckout:
		return "checkout"
	case StatusCheckinCheckout:
		return "checkin_checkout"
	default:
		return "unknown"
	}
}

// Selectable reports whether the date may participate in a selection at
// all. Only past dates are visually disabled; occupied dates stay
// clickable so the click handler can surface the conflict.
func (s DayStatus) Selectable() bool {
	return s != StatusPast
}

// Calendar holds the occupied nights and the checkin/checkout boundary
// dates of one unit.
type Calendar struct {
	unitID    units.UnitID
	occupied  map[civil.Date]struct{}
	checkins  map[civil.Date]struct{}
	checkouts map[civil.Date]struct{}
}

// NewCalendar builds an empty calendar for the unit.
func NewCalendar(unitID units.UnitID) *Calendar {
	return &Calendar{
		unitID:    unitID,
		occupied:  make(map[civil.Date]struct{}),
		checkins:  make(map[civil.Date]struct{}),
		checkouts: make(map[civil.Date]struct{}),
	}
}

// UnitID returns the owning unit.
func (c *Calendar) UnitID() units.UnitID {
	return c.unitID
}

// Block marks the nights of a confirmed stay [checkIn, checkOut):
// every night from checkIn through the eve of checkOut is occupied,
// checkIn becomes a checkin boundary and checkOut a checkout boundary.
func (c *Calendar) Block(checkIn, checkOut civil.Date) error {
	if !checkOut.After(checkIn) {
		return ErrInvalidRange
	}
	for d := checkIn; d.Before(checkOut); d = d.AddDays(1) {
		c.occupied[d] = struct{}{}
	}
	c.checkins[checkIn] = struct{}{}
	c.checkouts[checkOut] = struct{}{}
	return nil
}

// Classify resolves the status of a single date. Boundary status wins
// over plain occupancy: a checkin day's night is taken, but the date is
// still usable as a new stay's end, and a checkout day as a new start.
func (c *Calendar) Classify(d, today civil.Date) DayStatus {
	if d.Before(today) {
		return StatusPast
	}
	_, in := c.checkins[d]
	_, out := c.checkouts[d]
	switch {
	case in && out:
		return StatusCheckinCheckout
	case in:
		return StatusCheckin
	case out:
		return StatusCheckout
	}
	if _, ok := c.occupied[d]; ok {
		return StatusOccupied
	}
	return StatusFree
}

// ConflictInfo lists the occupied nights inside a candidate range.
type ConflictInfo struct {
	Dates []civil.Date
}

// HasConflict reports whether any night collides.
func (ci ConflictInfo) HasConflict() bool {
	return len(ci.Dates) > 0
}

// Conflicts walks every night in [start, end) — the checkout day is not
// a night of the new stay — and collects collisions with occupied
// nights. A conflict does not block further selection; it only gates
// submission.
func (c *Calendar) Conflicts(start, end civil.Date) (ConflictInfo, error) {
	if !end.After(start) {
		return ConflictInfo{}, ErrInvalidRange
	}
	var info ConflictInfo
	for d := start; d.Before(end); d = d.AddDays(1) {
		if _, ok := c.occupied[d]; ok {
			info.Dates = append(info.Dates, d)
		}
	}
	return info, nil
}

// OccupiedNights returns the occupied nights in ascending order.
func (c *Calendar) OccupiedNights() []civil.Date {
	return sortedDates(c.occupied)
}

// CheckinDates returns the checkin boundary dates in ascending order.
func (c *Calendar) CheckinDates() []civil.Date {
	return sortedDates(c.checkins)
}

// CheckoutDates returns the checkout boundary dates in ascending order.
func (c *Calendar) CheckoutDates() []civil.Date {
	return sortedDates(c.checkouts)
}

func sortedDates(set map[civil.Date]struct{}) []civil.Date {
	out := make([]civil.Date, 0, len(set))
	for d := range set {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
