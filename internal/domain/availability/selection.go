package availability

import "domoreserva/internal/domain/shared/civil"

// Selection is the in-progress two-click date range. The zero value is
// the empty selection. Clicks never mutate in place; each click yields
// the next state, so there is exactly one owner of the live value.
//
// Invariant: when both dates are set, End is strictly after Start.
type Selection struct {
	start civil.Date
	end   civil.Date
}

// Start returns the selected start date, if any.
func (s Selection) Start() (civil.Date, bool) {
	return s.start, !s.start.IsZero()
}

// End returns the selected end date, if any.
func (s Selection) End() (civil.Date, bool) {
	return s.end, !s.end.IsZero()
}

// Complete reports whether both endpoints are chosen.
func (s Selection) Complete() bool {
	return !s.start.IsZero() && !s.end.IsZero()
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return s.start.IsZero()
}

// Clear drops both endpoints.
func (s Selection) Clear() Selection {
	return Selection{}
}

// Click applies one calendar click and returns the next selection.
//
// No start yet: the date becomes the start. Start only: clicking it
// again deselects, an earlier date restarts, a later date completes the
// range. Both set: clicking the start clears everything, clicking the
// end drops just the end, anywhere else restarts with that date.
func (s Selection) Click(d civil.Date) Selection {
	switch {
	case s.start.IsZero():
		return Selection{start: d}
	case s.end.IsZero():
		if d.Equal(s.start) {
			return Selection{}
		}
		if d.Before(s.start) {
			return Selection{start: d}
		}
		return Selection{start: s.start, end: d}
	default:
		if d.Equal(s.start) {
			return Selection{}
		}
		if d.Equal(s.end) {
			return Selection{start: s.start}
		}
		return Selection{start: d}
	}
}
