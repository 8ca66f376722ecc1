// Package session owns the single piece of mutable widget state: the
// in-progress selection and the cached quote for the unit whose modal
// is open. All mutation happens from the UI event loop, so the type is
// deliberately not safe for concurrent use.
package session

import (
	"domoreserva/internal/domain/availability"
	"domoreserva/internal/domain/pricing"
	"domoreserva/internal/domain/shared/civil"
	"domoreserva/internal/domain/units"
)

// Session tracks one visitor's interaction with the booking widget.
// Every mutation bumps the revision; asynchronous quote replies carry
// the revision of the selection that produced them and are discarded
// when it no longer matches (last writer wins by request identity, not
// arrival order).
type Session struct {
	unitID   units.UnitID
	sel      availability.Selection
	rev      uint64
	quote    pricing.Quote
	hasQuote bool
	degraded bool
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// Open switches the widget to a unit, resetting the selection and
// invalidating any in-flight quote for the previous unit.
func (s *Session) Open(unitID units.UnitID) {
	s.unitID = unitID
	s.sel = availability.Selection{}
	s.rev++
	s.hasQuote = false
	s.degraded = false
}

// UnitID returns the unit whose modal is open.
func (s *Session) UnitID() units.UnitID {
	return s.unitID
}

// Selection returns the current selection state.
func (s *Session) Selection() availability.Selection {
	return s.sel
}

// Revision identifies the current selection for request keying.
func (s *Session) Revision() uint64 {
	return s.rev
}

// Click applies a calendar click and returns the new selection plus the
// revision a quote request for it should carry. The cached quote is
// dropped: it belongs to the previous selection.
func (s *Session) Click(d civil.Date) (availability.Selection, uint64) {
	s.sel = s.sel.Click(d)
	s.rev++
	s.hasQuote = false
	return s.sel, s.rev
}

// ApplyQuote installs a quote reply. Stale replies — produced for an
// earlier selection or another unit — are reported false and ignored.
func (s *Session) ApplyQuote(rev uint64, q pricing.Quote) bool {
	if rev != s.rev || !s.sel.Complete() {
		return false
	}
	s.quote = q
	s.hasQuote = true
	return true
}

// Quote returns the cached quote for the current selection, if any.
func (s *Session) Quote() (pricing.Quote, bool) {
	return s.quote, s.hasQuote
}

// MarkDegraded records that the availability fetch failed and the
// calendar is rendering with no known occupied dates.
func (s *Session) MarkDegraded() {
	s.degraded = true
}

// Degraded reports whether the widget is running on fallback
// availability data.
func (s *Session) Degraded() bool {
	return s.degraded
}
