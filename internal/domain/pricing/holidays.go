package pricing

import (
	"context"
	"errors"

	"domoreserva/internal/domain/shared/civil"
)

var (
	ErrHolidayNotFound = errors.New("pricing: holiday not found")
	ErrHolidayExists   = errors.New("pricing: holiday already registered for that date")
)

// Holiday is a calendar date billed at the weekend rate regardless of
// its weekday.
type Holiday struct {
	ID   string
	Date civil.Date
	Name string
}

// HolidaySet answers membership queries for the pricing engine.
type HolidaySet map[civil.Date]struct{}

// NewHolidaySet indexes a holiday list by date.
func NewHolidaySet(holidays []Holiday) HolidaySet {
	set := make(HolidaySet, len(holidays))
	for _, h := range holidays {
		set[h.Date] = struct{}{}
	}
	return set
}

// Contains reports whether d is a holiday.
func (s HolidaySet) Contains(d civil.Date) bool {
	if s == nil {
		return false
	}
	_, ok := s[d]
	return ok
}

// HolidayRepository persists the admin-editable holiday calendar.
type HolidayRepository interface {
	List(ctx context.Context) ([]Holiday, error)
	Add(ctx context.Context, holiday Holiday) error
	Remove(ctx context.Context, id string) error
}
