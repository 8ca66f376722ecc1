package reservation

import (
	"errors"

	"domoreserva/internal/domain/shared/civil"
)

var (
	ErrInvalidStay   = errors.New("reservation: check-out must be after check-in")
	ErrCheckInInPast = errors.New("reservation: check-in date is in the past")
)

// Stay is a half-open date range [CheckIn, CheckOut): the checkout day
// is the departure morning and belongs to the next guest.
type Stay struct {
	CheckIn  civil.Date
	CheckOut civil.Date
}

// NewStay validates the range.
func NewStay(checkIn, checkOut civil.Date) (Stay, error) {
	if checkIn.IsZero() || checkOut.IsZero() || !checkOut.After(checkIn) {
		return Stay{}, ErrInvalidStay
	}
	return Stay{CheckIn: checkIn, CheckOut: checkOut}, nil
}

// Nights counts the billable nights.
func (s Stay) Nights() int {
	return s.CheckIn.DaysUntil(s.CheckOut)
}

// Overlaps reports whether two stays share a night. Boundary dates do
// not overlap: a stay may start on another's checkout day.
func (s Stay) Overlaps(other Stay) bool {
	return s.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(s.CheckOut)
}

// ValidateNotPast rejects stays that begin before today.
func (s Stay) ValidateNotPast(today civil.Date) error {
	if s.CheckIn.Before(today) {
		return ErrCheckInInPast
	}
	return nil
}
