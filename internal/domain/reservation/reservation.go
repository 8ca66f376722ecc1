package reservation

import (
	"context"
	"errors"
	"time"

	"domoreserva/internal/domain/pricing"
	"domoreserva/internal/domain/shared/civil"
	"domoreserva/internal/domain/units"
)

var (
	ErrNotFound     = errors.New("reservation: not found")
	ErrInvalidState = errors.New("reservation: invalid state transition")
)

type ReservationID string

type State string

const (
	StateConfirmed State = "CONFIRMED"
	StateCancelled State = "CANCELLED"
)

// Reservation is a confirmed stay. Ownership transfers here on submit;
// the widget never holds it afterwards.
type Reservation struct {
	ID        ReservationID
	UnitID    units.UnitID
	Guest     Guest
	Stay      Stay
	Quote     pricing.Quote
	State     State
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateParams struct {
	ID        ReservationID
	UnitID    units.UnitID
	Guest     Guest
	Stay      Stay
	Quote     pricing.Quote
	CreatedAt time.Time
}

// New validates the guest contact details and builds a confirmed
// reservation.
func New(params CreateParams) (*Reservation, error) {
	if params.ID == "" {
		return nil, errors.New("reservation: id required")
	}
	if params.UnitID == "" {
		return nil, errors.New("reservation: unit id required")
	}
	if err := params.Guest.Validate(); err != nil {
		return nil, err
	}
	now := params.CreatedAt.UTC()
	return &Reservation{
		ID:        params.ID,
		UnitID:    params.UnitID,
		Guest:     params.Guest,
		Stay:      params.Stay,
		Quote:     params.Quote,
		State:     StateConfirmed,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Cancel releases the nights. Only confirmed reservations can be
// cancelled.
func (r *Reservation) Cancel(now time.Time) error {
	if r.State != StateConfirmed {
		return ErrInvalidState
	}
	r.State = StateCancelled
	r.UpdatedAt = now.UTC()
	return nil
}

// OccupiesNight reports whether the stay holds the night starting on d.
func (r *Reservation) OccupiesNight(d civil.Date) bool {
	return r.State == StateConfirmed && !d.Before(r.Stay.CheckIn) && d.Before(r.Stay.CheckOut)
}

// Repository persists reservations. ConfirmedOverlapping is the
// conflict-checking query the availability model relies on; overlap is
// half-open so back-to-back stays sharing a boundary date never
// collide.
type Repository interface {
	ByID(ctx context.Context, id ReservationID) (*Reservation, error)
	Save(ctx context.Context, r *Reservation) error
	List(ctx context.Context) ([]*Reservation, error)
	ConfirmedByUnit(ctx context.Context, unitID units.UnitID) ([]*Reservation, error)
	ConfirmedOverlapping(ctx context.Context, unitID units.UnitID, stay Stay) ([]*Reservation, error)
}
