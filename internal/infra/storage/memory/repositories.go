package memory

import (
	"context"
	"sort"
	"sync"

	domainpricing "domoreserva/internal/domain/pricing"
	domainreservation "domoreserva/internal/domain/reservation"
	domainunits "domoreserva/internal/domain/units"
)

// UnitRepository keeps the domo catalog in memory.
type UnitRepository struct {
	mu    sync.RWMutex
	items map[domainunits.UnitID]*domainunits.Unit
	order []domainunits.UnitID
}

// NewUnitRepository builds an empty catalog.
func NewUnitRepository() *UnitRepository {
	return &UnitRepository{items: make(map[domainunits.UnitID]*domainunits.Unit)}
}

// ByID returns a unit or units.ErrUnitNotFound.
func (r *UnitRepository) ByID(ctx context.Context, id domainunits.UnitID) (*domainunits.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	unit, ok := r.items[id]
	if !ok {
		return nil, domainunits.ErrUnitNotFound
	}
	clone := *unit
	return &clone, nil
}

// List returns the catalog in insertion order.
func (r *UnitRepository) List(ctx context.Context) ([]*domainunits.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainunits.Unit, 0, len(r.order))
	for _, id := range r.order {
		clone := *r.items[id]
		out = append(out, &clone)
	}
	return out, nil
}

// Save stores or updates a unit entry.
func (r *UnitRepository) Save(ctx context.Context, unit *domainunits.Unit) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[unit.ID]; !exists {
		r.order = append(r.order, unit.ID)
	}
	clone := *unit
	r.items[unit.ID] = &clone
	return nil
}

// ReservationRepository stores reservations in memory.
type ReservationRepository struct {
	mu    sync.RWMutex
	items map[domainreservation.ReservationID]*domainreservation.Reservation
}

// NewReservationRepository builds an empty store.
func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{
		items: make(map[domainreservation.ReservationID]*domainreservation.Reservation),
	}
}

// ByID fetches a reservation.
func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ReservationID) (*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.items[id]
	if !ok {
		return nil, domainreservation.ErrNotFound
	}
	clone := *res
	return &clone, nil
}

// Save stores the current reservation state.
func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *res
	r.items[res.ID] = &clone
	return nil
}

// List returns every reservation, newest first.
func (r *ReservationRepository) List(ctx context.Context) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainreservation.Reservation, 0, len(r.items))
	for _, res := range r.items {
		clone := *res
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// ConfirmedByUnit returns the active stays for one unit, ordered by
// check-in.
func (r *ReservationRepository) ConfirmedByUnit(ctx context.Context, unitID domainunits.UnitID) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainreservation.Reservation, 0)
	for _, res := range r.items {
		if res.UnitID != unitID || res.State != domainreservation.StateConfirmed {
			continue
		}
		clone := *res
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Stay.CheckIn.Before(out[j].Stay.CheckIn)
	})
	return out, nil
}

// ConfirmedOverlapping returns active stays on the unit whose night
// ranges intersect the candidate stay.
func (r *ReservationRepository) ConfirmedOverlapping(ctx context.Context, unitID domainunits.UnitID, stay domainreservation.Stay) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainreservation.Reservation, 0)
	for _, res := range r.items {
		if res.UnitID != unitID || res.State != domainreservation.StateConfirmed {
			continue
		}
		if !res.Stay.Overlaps(stay) {
			continue
		}
		clone := *res
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Stay.CheckIn.Before(out[j].Stay.CheckIn)
	})
	return out, nil
}

// HolidayRepository keeps the billing holiday calendar in memory.
type HolidayRepository struct {
	mu    sync.RWMutex
	items map[string]domainpricing.Holiday
}

// NewHolidayRepository builds an empty calendar.
func NewHolidayRepository() *HolidayRepository {
	return &HolidayRepository{items: make(map[string]domainpricing.Holiday)}
}

// List returns holidays sorted by date.
func (r *HolidayRepository) List(ctx context.Context) ([]domainpricing.Holiday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domainpricing.Holiday, 0, len(r.items))
	for _, h := range r.items {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// Add registers a holiday. A second holiday on the same date is
// rejected.
func (r *HolidayRepository) Add(ctx context.Context, holiday domainpricing.Holiday) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Date.Equal(holiday.Date) {
			return domainpricing.ErrHolidayExists
		}
	}
	r.items[holiday.ID] = holiday
	return nil
}

// Remove deletes a holiday by id.
func (r *HolidayRepository) Remove(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainpricing.ErrHolidayNotFound
	}
	delete(r.items, id)
	return nil
}

// DiscountRepository holds the single active discount table.
type DiscountRepository struct {
	mu     sync.RWMutex
	policy domainpricing.DiscountPolicy
}

// NewDiscountRepository starts from the stock table.
func NewDiscountRepository() *DiscountRepository {
	return &DiscountRepository{policy: domainpricing.DefaultDiscountPolicy()}
}

func (r *DiscountRepository) Policy(ctx context.Context) (domainpricing.DiscountPolicy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.policy, nil
}

func (r *DiscountRepository) SetPolicy(ctx context.Context, policy domainpricing.DiscountPolicy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policy = policy
	return nil
}

var (
	_ domainunits.Repository           = (*UnitRepository)(nil)
	_ domainreservation.Repository     = (*ReservationRepository)(nil)
	_ domainpricing.HolidayRepository  = (*HolidayRepository)(nil)
	_ domainpricing.DiscountRepository = (*DiscountRepository)(nil)
)
