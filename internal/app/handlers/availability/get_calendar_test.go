package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainpricing "domoreserva/internal/domain/pricing"
	domainreservation "domoreserva/internal/domain/reservation"
	"domoreserva/internal/domain/shared/civil"
	"domoreserva/internal/domain/shared/money"
	"domoreserva/internal/domain/units"
	"domoreserva/internal/infra/storage/memory"
)

func seedUnit(t *testing.T) *memory.UnitRepository {
	t.Helper()
	repo := memory.NewUnitRepository()
	unit, err := units.New(units.CreateParams{
		ID:          "aguaribay",
		Name:        "Aguaribay",
		Capacity:    2,
		WeekdayRate: money.Must(75000, "ARS"),
		WeekendRate: money.Must(110000, "ARS"),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), unit))
	return repo
}

func confirmStay(t *testing.T, repo *memory.ReservationRepository, id, in, out string) {
	t.Helper()
	stay, err := domainreservation.NewStay(civil.MustParse(in), civil.MustParse(out))
	require.NoError(t, err)
	res, err := domainreservation.New(domainreservation.CreateParams{
		ID:     domainreservation.ReservationID(id),
		UnitID: "aguaribay",
		Guest:  domainreservation.Guest{Name: "Ana García", Phone: "+5493511234567"},
		Stay:   stay,
		Quote: domainpricing.Quote{
			Nights: stay.Nights(),
			Base:   money.Must(1, "ARS"),
			Total:  money.Must(1, "ARS"),
		},
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), res))
}

func TestGetCalendar(t *testing.T) {
	reservations := memory.NewReservationRepository()
	confirmStay(t, reservations, "res-1", "2026-06-04", "2026-06-06")

	handler := &GetCalendarHandler{Units: seedUnit(t), Reservations: reservations}
	out, err := handler.Handle(context.Background(), GetCalendarQuery{
		UnitID: "aguaribay",
		From:   civil.MustParse("2026-06-01"),
		To:     civil.MustParse("2026-06-10"),
	})
	require.NoError(t, err)

	assert.Equal(t, "aguaribay", out.UnitID)
	assert.False(t, out.Degraded)
	assert.Equal(t, []string{"2026-06-04", "2026-06-05"}, out.OccupiedNights)
	assert.Equal(t, []string{"2026-06-04"}, out.CheckinDates)
	assert.Equal(t, []string{"2026-06-06"}, out.CheckoutDates)
	assert.Len(t, out.Days, 10)
}

func TestGetCalendarUnknownUnit(t *testing.T) {
	handler := &GetCalendarHandler{Units: seedUnit(t), Reservations: memory.NewReservationRepository()}
	_, err := handler.Handle(context.Background(), GetCalendarQuery{UnitID: "nope"})
	assert.ErrorIs(t, err, units.ErrUnitNotFound)
}

type failingReservations struct {
	domainreservation.Repository
}

func (failingReservations) ConfirmedByUnit(context.Context, units.UnitID) ([]*domainreservation.Reservation, error) {
	return nil, errors.New("store down")
}

func TestGetCalendarDegradesWhenFetchFails(t *testing.T) {
	handler := &GetCalendarHandler{Units: seedUnit(t), Reservations: failingReservations{}}
	out, err := handler.Handle(context.Background(), GetCalendarQuery{
		UnitID: "aguaribay",
		From:   civil.MustParse("2026-06-01"),
		To:     civil.MustParse("2026-06-10"),
	})
	require.NoError(t, err, "a broken store must not blank the widget")
	assert.True(t, out.Degraded)
	assert.Empty(t, out.OccupiedNights)
	assert.Len(t, out.Days, 10)
}

func TestResolveWindowDefaults(t *testing.T) {
	today := civil.MustParse("2026-06-01")
	from, to := resolveWindow(civil.Date{}, civil.Date{}, today)
	assert.Equal(t, "2026-06-01", from.String())
	assert.Equal(t, "2026-07-31", to.String())

	from, to = resolveWindow(civil.MustParse("2026-06-10"), civil.MustParse("2026-06-05"), today)
	assert.Equal(t, "2026-06-10", from.String())
	assert.True(t, to.After(from))
}
