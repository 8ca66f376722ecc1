package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domoreserva/internal/app/events"
	domainreservation "domoreserva/internal/domain/reservation"
	"domoreserva/internal/domain/shared/civil"
	"domoreserva/internal/infra/storage/memory"
)

type stubLinker struct{}

func (stubLinker) ConfirmationLink(guestName string) string {
	return "https://wa.me/5493513433116?text=" + guestName
}

type capturingPublisher struct {
	events []events.Event
}

func (p *capturingPublisher) Publish(_ context.Context, e events.Event) error {
	p.events = append(p.events, e)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
}

func newHandler(t *testing.T) (*CreateReservationHandler, *memory.ReservationRepository, *capturingPublisher) {
	t.Helper()
	units := memory.NewUnitRepository()
	holidays := memory.NewHolidayRepository()
	require.NoError(t, memory.Seed(context.Background(), units, holidays, "ARS"))

	reservations := memory.NewReservationRepository()
	publisher := &capturingPublisher{}
	handler := &CreateReservationHandler{
		Units:        units,
		Reservations: reservations,
		Holidays:     holidays,
		Discounts:    memory.NewDiscountRepository(),
		Events:       publisher,
		Links:        stubLinker{},
		Now:          fixedNow,
	}
	return handler, reservations, publisher
}

func newCommand(id, unit, in, out string) CreateReservationCommand {
	return CreateReservationCommand{
		CommandID: id,
		UnitID:    unit,
		CheckIn:   civil.MustParse(in),
		CheckOut:  civil.MustParse(out),
		Name:      "Ana García",
		Phone:     "+5493511234567",
		Email:     "ana@example.com",
	}
}

func TestCreateReservation(t *testing.T) {
	handler, reservations, publisher := newHandler(t)

	result, err := handler.Handle(context.Background(), newCommand("res-1", "aguaribay", "2026-06-03", "2026-06-05"))
	require.NoError(t, err)
	assert.Equal(t, "res-1", result.ReservationID)
	assert.Equal(t, "Aguaribay", result.UnitName)
	assert.Equal(t, 2, result.Quote.Nights)
	// Two weekday nights at the seeded rate, 5% off for two nights.
	assert.Equal(t, int64(150000), result.Quote.BasePrice.Amount)
	assert.Equal(t, int64(7500), result.Quote.Discount.Amount)
	assert.Equal(t, int64(142500), result.Quote.Total.Amount)
	assert.Contains(t, result.WhatsAppURL, "wa.me")

	stored, err := reservations.ByID(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, domainreservation.StateConfirmed, stored.State)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, events.KindReservationConfirmed, publisher.events[0].Kind)
}

func TestCreateReservationConflict(t *testing.T) {
	handler, _, _ := newHandler(t)
	_, err := handler.Handle(context.Background(), newCommand("res-1", "aguaribay", "2026-06-03", "2026-06-06"))
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), newCommand("res-2", "aguaribay", "2026-06-04", "2026-06-08"))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []civil.Date{civil.MustParse("2026-06-04"), civil.MustParse("2026-06-05")}, conflict.Dates)
}

func TestCreateReservationBackToBackAllowed(t *testing.T) {
	handler, _, _ := newHandler(t)
	_, err := handler.Handle(context.Background(), newCommand("res-1", "aguaribay", "2026-06-03", "2026-06-06"))
	require.NoError(t, err)

	// A stay beginning on the previous checkout day is legal.
	_, err = handler.Handle(context.Background(), newCommand("res-2", "aguaribay", "2026-06-06", "2026-06-08"))
	assert.NoError(t, err)
}

func TestCreateReservationOtherUnitUnaffected(t *testing.T) {
	handler, _, _ := newHandler(t)
	_, err := handler.Handle(context.Background(), newCommand("res-1", "aguaribay", "2026-06-03", "2026-06-06"))
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), newCommand("res-2", "espinillo", "2026-06-03", "2026-06-06"))
	assert.NoError(t, err)
}

func TestCreateReservationRejectsPastCheckIn(t *testing.T) {
	handler, _, _ := newHandler(t)
	_, err := handler.Handle(context.Background(), newCommand("res-1", "aguaribay", "2026-05-30", "2026-06-02"))
	assert.ErrorIs(t, err, domainreservation.ErrCheckInInPast)
}

func TestCreateReservationRejectsBadGuest(t *testing.T) {
	handler, _, _ := newHandler(t)
	cmd := newCommand("res-1", "aguaribay", "2026-06-03", "2026-06-05")
	cmd.Phone = ""
	_, err := handler.Handle(context.Background(), cmd)
	assert.ErrorIs(t, err, domainreservation.ErrGuestInvalid)
}

func TestCreateReservationUnknownUnit(t *testing.T) {
	handler, _, _ := newHandler(t)
	_, err := handler.Handle(context.Background(), newCommand("res-1", "nope", "2026-06-03", "2026-06-05"))
	assert.Error(t, err)
}

func TestCancelReservation(t *testing.T) {
	create, reservations, publisher := newHandler(t)
	_, err := create.Handle(context.Background(), newCommand("res-1", "aguaribay", "2026-06-03", "2026-06-05"))
	require.NoError(t, err)

	cancel := &CancelReservationHandler{
		Reservations: reservations,
		Events:       publisher,
		Now:          fixedNow,
	}
	result, err := cancel.Handle(context.Background(), CancelReservationCommand{ReservationID: "res-1"})
	require.NoError(t, err)
	assert.Equal(t, string(domainreservation.StateCancelled), result.Status)

	// The nights are free again.
	_, err = create.Handle(context.Background(), newCommand("res-2", "aguaribay", "2026-06-03", "2026-06-05"))
	assert.NoError(t, err)

	_, err = cancel.Handle(context.Background(), CancelReservationCommand{ReservationID: "res-1"})
	assert.ErrorIs(t, err, domainreservation.ErrInvalidState)
}
