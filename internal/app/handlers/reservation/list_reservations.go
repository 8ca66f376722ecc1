package reservation

import (
	"context"

	"domoreserva/internal/app/dto"
	"domoreserva/internal/app/queries"
	domainreservation "domoreserva/internal/domain/reservation"
	"domoreserva/internal/domain/units"
)

const listReservationsKey = "reservation.list"

type ListReservationsQuery struct{}

func (ListReservationsQuery) Key() string { return listReservationsKey }

type ListReservationsHandler struct {
	Reservations domainreservation.Repository
	Units        units.Repository
}

func (h *ListReservationsHandler) Handle(ctx context.Context, _ ListReservationsQuery) (dto.ReservationCollection, error) {
	list, err := h.Reservations.List(ctx)
	if err != nil {
		return dto.ReservationCollection{}, err
	}
	names := make(map[units.UnitID]string)
	out := dto.ReservationCollection{}
	for _, res := range list {
		name, ok := names[res.UnitID]
		if !ok {
			if unit, err := h.Units.ByID(ctx, res.UnitID); err == nil {
				name = unit.Name
			}
			names[res.UnitID] = name
		}
		out.Items = append(out.Items, dto.MapReservationSummary(res, name))
	}
	return out, nil
}

var _ queries.Handler[ListReservationsQuery, dto.ReservationCollection] = (*ListReservationsHandler)(nil)
