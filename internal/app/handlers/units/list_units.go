package units

import (
	"context"

	"domoreserva/internal/app/dto"
	"domoreserva/internal/app/queries"
	domainunits "domoreserva/internal/domain/units"
)

const listUnitsKey = "units.list"

type ListUnitsQuery struct{}

func (ListUnitsQuery) Key() string { return listUnitsKey }

type ListUnitsHandler struct {
	Units domainunits.Repository
}

func (h *ListUnitsHandler) Handle(ctx context.Context, _ ListUnitsQuery) (dto.UnitCollection, error) {
	list, err := h.Units.List(ctx)
	if err != nil {
		return dto.UnitCollection{}, err
	}
	out := dto.UnitCollection{}
	for _, unit := range list {
		out.Items = append(out.Items, dto.MapUnitCard(unit))
	}
	return out, nil
}

var _ queries.Handler[ListUnitsQuery, dto.UnitCollection] = (*ListUnitsHandler)(nil)
