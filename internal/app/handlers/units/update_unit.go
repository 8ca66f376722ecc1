package units

import (
	"context"

	"domoreserva/internal/app/commands"
	"domoreserva/internal/app/dto"
	"domoreserva/internal/domain/shared/money"
	domainunits "domoreserva/internal/domain/units"
)

const updateUnitKey = "units.update"

// UpdateUnitCommand edits the admin-owned fields of a unit. Nil fields
// are left untouched.
type UpdateUnitCommand struct {
	UnitID      string
	WeekdayRate *dto.MoneyDTO
	WeekendRate *dto.MoneyDTO
	Description *string
	PhotoURL    *string
}

func (UpdateUnitCommand) Key() string { return updateUnitKey }

type UpdateUnitResult struct {
	Unit dto.UnitCard `json:"unit"`
}

type UpdateUnitHandler struct {
	Units domainunits.Repository
}

func (h *UpdateUnitHandler) Handle(ctx context.Context, cmd UpdateUnitCommand) (*UpdateUnitResult, error) {
	unit, err := h.Units.ByID(ctx, domainunits.UnitID(cmd.UnitID))
	if err != nil {
		return nil, err
	}
	if cmd.WeekdayRate != nil || cmd.WeekendRate != nil {
		weekday := unit.WeekdayRate
		weekend := unit.WeekendRate
		if cmd.WeekdayRate != nil {
			if weekday, err = money.New(cmd.WeekdayRate.Amount, cmd.WeekdayRate.Currency); err != nil {
				return nil, err
			}
		}
		if cmd.WeekendRate != nil {
			if weekend, err = money.New(cmd.WeekendRate.Amount, cmd.WeekendRate.Currency); err != nil {
				return nil, err
			}
		}
		if err := unit.UpdateRates(weekday, weekend); err != nil {
			return nil, err
		}
	}
	if cmd.Description != nil {
		unit.UpdateDescription(*cmd.Description)
	}
	if cmd.PhotoURL != nil {
		unit.SetPhotoURL(*cmd.PhotoURL)
	}
	if err := h.Units.Save(ctx, unit); err != nil {
		return nil, err
	}
	return &UpdateUnitResult{Unit: dto.MapUnitCard(unit)}, nil
}

var _ commands.Handler[UpdateUnitCommand, *UpdateUnitResult] = (*UpdateUnitHandler)(nil)
