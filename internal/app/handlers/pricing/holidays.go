package pricing

import (
	"context"

	"domoreserva/internal/app/commands"
	"domoreserva/internal/app/dto"
	"domoreserva/internal/app/queries"
	domainpricing "domoreserva/internal/domain/pricing"
	"domoreserva/internal/domain/shared/civil"
)

const (
	listHolidaysKey  = "pricing.holidays.list"
	addHolidayKey    = "pricing.holidays.add"
	removeHolidayKey = "pricing.holidays.remove"
)

type ListHolidaysQuery struct{}

func (ListHolidaysQuery) Key() string { return listHolidaysKey }

type ListHolidaysHandler struct {
	Holidays domainpricing.HolidayRepository
}

func (h *ListHolidaysHandler) Handle(ctx context.Context, _ ListHolidaysQuery) (dto.HolidayCollection, error) {
	list, err := h.Holidays.List(ctx)
	if err != nil {
		return dto.HolidayCollection{}, err
	}
	out := dto.HolidayCollection{}
	for _, holiday := range list {
		out.Items = append(out.Items, dto.MapHoliday(holiday))
	}
	return out, nil
}

type AddHolidayCommand struct {
	ID   string
	Date civil.Date
	Name string
}

func (AddHolidayCommand) Key() string { return addHolidayKey }

type AddHolidayResult struct {
	Holiday dto.HolidayDTO `json:"holiday"`
}

type AddHolidayHandler struct {
	Holidays domainpricing.HolidayRepository
}

func (h *AddHolidayHandler) Handle(ctx context.Context, cmd AddHolidayCommand) (*AddHolidayResult, error) {
	holiday := domainpricing.Holiday{ID: cmd.ID, Date: cmd.Date, Name: cmd.Name}
	if err := h.Holidays.Add(ctx, holiday); err != nil {
		return nil, err
	}
	return &AddHolidayResult{Holiday: dto.MapHoliday(holiday)}, nil
}

type RemoveHolidayCommand struct {
	ID string
}

func (RemoveHolidayCommand) Key() string { return removeHolidayKey }

type RemoveHolidayResult struct {
	ID string `json:"id"`
}

type RemoveHolidayHandler struct {
	Holidays domainpricing.HolidayRepository
}

func (h *RemoveHolidayHandler) Handle(ctx context.Context, cmd RemoveHolidayCommand) (*RemoveHolidayResult, error) {
	if err := h.Holidays.Remove(ctx, cmd.ID); err != nil {
		return nil, err
	}
	return &RemoveHolidayResult{ID: cmd.ID}, nil
}

var (
	_ queries.Handler[ListHolidaysQuery, dto.HolidayCollection]    = (*ListHolidaysHandler)(nil)
	_ commands.Handler[AddHolidayCommand, *AddHolidayResult]       = (*AddHolidayHandler)(nil)
	_ commands.Handler[RemoveHolidayCommand, *RemoveHolidayResult] = (*RemoveHolidayHandler)(nil)
)
