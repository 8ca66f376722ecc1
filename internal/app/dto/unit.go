package dto

import (
	"domoreserva/internal/domain/shared/money"
	"domoreserva/internal/domain/units"
)

type MoneyDTO struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

func MapMoney(value money.Money) MoneyDTO {
	return MoneyDTO{Amount: value.Amount, Currency: value.Currency}
}

// UnitCard carries everything the widget needs to render one domo.
type UnitCard struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Capacity    int      `json:"capacity"`
	WeekdayRate MoneyDTO `json:"weekday_rate"`
	WeekendRate MoneyDTO `json:"weekend_rate"`
	PhotoURL    string   `json:"photo_url,omitempty"`
}

type UnitCollection struct {
	Items []UnitCard `json:"items"`
}

func MapUnitCard(u *units.Unit) UnitCard {
	return UnitCard{
		ID:          string(u.ID),
		Name:        u.Name,
		Description: u.Description,
		Capacity:    u.Capacity,
		WeekdayRate: MapMoney(u.WeekdayRate),
		WeekendRate: MapMoney(u.WeekendRate),
		PhotoURL:    u.PhotoURL,
	}
}
